package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/calendar"
	"github.com/sells-group/discorsi-cli/internal/model"
	"github.com/sells-group/discorsi-cli/internal/pipeline"
	"github.com/sells-group/discorsi-cli/internal/roster"
	"github.com/sells-group/discorsi-cli/internal/source"
	"github.com/sells-group/discorsi-cli/internal/store"
)

var (
	processSessions string
	processMetadata string
	processOutput   string
	processReport   string
	processDownload bool
	processWorkers  int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the attributed speech corpus",
	Long: `Segments every session, normalizes each speech and attributes it to a deputy.

Examples:
  # Use an existing roster in ./deputati
  discorsi process --sessions sedute.csv --metadata sedute_meta.csv

  # Download the roster first and keep a run report
  discorsi process --sessions sedute.xlsx --metadata meta.csv --download --report run.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		applyProcessFlags(cmd)
		if err := cfg.Validate("process"); err != nil {
			return err
		}

		startedAt := time.Now().UTC()

		// Phase 1: read-only reference tables.
		r, err := loadRoster(ctx, cfg, startedAt)
		if err != nil {
			return err
		}
		normalizer, err := newNormalizer(cfg)
		if err != nil {
			return err
		}
		opts, err := pipelineOptions(cfg)
		if err != nil {
			return err
		}
		p := pipeline.New(opts, normalizer, calendar.New(startedAt), r)

		// Phase 2: sessions.
		srcOpts := sourceOptions(cfg)
		sessions, err := source.LoadSessions(ctx, cfg.Input.SessionsPath, srcOpts)
		if err != nil {
			return err
		}
		meta, err := source.LoadMetadata(ctx, cfg.Input.MetadataPath, srcOpts)
		if err != nil {
			return err
		}

		var st store.Store
		runID := uuid.New().String()
		if cfg.Store.Driver != "" {
			st, err = store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
			if err != nil {
				return eris.Wrap(err, "process: open store")
			}
			defer st.Close() //nolint:errcheck

			run, err := st.CreateRun(ctx, len(sessions))
			if err != nil {
				return eris.Wrap(err, "process: create run")
			}
			runID = run.ID
		}

		res, err := buildCorpus(ctx, st, runID, p, sessions, meta, r.Stats, startedAt)
		if err != nil {
			if st != nil {
				if failErr := st.FailRun(ctx, runID, err); failErr != nil {
					zap.L().Error("process: record failed run", zap.String("run_id", runID), zap.Error(failErr))
				}
			}
			return err
		}

		zap.L().Info("process: corpus written",
			zap.String("run_id", runID),
			zap.String("path", cfg.Output.Path),
			zap.Int("records", len(res.Records)),
			zap.Int("dropped", res.Drops.Total()),
		)
		return nil
	},
}

// buildCorpus runs the pipeline and writes every output of one run. Any error it
// returns leaves the run unfinished and must be recorded as a failure.
func buildCorpus(
	ctx context.Context,
	st store.Store,
	runID string,
	p *pipeline.Pipeline,
	sessions []model.SessionRecord,
	meta pipeline.MetadataLookup,
	stats roster.Stats,
	startedAt time.Time,
) (*pipeline.Result, error) {
	res, err := p.Run(ctx, sessions, meta)
	if err != nil {
		return nil, err
	}

	if err := pipeline.ExportCorpusCSV(res.Records, cfg.Output.Path); err != nil {
		return nil, err
	}

	report := pipeline.NewReport(runID, res, stats, startedAt, time.Now().UTC())
	report.Output = cfg.Output.Path

	if st != nil {
		if _, err := st.SaveRecords(ctx, runID, res.Records); err != nil {
			return nil, eris.Wrap(err, "process: save corpus")
		}
	}

	if cfg.Output.ReportPath != "" {
		if err := pipeline.WriteReport(cfg.Output.ReportPath, report); err != nil {
			return nil, err
		}
	}

	if st != nil {
		if err := st.CompleteRun(ctx, &report.Run); err != nil {
			return nil, eris.Wrap(err, "process: complete run")
		}
	}
	return res, nil
}

func applyProcessFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("sessions") {
		cfg.Input.SessionsPath = processSessions
	}
	if flags.Changed("metadata") {
		cfg.Input.MetadataPath = processMetadata
	}
	if flags.Changed("output") {
		cfg.Output.Path = processOutput
	}
	if flags.Changed("report") {
		cfg.Output.ReportPath = processReport
	}
	if flags.Changed("download") {
		cfg.Roster.Download = processDownload
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = processWorkers
	}
}

func init() {
	processCmd.Flags().StringVar(&processSessions, "sessions", "", "session transcripts file (CSV or XLSX)")
	processCmd.Flags().StringVar(&processMetadata, "metadata", "", "session metadata file with id and date")
	processCmd.Flags().StringVar(&processOutput, "output", "", "corpus CSV output path (default from config)")
	processCmd.Flags().StringVar(&processReport, "report", "", "write a YAML run report to this path")
	processCmd.Flags().BoolVar(&processDownload, "download", false, "download roster files before processing")
	processCmd.Flags().IntVar(&processWorkers, "workers", 0, "sessions processed concurrently (default from config)")
	rootCmd.AddCommand(processCmd)
}
