package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/discorsi-cli/internal/pipeline"
	"github.com/sells-group/discorsi-cli/internal/source"
)

var (
	segmentSessions string
	segmentOutput   string
	segmentWorkers  int
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Split sessions into normalized speeches without attribution",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		if flags.Changed("sessions") {
			cfg.Input.SessionsPath = segmentSessions
		}
		if flags.Changed("output") {
			cfg.Output.Path = segmentOutput
		}
		if flags.Changed("workers") {
			cfg.Pipeline.Workers = segmentWorkers
		}
		if err := cfg.Validate("segment"); err != nil {
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

		sessions, err := source.LoadSessions(ctx, cfg.Input.SessionsPath, sourceOptions(cfg))
		if err != nil {
			return err
		}

		ext, err := pipeline.New(opts, normalizer, nil, nil).Extract(ctx, sessions)
		if err != nil {
			return err
		}
		if err := pipeline.ExportUtterancesCSV(ext.Utterances, cfg.Output.Path); err != nil {
			return err
		}

		zap.L().Info("segment: utterances written",
			zap.String("path", cfg.Output.Path),
			zap.Int("utterances", len(ext.Utterances)),
			zap.Any("drops", ext.Drops),
		)
		return nil
	},
}

func init() {
	segmentCmd.Flags().StringVar(&segmentSessions, "sessions", "", "session transcripts file (CSV or XLSX)")
	segmentCmd.Flags().StringVar(&segmentOutput, "output", "", "utterance CSV output path")
	segmentCmd.Flags().IntVar(&segmentWorkers, "workers", 0, "sessions processed concurrently (default from config)")
	rootCmd.AddCommand(segmentCmd)
}
