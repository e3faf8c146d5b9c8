package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/discorsi-cli/internal/roster"
)

var (
	rosterDir         string
	rosterLegislature int
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the deputy roster",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if cmd.Flags().Changed("dir") {
			cfg.Roster.Dir = rosterDir
		}
		return cfg.Validate("roster")
	},
}

var rosterDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download per-legislature roster files from dati.camera.it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		d := newDownloader(cfg)

		if rosterLegislature > 0 {
			_, err := d.Download(ctx, rosterLegislature)
			return err
		}

		paths, err := d.DownloadAll(ctx)
		if err != nil {
			return eris.Wrapf(err, "roster download: %d of %d files written", len(paths), roster.Legislatures)
		}
		zap.L().Info("roster download: complete", zap.Int("files", len(paths)), zap.String("dir", cfg.Roster.Dir))
		return nil
	},
}

var rosterStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the roster tables and print their sizes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := loadRoster(cmd.Context(), cfg, time.Now())
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close() //nolint:errcheck
		return eris.Wrap(enc.Encode(map[string]any{
			"stats":       r.Stats,
			"memberships": len(r.Memberships),
		}), "roster stats: encode")
	},
}

func init() {
	rosterCmd.PersistentFlags().StringVar(&rosterDir, "dir", "", "roster directory (default from config)")
	rosterDownloadCmd.Flags().IntVar(&rosterLegislature, "legislature", 0, "download a single legislature (0 = all)")
	rosterCmd.AddCommand(rosterDownloadCmd, rosterStatsCmd)
	rootCmd.AddCommand(rosterCmd)
}
