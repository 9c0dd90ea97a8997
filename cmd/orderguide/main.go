package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/config"
	"github.com/jask/orderguide/internal/export"
	"github.com/jask/orderguide/internal/logging"
	"github.com/jask/orderguide/internal/session"
	"github.com/jask/orderguide/internal/testdata"
	"github.com/jask/orderguide/internal/tui"
)

var (
	// Global flags
	verbose bool
	cfgPath string
	demo    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "orderguide",
	Short: "Build a restaurant order guide from vendor price sheets",
	Long: `orderguide walks through four steps: register vendors, upload one CSV
price sheet per vendor, merge them into a single order guide, then search,
filter, sort, select and export it.

Run without arguments to start the interactive wizard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.LoadFile(cfgPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logCfg := cfg.Log
		if cmd != cmd.Root() {
			// subcommands are headless and log to stderr
			logCfg.Path = "stderr"
		}
		logger, err = logging.New(logCfg, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.config/orderguide/config.toml or $ORDERGUIDE_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Start with sample vendors and price sheets")

	rootCmd.AddCommand(assembleCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSession() *session.Session {
	return session.New(session.Options{
		Logger:             logger,
		MaxUploadBytes:     cfg.Upload.MaxBytes,
		InvalidateOnUpload: cfg.Guide.InvalidateOnUpload,
		SimilarityDistance: cfg.Vendor.SimilarityDistance,
	})
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := newSession()
	if demo {
		if err := testdata.Seed(sess); err != nil {
			return err
		}
	}
	exporter, err := export.New(cfg.Export.Format, cfg.Export.Dir, logger)
	if err != nil {
		return err
	}

	logger.Info("wizard started", zap.String("session", sess.ID), zap.Bool("demo", demo))
	p := tea.NewProgram(tui.New(ctx, cfg, sess, exporter, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}
