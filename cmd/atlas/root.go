// ABOUTME: Root command wiring configuration, logging, and storage for every subcommand.
// ABOUTME: Opens the persistence slot before a command runs and closes it afterwards.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/atlas/internal/config"
	"github.com/harper/atlas/internal/db"
	"github.com/harper/atlas/internal/logging"
	"github.com/harper/atlas/internal/notes"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	backendFlag string
	dataFlag    string

	logger *slog.Logger
	slot   db.Slot
	repo   *notes.Repository
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Local notes with tags and search",
	Long: `atlas keeps short text notes on this machine.

Notes carry tags, are listed newest first, and can be searched and filtered
by tag. Every change is written straight to local storage.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if backendFlag != "" {
			cfg.Storage.Backend = backendFlag
		}
		if dataFlag != "" {
			cfg.Storage.Path = dataFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File: logging.FileConfig{
				Enabled:    cfg.Log.File.Enabled,
				Path:       cfg.Log.File.Path,
				MaxSizeMB:  cfg.Log.File.MaxSizeMB,
				MaxBackups: cfg.Log.File.MaxBackups,
				MaxAgeDays: cfg.Log.File.MaxAgeDays,
				Compress:   cfg.Log.File.Compress,
			},
		})
		slog.SetDefault(logger)

		slot, err = db.Open(cfg.Storage.Backend, cfg.Storage.Path, logger)
		if err != nil {
			// Notes still work for this session; they just won't be kept.
			logger.Warn("storage unavailable, changes will not be saved",
				slog.String("backend", cfg.Storage.Backend),
				slog.Any("error", err))
			slot = nil
		}

		repo = notes.New(db.NewAdapter(slot, db.WithLogger(logger)), notes.WithLogger(logger))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSlot()
	},
}

func closeSlot() error {
	if slot == nil {
		return nil
	}
	err := slot.Close()
	slot = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

// Execute runs the root command, printing any error once.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		_ = closeSlot()
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend (badger|bolt|sqlite|file|memory)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "storage location (default under "+db.DataDir()+")")
}
