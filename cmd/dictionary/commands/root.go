package commands

import (
	"fmt"
	"strings"

	"dictionary/internal/config"
	"dictionary/internal/repository"
	"dictionary/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every subcommand works with once the root has started up
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	slots  repository.SlotStorage
	store  *service.WordStore
	close  func()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		dataDir string
		backend string
	)
	a := &app{close: func() {}}

	root := &cobra.Command{
		Use:          "dictionary",
		Short:        "Personal dictionary of words, meanings and categories",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Storage.DataDir = dataDir
			}
			if backend != "" {
				cfg.Storage.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			slots, closeSlots, err := openSlotStorage(ctx, cfg, logger)
			if err != nil {
				logger.Error("Failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
				return err
			}

			store := service.NewWordStore(slots, logger)
			if err := store.Initialize(ctx); err != nil {
				closeSlots()
				return err
			}

			a.cfg = cfg
			a.logger = logger
			a.slots = slots
			a.store = store
			a.close = closeSlots
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of the file backend (default $DATA_DIR or .dictionary)")
	root.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file, postgres or s3 (default $STORAGE_BACKEND or file)")

	root.AddCommand(addCmd(a), listCmd(a), deleteCmd(a), categoriesCmd(a), botCmd(a))
	return root
}

// newLogger builds a production logger at level, or a development logger for debug
func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}

	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	return cfg.Build()
}
