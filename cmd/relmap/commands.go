package main

import (
	"errors"
	"os"

	"github.com/N3moAhead/relmap/internal/config"
	"github.com/N3moAhead/relmap/internal/logging"
	"github.com/N3moAhead/relmap/internal/migration"
	"github.com/N3moAhead/relmap/internal/network"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds what every command needs once flags are parsed.
type app struct {
	configPath string
	dataPath   string

	cfg    config.Config
	logger *zap.Logger
	store  *network.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "relmap",
		Short: "Keep track of people and how they relate to each other",
		Long: `relmap maintains a small network of people and labeled relationships
between them, stored in a JSON file. Without a subcommand it opens the
interactive terminal UI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.dataPath, "data", "", "relationship file (overrides data_file from the config)")

	rootCmd.AddCommand(
		newPersonCmd(a),
		newRelCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newMapCmd(a),
		newStatusesCmd(),
	)
	return rootCmd
}

// setup loads config, logger and the relationship file. A missing
// relationship file starts an empty network.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.DataFile = a.dataPath
	}
	a.cfg = cfg

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	a.logger = logger

	if err := migration.RunMigrations(cfg.DataFile, logger); err != nil {
		return err
	}

	a.store = network.New(network.WithLogger(logger))
	a.store.Bind(cfg.DataFile)
	if err := a.store.Load(cfg.DataFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		logger.Info("no relationship file yet, starting empty", zap.String("path", cfg.DataFile))
	}
	return nil
}
