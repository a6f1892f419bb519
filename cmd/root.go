package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/todoql/internal/config"
	"github.com/hmans/todoql/internal/db"
	"github.com/hmans/todoql/internal/logging"
	"github.com/hmans/todoql/internal/todo"
)

var (
	configPath string
	cfg        *config.Config
	logger     = logging.Default()
)

var rootCmd = &cobra.Command{
	Use:   "todoql",
	Short: "A GraphQL API for todos",
	Long: `todoql serves create/read/update/delete operations on todos over GraphQL,
backed by a relational database (SQLite or PostgreSQL).

Run 'todoql serve' to start the server on port 4000.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file; it must not require one
		if cmd.Name() == "init" {
			cfg = config.Default()
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		return nil
	},
}

// openStore connects to the configured database, applying migrations when
// database.auto_migrate is set. The returned func closes the connection.
func openStore() (*todo.GormStore, func(), error) {
	gdb, err := db.Open(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(gdb); err != nil {
			logger.Warn().Err(err).Msg("closing database")
		}
	}

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return todo.NewStore(gdb), closeFn, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigFile, "Path to the config file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("todoql failed")
		os.Exit(1)
	}
}
