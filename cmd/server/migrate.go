package main

import (
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Open the store named by DATABASE_URL, apply pending migrations and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadEnv()
	if err != nil {
		return err
	}

	store, backend, err := openStore(cmd.Context(), cfg)
	if err != nil {
		logger.Error("migrations failed", "error", err)
		return err
	}
	defer store.Close()

	logger.Info("migrations applied", "backend", backend)
	cmd.Println("Migrations completed successfully")
	return nil
}
