package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sakhi-4096/alx-backend-user-data/internal/config"
	"github.com/sakhi-4096/alx-backend-user-data/internal/logging"
)

const serviceName = "user-auth"

// NewRootCmd creates the root command. With no subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "User authentication service",
		Long:          `Registers users, checks credentials, issues session cookies and handles password resets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// loadEnv reads config after loading an optional .env file, and installs
// the service logger as the slog default.
func loadEnv() (config.Config, *slog.Logger, error) {
	dotenvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger := logging.Setup(serviceName, version, "json", "info", os.Stderr)
		logger.Error("load config failed", "error", err)
		return config.Config{}, nil, err
	}

	logger := logging.Setup(serviceName, version, cfg.LogFormat, cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)
	if dotenvErr != nil {
		logger.Debug("no .env file found; relying on existing environment")
	}
	return cfg, logger, nil
}
