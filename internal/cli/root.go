// Package cli wires the scheduled jobs into a small cobra CLI meant to be
// invoked from cron. Each subcommand is one independent job run.
package cli

import (
	"log"

	"crm-service/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand creates the root command for the cron CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crm-cron",
		Short:         "CRM maintenance jobs",
		Long:          "Scheduled maintenance jobs for the CRM backend: liveness heartbeat, low-stock restock and pending-order reminders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewHeartbeatCommand())
	cmd.AddCommand(NewRestockCommand())
	cmd.AddCommand(NewRemindersCommand())

	return cmd
}

// loadEnv builds the shared job dependencies from the environment.
func loadEnv() (config.AppConfig, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[CRON] No .env file found, relying on system env vars")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
