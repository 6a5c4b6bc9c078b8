package cli

import (
	"crm-service/internal/client"
	"crm-service/internal/jobs"

	"github.com/spf13/cobra"
)

// NewRemindersCommand creates the reminders command. Unlike the other jobs
// it propagates a terminal error, so cron sees a non-zero exit once the
// transport retries are exhausted.
func NewRemindersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Log reminders for pending orders of the last seven days",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			defer logger.Sync()

			job := jobs.NewReminderJob(
				client.New(cfg.APIBaseURL, cfg.ReminderRetries, logger),
				jobs.NewSink(cfg.ReminderLog),
				logger,
			)
			return job.Run(cmd.Context())
		},
	}
}
