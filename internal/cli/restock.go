package cli

import (
	"crm-service/internal/client"
	"crm-service/internal/jobs"

	"github.com/spf13/cobra"
)

// NewRestockCommand creates the restock command. Like the heartbeat it
// never signals failure to its invoker.
func NewRestockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restock",
		Short: "Trigger the low-inventory restock mutation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			defer logger.Sync()

			job := jobs.NewRestockJob(
				client.New(cfg.APIBaseURL, 1, logger),
				jobs.NewSink(cfg.RestockLog),
				logger,
			)
			return job.Run(cmd.Context())
		},
	}
}
