package cli

import (
	"crm-service/internal/client"
	"crm-service/internal/jobs"

	"github.com/spf13/cobra"
)

// NewHeartbeatCommand creates the heartbeat command. It always exits zero:
// a dead endpoint is logged, not escalated.
func NewHeartbeatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Append a liveness line and probe the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			defer logger.Sync()

			job := jobs.NewHeartbeatJob(
				client.New(cfg.APIBaseURL, 1, logger),
				jobs.NewSink(cfg.HeartbeatLog),
				logger,
			)
			return job.Run(cmd.Context())
		},
	}
}
