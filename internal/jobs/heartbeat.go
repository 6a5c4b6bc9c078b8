// internal/jobs/heartbeat.go
package jobs

import (
	"context"
	"time"

	"crm-service/internal/client"

	"go.uber.org/zap"
)

// HeartbeatJob appends a liveness line and then probes the API. The line is
// written before the probe, so a dead endpoint never suppresses it, and the
// job itself never fails.
type HeartbeatJob struct {
	client *client.Client
	sink   *Sink
	logger *zap.Logger
}

func NewHeartbeatJob(client *client.Client, sink *Sink, logger *zap.Logger) *HeartbeatJob {
	return &HeartbeatJob{
		client: client,
		sink:   sink,
		logger: logger,
	}
}

func (j *HeartbeatJob) Run(ctx context.Context) error {
	now := time.Now().Format(timeFormat)

	if err := j.sink.Append(now + " CRM is alive"); err != nil {
		j.logger.Error("failed to write heartbeat line", zap.Error(err))
	}

	if err := j.client.Health(ctx); err != nil {
		j.logger.Warn("endpoint not healthy", zap.Error(err))
		return nil
	}

	j.logger.Info("heartbeat ok")
	return nil
}
