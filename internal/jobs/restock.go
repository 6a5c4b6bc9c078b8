// internal/jobs/restock.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/client"

	"go.uber.org/zap"
)

// RestockJob triggers the low-inventory restock mutation and appends the
// outcome to its sink. Failures are logged, never propagated.
type RestockJob struct {
	client *client.Client
	sink   *Sink
	logger *zap.Logger
}

func NewRestockJob(client *client.Client, sink *Sink, logger *zap.Logger) *RestockJob {
	return &RestockJob{
		client: client,
		sink:   sink,
		logger: logger,
	}
}

func (j *RestockJob) Run(ctx context.Context) error {
	now := time.Now().Format(timeFormat)

	result, err := j.client.RestockLowInventory(ctx)
	if err != nil {
		if serr := j.sink.Append(fmt.Sprintf("%s Error: %v", now, err)); serr != nil {
			j.logger.Error("failed to write restock line", zap.Error(serr))
		}
		j.logger.Error("restock call failed", zap.Error(err))
		return nil
	}

	line := fmt.Sprintf("%s %s", now, result.Message)
	for _, p := range result.UpdatedProducts {
		line += fmt.Sprintf(" | %s: %d", p.Name, p.Stock)
	}
	if err := j.sink.Append(line); err != nil {
		j.logger.Error("failed to write restock line", zap.Error(err))
	}

	j.logger.Info("restock finished", zap.Int("updated", len(result.UpdatedProducts)))
	return nil
}
