// internal/jobs/reminder.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/client"

	"go.uber.org/zap"
)

// reminderWindow is how far back the job looks for pending orders.
const reminderWindow = 7 * 24 * time.Hour

// ReminderJob logs a reminder line for every pending order of the last
// seven days. Transport failures are retried by the client; once retries
// are exhausted the error is logged and returned, signalling the invoker.
type ReminderJob struct {
	client *client.Client
	sink   *Sink
	logger *zap.Logger
}

func NewReminderJob(client *client.Client, sink *Sink, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		client: client,
		sink:   sink,
		logger: logger,
	}
}

func (j *ReminderJob) Run(ctx context.Context) error {
	since := time.Now().Add(-reminderWindow)

	orders, err := j.client.PendingOrdersSince(ctx, since)
	if err != nil {
		now := time.Now().Format(timeFormat)
		if serr := j.sink.Append(fmt.Sprintf("%s Error: %v", now, err)); serr != nil {
			j.logger.Error("failed to write reminder line", zap.Error(serr))
		}
		j.logger.Error("failed to fetch pending orders", zap.Error(err))
		return err
	}

	for _, o := range orders {
		now := time.Now().Format(timeFormat)
		line := fmt.Sprintf("%s Reminder for Order ID: %d, Customer Email: %s",
			now, o.ID, o.CustomerEmail)
		if err := j.sink.Append(line); err != nil {
			j.logger.Error("failed to write reminder line", zap.Error(err))
		}
	}

	j.logger.Info("order reminders processed", zap.Int("count", len(orders)))
	return nil
}
