package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleOrganizationCreatedTask emails the configured recipient about a new
// organization. It is a no-op when no mailer or recipient is configured.
// Returning an error makes Asynq retry the task.
func (j *JobService) handleOrganizationCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p OrganizationCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal organization created payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskOrganizationCreated).
		Str("organization_uuid", p.UUID).
		Logger()

	if j.mailer == nil || j.notifyEmail == "" {
		logger.Debug().Msg("organization notifications disabled, skipping task")
		return nil
	}

	logger.Info().Msg("processing organization created task")

	if err := j.mailer.SendOrganizationCreatedEmail(j.notifyEmail, p.UUID, p.Name, p.SName); err != nil {
		logger.Error().Err(err).Msg("failed to send organization created email")
		return err
	}

	logger.Info().Msg("sent organization created email")
	return nil
}
