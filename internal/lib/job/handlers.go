package job

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// handleWelcomeEmail sends the welcome email for a freshly provisioned user.
// Returning an error makes Asynq retry the task per its MaxRetry option.
func (j *JobService) handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return errors.Wrap(err, "unmarshal welcome email payload")
	}

	logger := j.logger.With().
		Str("task", TaskWelcomeEmail).
		Str("to", p.To).
		Logger()

	logger.Info().Msg("processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		logger.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	logger.Info().Msg("welcome email sent")

	return nil
}
