package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ledgerly/backend/internal/errs"
	"github.com/ledgerly/backend/internal/lib/job"
	"github.com/ledgerly/backend/internal/middleware"
	"github.com/ledgerly/backend/internal/server"
	"github.com/ledgerly/backend/internal/service"
	"github.com/labstack/echo/v4"
)

// webhookSignatureHeader carries the HMAC signature of the delivery body.
const webhookSignatureHeader = "X-Webhook-Signature"

// clerkWebhookEvent is the envelope of an identity-provider webhook
// delivery. Only user.created/user.updated events are handled.
type clerkWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// WebhooksHandler ingests identity-provider events that provision User rows.
type WebhooksHandler struct {
	Handler
	services *service.Services
}

func NewWebhooksHandler(s *server.Server, services *service.Services) *WebhooksHandler {
	return &WebhooksHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// HandleClerkEvent verifies and processes a webhook delivery.
//
// This endpoint bypasses the generic binding pipeline because signature
// verification needs the raw body bytes. user.created and user.updated
// events upsert the User row; a fresh user gets a welcome email enqueued.
// Unknown event types are acknowledged and ignored so the provider does not
// retry them forever.
func (h *WebhooksHandler) HandleClerkEvent(c echo.Context) error {
	logger := middleware.GetLogger(c).With().
		Str("operation", "clerk_webhook").
		Logger()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.NewBadRequestError("Unreadable request body", false, nil, nil, nil)
	}

	signature := c.Request().Header.Get(webhookSignatureHeader)
	if signature == "" || !h.services.Auth.VerifyWebhookSignature(body, signature) {
		logger.Warn().Msg("webhook signature verification failed")
		return errs.NewUnauthorizedError("Invalid webhook signature", false)
	}

	var event clerkWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return errs.NewBadRequestError("Malformed webhook payload", false, nil, nil, nil)
	}

	switch event.Type {
	case "user.created", "user.updated":
	default:
		logger.Info().Str("event_type", event.Type).Msg("ignoring webhook event")
		return c.NoContent(http.StatusNoContent)
	}

	if event.Data.ID == "" {
		return errs.NewBadRequestError("Webhook payload missing user id", false, nil, nil, nil)
	}

	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	name := event.Data.FirstName
	if event.Data.LastName != "" {
		if name != "" {
			name += " "
		}
		name += event.Data.LastName
	}

	user, err := h.services.Users.Upsert(c.Request().Context(), event.Data.ID, email, name)
	if err != nil {
		logger.Error().Err(err).Str("clerk_user_id", event.Data.ID).Msg("failed to provision user")
		return err
	}

	if event.Type == "user.created" && email != "" {
		// The email is best-effort; neither failure mode fails provisioning.
		task, err := job.NewWelcomeEmailTask(email, event.Data.FirstName)
		if err != nil {
			logger.Error().Err(err).Str("to", email).Msg("failed to build welcome email task")
		} else if _, err := h.server.Job.Client.Enqueue(task); err != nil {
			logger.Error().Err(err).Str("to", email).Msg("failed to enqueue welcome email")
		}
	}

	logger.Info().
		Str("clerk_user_id", user.ClerkUserID).
		Str("event_type", event.Type).
		Msg("user provisioned")

	return c.NoContent(http.StatusNoContent)
}
