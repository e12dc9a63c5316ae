// Package email sends transactional email through Resend, rendering bodies
// from embedded HTML templates.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/ledgerly/backend/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Client wraps the Resend API client. When no API key is configured the
// client is a no-op: sends are logged and skipped, so local development
// doesn't require a Resend account.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Email.From,
		logger: logger,
	}
	if cfg.Email.APIKey != "" {
		c.client = resend.NewClient(cfg.Email.APIKey)
	}
	return c
}

// SendEmail renders the named embedded template with data and sends the
// result to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	if c.client == nil {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("email sending disabled, skipping")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
