package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender is the outbound email transport. Implementations can be
// swapped (SendGrid, SMTP, stub) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents one email to be sent.
type EmailMessage struct {
	To      string
	ToName  string
	ReplyTo string // optional; lets staff reply straight to the submitter
	Subject string
	Body    string // plain text body
	HTML    string // optional HTML body
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a SendGrid email sender. Returns nil when no API
// key is configured.
func NewSendGridSender(cfg SendGridConfig) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Legoe Physio Wellness"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	body := msg.Body
	html := msg.HTML
	if html == "" {
		html = body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, body, html)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Printf("email sent to=%s subject=%q status=%d", msg.To, msg.Subject, response.StatusCode)
	return nil
}

// StubEmailSender logs instead of sending. Used in dev and when email is
// disabled by config.
type StubEmailSender struct{}

func NewStubEmailSender() *StubEmailSender {
	return &StubEmailSender{}
}

func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	log.Printf("stub email sender: would send to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
