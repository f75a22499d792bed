// AngelaMos | 2026
// sender.go

// Package notify sends the transactional emails: the welcome message after
// sign-up and the confirmation after an order is placed.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	slog.InfoContext(ctx, "email sent",
		"message_id", sent.Id,
		"subject", msg.Subject,
	)
	return nil
}

// LogSender stands in when email delivery is disabled.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.DebugContext(ctx, "email delivery disabled",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
