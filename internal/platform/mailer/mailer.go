// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package mailer delivers outbound notification emails over SMTP.

Contract:

  - Content passed to [Notifier.Send] must ALREADY have gone through the
    sanitize package; this layer renders and delivers, it does not filter.
  - Delivery failures are surfaced to the caller, which decides whether the
    notification is best-effort (application confirmations) or not.

When SMTP is not configured the [LogNotifier] stands in, logging the
would-be delivery so local development needs no mail server.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Notifier is the single capability the core depends on for notifications.
type Notifier interface {
	// Send delivers one HTML email. The html argument must be sanitized
	// by the caller before it reaches this boundary.
	Send(ctx context.Context, to, subject, html string) error
}

// # SMTP Implementation

// SMTPNotifier delivers mail through an authenticated SMTP relay.
type SMTPNotifier struct {
	client *gomail.Client
	from   string
	log    *slog.Logger
}

// NewSMTPNotifier builds a ready-to-use SMTP notifier.
func NewSMTPNotifier(host string, port int, username, password, from string, logger *slog.Logger) (*SMTPNotifier, error) {
	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, options...)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	return &SMTPNotifier{client: client, from: from, log: logger}, nil
}

// Send delivers one HTML notification email.
func (notifier *SMTPNotifier) Send(ctx context.Context, to, subject, html string) error {
	message := gomail.NewMsg()

	if err := message.From(notifier.from); err != nil {
		return fmt.Errorf("mailer: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mailer: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextHTML, html)

	if err := notifier.client.DialAndSendWithContext(ctx, message); err != nil {
		// Log the recipient domain only; full addresses stay out of logs.
		notifier.log.Error("mail_delivery_failed", slog.String("subject", subject))
		return fmt.Errorf("mailer: delivery failed: %w", err)
	}

	return nil
}

// # Development Fallback

// LogNotifier records deliveries in the log instead of sending them.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier creates a Notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

// Send logs the notification instead of delivering it.
func (notifier *LogNotifier) Send(ctx context.Context, to, subject, html string) error {
	notifier.log.InfoContext(ctx, "mail_delivery_skipped",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(html)),
	)
	return nil
}
