// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact

import (
	"context"
	"log/slog"

	"github.com/gfyalova/granfondo/internal/platform/mailer"
	"github.com/gfyalova/granfondo/internal/platform/sanitize"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/uuid"
)

// notificationBody is the HTML fragment rendered into the notification
// layout when a new contact message arrives.
const notificationBody = `<p><strong>{{name}}</strong> ({{email}}) yeni bir mesaj gönderdi:</p>
<p><em>{{subject}}</em></p>
<p>{{body}}</p>`

// # Definitions & Constructors

// SubmitInput is the raw contact form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Service implements the contact form business logic.
type Service struct {
	messageRepo MessageRepository
	notifier    mailer.Notifier
	notifyEmail string
	log         *slog.Logger
}

// NewService constructs a new contact [Service]. notifyEmail is the
// back-office address that receives a copy of each message; when empty the
// notification step is skipped.
func NewService(messageRepo MessageRepository, notifier mailer.Notifier, notifyEmail string, logger *slog.Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		log:         logger,
	}
}

// # Operations

/*
Submit validates, sanitizes and persists a contact message, then notifies
the back office.

Description: The notification is best-effort; a mailer failure is logged
and the submission still succeeds, since the message is already stored.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Message: Persisted entity
  - error: apperr.ValidationError with field details, or database errors
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Message, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, 2).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldSubject, input.Subject).
		MinLen(FieldSubject, input.Subject, 5).
		MaxLen(FieldSubject, input.Subject, 200).
		Required(FieldBody, input.Body).
		MinLen(FieldBody, input.Body, 10).
		MaxLen(FieldBody, input.Body, 2000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	message := &Message{
		ID:      uuid.New(),
		Name:    sanitize.PlainText(input.Name),
		Email:   sanitize.PlainText(input.Email),
		Subject: sanitize.PlainText(input.Subject),
		Body:    sanitize.PlainText(input.Body),
	}

	if err := service.messageRepo.Create(context, message); err != nil {
		return nil, err
	}

	service.log.Info("contact_message_received", slog.String("message_id", message.ID))
	service.notify(context, message)

	return message, nil
}

/*
List returns a back-office page of messages.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Message: Page of messages, newest first
  - int: Total count
  - error: Database errors
*/
func (service *Service) List(context context.Context, limit, offset int) ([]*Message, int, error) {
	return service.messageRepo.List(context, limit, offset)
}

/*
Get returns one message and marks it as read.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Message: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (service *Service) Get(context context.Context, id string) (*Message, error) {
	message, err := service.messageRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !message.IsRead {
		if err := service.messageRepo.MarkRead(context, id); err != nil {
			service.log.Warn("contact_mark_read_failed",
				slog.String("message_id", id),
				slog.String("error", err.Error()))
		} else {
			message.IsRead = true
		}
	}

	return message, nil
}

// notify sends a best-effort copy of the message to the back office.
func (service *Service) notify(context context.Context, message *Message) {
	if service.notifyEmail == "" {
		return
	}

	html := sanitize.BuildNotification(notificationBody, map[string]string{
		"name":    message.Name,
		"email":   message.Email,
		"subject": message.Subject,
		"body":    message.Body,
	})

	if err := service.notifier.Send(context, service.notifyEmail, "GranFondo Yalova — Yeni İletişim Mesajı", html); err != nil {
		service.log.Warn("contact_notification_failed",
			slog.String("message_id", message.ID),
			slog.String("error", err.Error()))
	}
}
