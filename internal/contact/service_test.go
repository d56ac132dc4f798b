// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/contact"
	"github.com/gfyalova/granfondo/internal/platform/apperr"
)

// # Test Fakes

// fakeMessageRepository is an in-memory MessageRepository.
type fakeMessageRepository struct {
	messages    map[string]*contact.Message
	markReadErr error
}

func newFakeMessageRepository() *fakeMessageRepository {
	return &fakeMessageRepository{messages: map[string]*contact.Message{}}
}

func (repository *fakeMessageRepository) Create(_ context.Context, message *contact.Message) error {
	stored := *message
	repository.messages[message.ID] = &stored
	return nil
}

func (repository *fakeMessageRepository) FindByID(_ context.Context, id string) (*contact.Message, error) {
	message, ok := repository.messages[id]
	if !ok {
		return nil, apperr.NotFound("Message")
	}
	found := *message
	return &found, nil
}

func (repository *fakeMessageRepository) List(_ context.Context, _, _ int) ([]*contact.Message, int, error) {
	var page []*contact.Message
	for _, message := range repository.messages {
		found := *message
		page = append(page, &found)
	}
	return page, len(page), nil
}

func (repository *fakeMessageRepository) MarkRead(_ context.Context, id string) error {
	if repository.markReadErr != nil {
		return repository.markReadErr
	}
	message, ok := repository.messages[id]
	if !ok {
		return apperr.NotFound("Message")
	}
	message.IsRead = true
	return nil
}

// fakeNotifier records outbound mail instead of sending it.
type fakeNotifier struct {
	recipients []string
	bodies     []string
	sendErr    error
}

func (notifier *fakeNotifier) Send(_ context.Context, to, _, html string) error {
	if notifier.sendErr != nil {
		return notifier.sendErr
	}
	notifier.recipients = append(notifier.recipients, to)
	notifier.bodies = append(notifier.bodies, html)
	return nil
}

// # Helpers

func newTestService(t *testing.T, notifyEmail string) (*contact.Service, *fakeMessageRepository, *fakeNotifier) {
	t.Helper()

	repository := newFakeMessageRepository()
	notifier := &fakeNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return contact.NewService(repository, notifier, notifyEmail, logger), repository, notifier
}

func validInput() contact.SubmitInput {
	return contact.SubmitInput{
		Name:    "Ayşe Demir",
		Email:   "ayse@example.com",
		Subject: "Parkur hakkında soru",
		Body:    "Start saatinde değişiklik olacak mı?",
	}
}

// # Submission

/*
TestService_Submit covers validation, sanitization, and the best-effort
back-office notification.
*/
func TestService_Submit(t *testing.T) {
	t.Run("persists and notifies", func(t *testing.T) {
		service, repository, notifier := newTestService(t, "info@granfondoyalova.com")

		message, err := service.Submit(context.Background(), validInput())
		require.NoError(t, err)

		stored := repository.messages[message.ID]
		require.NotNil(t, stored)
		assert.False(t, stored.IsRead)

		require.Equal(t, []string{"info@granfondoyalova.com"}, notifier.recipients)
		require.Len(t, notifier.bodies, 1)
		assert.Contains(t, notifier.bodies[0], "Ayşe Demir")
	})

	t.Run("strips markup before storage", func(t *testing.T) {
		service, repository, _ := newTestService(t, "")

		input := validInput()
		input.Body = `Merhaba <script>alert(1)</script>nasılsınız, startta görüşürüz`

		message, err := service.Submit(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "Merhaba nasılsınız, startta görüşürüz", repository.messages[message.ID].Body)
	})

	t.Run("empty notify address skips notification", func(t *testing.T) {
		service, _, notifier := newTestService(t, "")

		_, err := service.Submit(context.Background(), validInput())
		require.NoError(t, err)
		assert.Empty(t, notifier.recipients)
	})

	t.Run("mailer failure does not reject the submission", func(t *testing.T) {
		service, repository, notifier := newTestService(t, "info@granfondoyalova.com")
		notifier.sendErr = assert.AnError

		message, err := service.Submit(context.Background(), validInput())
		require.NoError(t, err)
		assert.Contains(t, repository.messages, message.ID)
	})

	t.Run("validation failures", func(t *testing.T) {
		service, repository, _ := newTestService(t, "")

		tests := []struct {
			name   string
			mutate func(*contact.SubmitInput)
		}{
			{"missing name", func(input *contact.SubmitInput) { input.Name = "" }},
			{"name too short", func(input *contact.SubmitInput) { input.Name = "A" }},
			{"bad email", func(input *contact.SubmitInput) { input.Email = "not-an-email" }},
			{"subject too short", func(input *contact.SubmitInput) { input.Subject = "Soru" }},
			{"body too short", func(input *contact.SubmitInput) { input.Body = "Merhaba" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validInput()
				tt.mutate(&input)

				message, err := service.Submit(context.Background(), input)

				assert.Nil(t, message)
				require.Error(t, err)
				assert.True(t, apperr.IsAppError(err))
			})
		}

		assert.Empty(t, repository.messages)
	})
}

// # Inbox

/*
TestService_Get verifies the read flag flips on first open and that a
failed flag write never hides the message.
*/
func TestService_Get(t *testing.T) {
	service, repository, _ := newTestService(t, "")

	submitted, err := service.Submit(context.Background(), validInput())
	require.NoError(t, err)

	message, err := service.Get(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.True(t, message.IsRead)
	assert.True(t, repository.messages[submitted.ID].IsRead)

	t.Run("mark read failure still returns the message", func(t *testing.T) {
		second, err := service.Submit(context.Background(), validInput())
		require.NoError(t, err)

		repository.markReadErr = assert.AnError
		message, err := service.Get(context.Background(), second.ID)
		require.NoError(t, err)
		assert.False(t, message.IsRead)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Get(context.Background(), "missing")
		assert.EqualError(t, err, "Message not found")
	})
}
