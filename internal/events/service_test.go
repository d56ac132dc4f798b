// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/events"
	"github.com/gfyalova/granfondo/internal/platform/apperr"
)

// # Test Fakes

// fakeEventRepository is an in-memory EventRepository.
type fakeEventRepository struct {
	events map[string]*events.Event
}

func newFakeEventRepository() *fakeEventRepository {
	return &fakeEventRepository{events: map[string]*events.Event{}}
}

func (repository *fakeEventRepository) Create(_ context.Context, event *events.Event) error {
	stored := *event
	repository.events[event.ID] = &stored
	return nil
}

func (repository *fakeEventRepository) FindByID(_ context.Context, id string) (*events.Event, error) {
	event, ok := repository.events[id]
	if !ok {
		return nil, apperr.NotFound("Event")
	}
	found := *event
	return &found, nil
}

func (repository *fakeEventRepository) List(_ context.Context, status events.Status, _, _ int) ([]*events.Event, int, error) {
	var page []*events.Event
	for _, event := range repository.events {
		if status != "" && event.Status != status {
			continue
		}
		found := *event
		page = append(page, &found)
	}
	return page, len(page), nil
}

func (repository *fakeEventRepository) Update(_ context.Context, event *events.Event) error {
	if _, ok := repository.events[event.ID]; !ok {
		return apperr.NotFound("Event")
	}
	stored := *event
	repository.events[event.ID] = &stored
	return nil
}

func (repository *fakeEventRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.events[id]; !ok {
		return apperr.NotFound("Event")
	}
	delete(repository.events, id)
	return nil
}

// # Helpers

func newTestService(t *testing.T) (*events.Service, *fakeEventRepository) {
	t.Helper()

	repository := newFakeEventRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return events.NewService(repository, logger), repository
}

func validInput() events.EventInput {
	return events.EventInput{
		Title:       "GranFondo Yalova 2026",
		Description: "<p>140 km parkur, Yalova merkez start.</p>",
		Date:        "2026-05-17",
		Location:    "Yalova Meydan",
		DistanceKM:  140,
		Status:      string(events.StatusPublished),
	}
}

// # Create & Update

/*
TestService_Create covers input validation, sanitization, and the
default-published status.
*/
func TestService_Create(t *testing.T) {
	t.Run("persists sanitized event", func(t *testing.T) {
		service, repository := newTestService(t)

		input := validInput()
		input.Title = "<b>GranFondo Yalova 2026</b>"
		input.Description = `<p>Start</p><script>alert(1)</script>`

		event, err := service.Create(context.Background(), input)
		require.NoError(t, err)

		stored := repository.events[event.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "GranFondo Yalova 2026", stored.Title)
		assert.Equal(t, "<p>Start</p>", stored.Description)
		assert.Equal(t, events.StatusPublished, stored.Status)
	})

	t.Run("empty status defaults to published", func(t *testing.T) {
		service, _ := newTestService(t)

		input := validInput()
		input.Status = ""

		event, err := service.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, events.StatusPublished, event.Status)
	})

	t.Run("validation failures", func(t *testing.T) {
		service, repository := newTestService(t)

		tests := []struct {
			name   string
			mutate func(*events.EventInput)
		}{
			{"missing title", func(input *events.EventInput) { input.Title = "" }},
			{"missing date", func(input *events.EventInput) { input.Date = "" }},
			{"malformed date", func(input *events.EventInput) { input.Date = "17.05.2026" }},
			{"unknown status", func(input *events.EventInput) { input.Status = "cancelled" }},
			{"negative distance", func(input *events.EventInput) { input.DistanceKM = -1 }},
			{"absurd distance", func(input *events.EventInput) { input.DistanceKM = 1001 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validInput()
				tt.mutate(&input)

				event, err := service.Create(context.Background(), input)

				assert.Nil(t, event)
				require.Error(t, err)
				assert.True(t, apperr.IsAppError(err))
			})
		}

		assert.Empty(t, repository.events)
	})
}

func TestService_Update(t *testing.T) {
	service, repository := newTestService(t)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Title = "GranFondo Yalova 2026 — Yeni Tarih"
	input.Date = "2026-06-07"

	updated, err := service.Update(context.Background(), created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "2026-06-07", repository.events[created.ID].Date)

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Update(context.Background(), "missing", validInput())
		assert.EqualError(t, err, "Event not found")
	})

	t.Run("invalid input", func(t *testing.T) {
		input := validInput()
		input.Date = "not-a-date"

		_, err := service.Update(context.Background(), created.ID, input)
		require.Error(t, err)
		assert.True(t, apperr.IsAppError(err))
	})
}

// # Reads & Delete

func TestService_ListPublished(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	draft := validInput()
	draft.Status = string(events.StatusDraft)
	_, err = service.Create(context.Background(), draft)
	require.NoError(t, err)

	published, total, err := service.ListPublished(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, published, 1)
	assert.Equal(t, events.StatusPublished, published[0].Status)
}

func TestService_Delete(t *testing.T) {
	service, repository := newTestService(t)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Empty(t, repository.events)

	assert.EqualError(t, service.Delete(context.Background(), "missing"), "Event not found")
}
