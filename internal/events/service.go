// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events

import (
	"context"
	"log/slog"

	"github.com/gfyalova/granfondo/internal/platform/sanitize"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/uuid"
)

// # Definitions & Constructors

// EventInput carries the fields of a create or update request.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	DistanceKM  int
	Status      string
}

// Service implements the event calendar business logic.
type Service struct {
	eventRepo EventRepository
	log       *slog.Logger
}

// NewService constructs a new event [Service].
func NewService(eventRepo EventRepository, logger *slog.Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		log:       logger,
	}
}

// # Operations

/*
ListPublished returns the public calendar page.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Event: Published events, ride date ascending
  - int: Total published count
  - error: Database errors
*/
func (service *Service) ListPublished(context context.Context, limit, offset int) ([]*Event, int, error) {
	return service.eventRepo.List(context, StatusPublished, limit, offset)
}

/*
List returns a back-office page of events in any state.

Parameters:
  - context: context.Context
  - status: Status ("" for all)
  - limit: int
  - offset: int

Returns:
  - []*Event: Page of events
  - int: Total matching count
  - error: Database errors
*/
func (service *Service) List(context context.Context, status Status, limit, offset int) ([]*Event, int, error) {
	return service.eventRepo.List(context, status, limit, offset)
}

/*
Get returns one event.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Event: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (service *Service) Get(context context.Context, id string) (*Event, error) {
	return service.eventRepo.FindByID(context, id)
}

/*
Create validates, sanitizes and persists a new event.

Description: An empty status defaults to published, matching the historical
form behavior where the status field was optional.

Parameters:
  - context: context.Context
  - input: EventInput

Returns:
  - *Event: Persisted entity
  - error: apperr.ValidationError with field details, or database errors
*/
func (service *Service) Create(context context.Context, input EventInput) (*Event, error) {
	event, err := service.buildEvent(input)
	if err != nil {
		return nil, err
	}
	event.ID = uuid.New()

	if err := service.eventRepo.Create(context, event); err != nil {
		return nil, err
	}

	service.log.Info("event_created", slog.String("event_id", event.ID), slog.String("title", event.Title))
	return event, nil
}

/*
Update validates, sanitizes and replaces an existing event.

Parameters:
  - context: context.Context
  - id: string
  - input: EventInput

Returns:
  - *Event: Updated entity
  - error: apperr.ValidationError, apperr.NotFound, or database errors
*/
func (service *Service) Update(context context.Context, id string, input EventInput) (*Event, error) {
	existing, err := service.eventRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	event, err := service.buildEvent(input)
	if err != nil {
		return nil, err
	}
	event.ID = existing.ID
	event.CreatedAt = existing.CreatedAt

	if err := service.eventRepo.Update(context, event); err != nil {
		return nil, err
	}

	return event, nil
}

/*
Delete removes an event from the calendar.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.eventRepo.Delete(context, id); err != nil {
		return err
	}

	service.log.Info("event_deleted", slog.String("event_id", id))
	return nil
}

// buildEvent validates and sanitizes the input into a persistable entity.
func (service *Service) buildEvent(input EventInput) (*Event, error) {
	status := Status(input.Status)
	if status == "" {
		status = StatusPublished
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDate, input.Date).
		Date(FieldDate, input.Date).
		MaxLen(FieldLocation, input.Location, 200).
		MaxLen(FieldDescription, input.Description, 10000).
		OneOf(FieldStatus, string(status),
			string(StatusDraft), string(StatusPublished), string(StatusArchived)).
		Custom(FieldDistanceKM, input.DistanceKM < 0 || input.DistanceKM > 1000,
			"Distance must be between 0 and 1000 km")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Event{
		Title:       sanitize.PlainText(input.Title),
		Description: sanitize.RichText(input.Description),
		Date:        input.Date,
		Location:    sanitize.PlainText(input.Location),
		DistanceKM:  input.DistanceKM,
		Status:      status,
	}, nil
}
