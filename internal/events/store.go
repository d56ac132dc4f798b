// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events

import "context"

// # Event Data Access

// EventRepository defines the data access contract for calendar events.
type EventRepository interface {

	/*
		Create persists a new event.

		Parameters:
		  - context: context.Context
		  - event: *Event

		Returns:
		  - error: Database constraint violations or connectivity errors
	*/
	Create(context context.Context, event *Event) error

	/*
		FindByID returns the event with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Event: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Event, error)

	/*
		List returns a page of events plus the total count.

		Description: When status is non-empty the page is filtered to that
		publication state. Events are ordered by ride date ascending so the
		public calendar reads chronologically.

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
	List(context context.Context, status Status, limit, offset int) ([]*Event, int, error)

	/*
		Update replaces the mutable fields of an event.

		Parameters:
		  - context: context.Context
		  - event: *Event (ID selects the row)

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	Update(context context.Context, event *Event) error

	/*
		Delete removes an event.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	Delete(context context.Context, id string) error
}
