// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact

import "context"

// # Message Data Access

// MessageRepository defines the data access contract for contact messages.
type MessageRepository interface {

	/*
		Create persists a new message.

		Parameters:
		  - context: context.Context
		  - message: *Message

		Returns:
		  - error: Database errors
	*/
	Create(context context.Context, message *Message) error

	/*
		FindByID returns the message with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Message: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Message, error)

	/*
		List returns a page of messages plus the total count, newest first.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Message: Page of messages
		  - int: Total count
		  - error: Database errors
	*/
	List(context context.Context, limit, offset int) ([]*Message, int, error)

	/*
		MarkRead flags a message as handled.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	MarkRead(context context.Context, id string) error
}
