// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package registration

import "context"

// # Application Data Access

// ApplicationRepository defines the data access contract for applications.
//
// The repository stores and returns the NationalID column VERBATIM — the
// encryption envelope is opaque at this layer. Only the service translates
// between plaintext, envelope, and masked forms.
type ApplicationRepository interface {

	/*
		Create persists a new application.

		Parameters:
		  - context: context.Context
		  - application: *Application (NationalID already encrypted)

		Returns:
		  - error: Database constraint violations or connectivity errors
	*/
	Create(context context.Context, application *Application) error

	/*
		FindByID returns the application with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Application: Hydrated entity (NationalID still enveloped)
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Application, error)

	/*
		List returns a page of applications plus the total count.

		Description: When status is non-empty the page is filtered to that
		review state.

		Parameters:
		  - context: context.Context
		  - status: Status ("" for all)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Application: Page of applications, newest first
		  - int: Total matching count
		  - error: Database errors
	*/
	List(context context.Context, status Status, limit, offset int) ([]*Application, int, error)

	/*
		UpdateStatus moves an application to a new review state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: Status

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	UpdateStatus(context context.Context, id string, status Status) error
}
