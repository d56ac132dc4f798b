// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package admin

import (
	"context"
	"time"
)

// # Credential Data Access

// CredentialRepository defines the data access contract for admin accounts.
type CredentialRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Description: The lookup is a case-sensitive exact match; "Admin" and
		"admin" are different accounts.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Credential: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Credential, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Credential: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Credential, error)

	/*
		List returns a page of admin accounts plus the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Credential: Page of accounts, newest first
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Credential, int, error)

	/*
		Create persists a brand-new admin account.

		Parameters:
		  - context: context.Context
		  - credential: *Credential

		Returns:
		  - error: Unique-constraint violations or connectivity errors
	*/
	Create(context context.Context, credential *Credential) error

	/*
		UpdateLastLogin records the most recent successful login time.

		Description: Best-effort side effect of login; callers must not fail
		the login when this errors.

		Parameters:
		  - context: context.Context
		  - id: string
		  - at: time.Time

		Returns:
		  - error: Database update failures
	*/
	UpdateLastLogin(context context.Context, id string, at time.Time) error

	/*
		SetActive flips the active flag of an account.

		Parameters:
		  - context: context.Context
		  - id: string
		  - active: bool

		Returns:
		  - error: apperr.NotFound or database update failures
	*/
	SetActive(context context.Context, id string, active bool) error
}

// # Session Revocation

// RevocationRepository is the deny-list consulted when reading a session.
//
// Tokens are stateless; Revoke records a token's jti until its natural
// expiry so that logout actually ends the session server-side.
type RevocationRepository interface {

	/*
		Revoke adds a token ID to the deny-list.

		Parameters:
		  - context: context.Context
		  - tokenID: string (the jti claim)
		  - ttl: time.Duration (remaining token lifetime)

		Returns:
		  - error: Execution errors
	*/
	Revoke(context context.Context, tokenID string, ttl time.Duration) error

	/*
		IsRevoked reports whether a token ID is on the deny-list.

		Parameters:
		  - context: context.Context
		  - tokenID: string

		Returns:
		  - bool: true when the token has been revoked
		  - error: Connectivity errors
	*/
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
