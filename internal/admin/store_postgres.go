// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

// Package admin: PostgreSQL implementation of the credential repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/database/schema"
)

// credentialColumns is the shared SELECT column list.
var credentialColumns = strings.Join(schema.AdminAccount.Columns(), ", ")

// # Credential Repository

// PostgresCredentialRepository implements CredentialRepository using pgx.
type PostgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository creates a new PostgreSQL implementation of the
// CredentialRepository.
func NewCredentialRepository(pool *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{pool: pool}
}

// VerifyAccess checks at startup that this process can actually read the
// admin account table.
//
// The legacy deployment silently fell back to a restricted client when the
// elevated one was unavailable, changing the shape of the users listing at
// runtime. We fail fast instead: a misconfigured database role stops the
// server before it serves a single request.
func (repository *PostgresCredentialRepository) VerifyAccess(context context.Context) error {
	var count int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM admin.account`).Scan(&count); err != nil {
		return fmt.Errorf("admin: credential table is not accessible (check database role grants): %w", err)
	}
	return nil
}

/*
FindByUsername retrieves an admin account by exact username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Credential: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCredentialRepository) FindByUsername(context context.Context, username string) (*Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM admin.account WHERE username = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, username))
}

/*
FindByID retrieves an admin account by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Credential: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCredentialRepository) FindByID(context context.Context, id string) (*Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM admin.account WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, id))
}

/*
List returns a page of admin accounts ordered by creation time (newest first).

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Credential: Page of accounts
  - int: Total count across all pages
  - error: Database errors
*/
func (repository *PostgresCredentialRepository) List(context context.Context, limit, offset int) ([]*Credential, int, error) {
	const countQuery = `SELECT count(*) FROM admin.account`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_count_failed: %w", err)
	}

	query := `SELECT ` + credentialColumns + ` FROM admin.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_list_failed: %w", err)
	}
	defer rows.Close()

	credentials := make([]*Credential, 0, limit)
	for rows.Next() {
		credential := &Credential{}
		if err := rows.Scan(
			&credential.ID,
			&credential.Username,
			&credential.PasswordHash,
			&credential.Role,
			&credential.Name,
			&credential.IsActive,
			&credential.LastLoginAt,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_admin_repo_scan_failed: %w", err)
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_admin_repo_rows_failed: %w", err)
	}

	return credentials, total, nil
}

/*
Create persists a new admin account.

Parameters:
  - context: context.Context
  - credential: *Credential

Returns:
  - error: apperr.Conflict on duplicate username, or database errors
*/
func (repository *PostgresCredentialRepository) Create(context context.Context, credential *Credential) error {
	const query = `
		INSERT INTO admin.account (
			id, username, passwordhash, role, name, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = now
	}
	credential.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		credential.ID,
		credential.Username,
		credential.PasswordHash,
		credential.Role,
		credential.Name,
		credential.IsActive,
		credential.CreatedAt,
		credential.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_admin_repo_create_failed: %w", err)
	}

	return nil
}

/*
UpdateLastLogin records the most recent successful login timestamp.

Parameters:
  - context: context.Context
  - id: string
  - at: time.Time

Returns:
  - error: Database update failures
*/
func (repository *PostgresCredentialRepository) UpdateLastLogin(context context.Context, id string, at time.Time) error {
	const query = `UPDATE admin.account SET lastloginat = $2, updatedat = $2 WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, id, at); err != nil {
		return fmt.Errorf("postgres_admin_repo_last_login_failed: %w", err)
	}

	return nil
}

/*
SetActive flips the active flag of an account.

Parameters:
  - context: context.Context
  - id: string
  - active: bool

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresCredentialRepository) SetActive(context context.Context, id string, active bool) error {
	const query = `UPDATE admin.account SET isactive = $2, updatedat = now() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, active)
	if err != nil {
		return fmt.Errorf("postgres_admin_repo_set_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Admin account")
	}

	return nil
}

// scanOne hydrates a single Credential row, mapping pgx.ErrNoRows to NotFound.
func (repository *PostgresCredentialRepository) scanOne(row pgx.Row) (*Credential, error) {
	credential := &Credential{}
	err := row.Scan(
		&credential.ID,
		&credential.Username,
		&credential.PasswordHash,
		&credential.Role,
		&credential.Name,
		&credential.IsActive,
		&credential.LastLoginAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Admin account")
		}
		return nil, fmt.Errorf("postgres_admin_repo_find_failed: %w", err)
	}

	return credential, nil
}
