// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package registration

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

// applicationColumns is the shared SELECT column list.
var applicationColumns = strings.Join(schema.Application.Columns(), ", ")

// PostgresApplicationRepository implements ApplicationRepository using pgx.
type PostgresApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new PostgreSQL implementation of the
// ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{pool: pool}
}

/*
Create persists a new application record.

Parameters:
  - context: context.Context
  - application: *Application

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresApplicationRepository) Create(context context.Context, application *Application) error {
	const query = `
		INSERT INTO public.application (
			id, fullname, email, phone, nationalid, birthyear, category,
			club, city, emergencyname, emergencyphone, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	if application.CreatedAt.IsZero() {
		application.CreatedAt = now
	}
	application.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		application.ID,
		application.FullName,
		application.Email,
		application.Phone,
		application.NationalID,
		application.BirthYear,
		application.Category,
		application.Club,
		application.City,
		application.EmergencyName,
		application.EmergencyPhone,
		application.Status,
		application.CreatedAt,
		application.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_application_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an application by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Application: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresApplicationRepository) FindByID(context context.Context, id string) (*Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM public.application WHERE id = $1`

	application := &Application{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&application.ID,
		&application.FullName,
		&application.Email,
		&application.Phone,
		&application.NationalID,
		&application.BirthYear,
		&application.Category,
		&application.Club,
		&application.City,
		&application.EmergencyName,
		&application.EmergencyPhone,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Application")
		}
		return nil, fmt.Errorf("postgres_application_repo_find_failed: %w", err)
	}

	return application, nil
}

/*
List returns a page of applications, optionally filtered by review status.

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
func (repository *PostgresApplicationRepository) List(context context.Context, status Status, limit, offset int) ([]*Application, int, error) {
	filter := ""
	countQuery := `SELECT count(*) FROM public.application`
	countArgs := []any{}
	listArgs := []any{limit, offset}

	if status != "" {
		filter = ` WHERE status = $3`
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status)
	}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_application_repo_count_failed: %w", err)
	}

	query := `SELECT ` + applicationColumns + ` FROM public.application` + filter + `
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_application_repo_list_failed: %w", err)
	}
	defer rows.Close()

	applications := make([]*Application, 0, limit)
	for rows.Next() {
		application := &Application{}
		if err := rows.Scan(
			&application.ID,
			&application.FullName,
			&application.Email,
			&application.Phone,
			&application.NationalID,
			&application.BirthYear,
			&application.Category,
			&application.Club,
			&application.City,
			&application.EmergencyName,
			&application.EmergencyPhone,
			&application.Status,
			&application.CreatedAt,
			&application.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_application_repo_scan_failed: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_application_repo_rows_failed: %w", err)
	}

	return applications, total, nil
}

/*
UpdateStatus moves an application to a new review state.

Parameters:
  - context: context.Context
  - id: string
  - status: Status

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresApplicationRepository) UpdateStatus(context context.Context, id string, status Status) error {
	const query = `UPDATE public.application SET status = $2, updatedat = now() WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, status)
	if err != nil {
		return fmt.Errorf("postgres_application_repo_status_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Application")
	}

	return nil
}
