// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events

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

// eventColumns is the shared SELECT column list.
var eventColumns = strings.Join(schema.Event.Columns(), ", ")

// PostgresEventRepository implements EventRepository using pgx.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new PostgreSQL implementation of the
// EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*Event, error) {
	event := &Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.DistanceKM,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Event")
		}
		return nil, fmt.Errorf("postgres_event_repo_scan_failed: %w", err)
	}
	return event, nil
}

/*
Create persists a new event record.

Parameters:
  - context: context.Context
  - event: *Event

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresEventRepository) Create(context context.Context, event *Event) error {
	const query = `
		INSERT INTO public.event (
			id, title, description, eventdate, location, distancekm, status,
			createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.DistanceKM,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_event_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an event by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Event: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresEventRepository) FindByID(context context.Context, id string) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM public.event WHERE id = $1`
	return scanEvent(repository.pool.QueryRow(context, query, id))
}

/*
List returns a page of events, optionally filtered by publication status.

Parameters:
  - context: context.Context
  - status: Status ("" for all)
  - limit: int
  - offset: int

Returns:
  - []*Event: Page of events, ride date ascending
  - int: Total matching count
  - error: Database errors
*/
func (repository *PostgresEventRepository) List(context context.Context, status Status, limit, offset int) ([]*Event, int, error) {
	filter := ""
	countQuery := `SELECT count(*) FROM public.event`
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
		return nil, 0, fmt.Errorf("postgres_event_repo_count_failed: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM public.event` + filter + `
		ORDER BY eventdate ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_list_failed: %w", err)
	}
	defer rows.Close()

	events := make([]*Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_rows_failed: %w", err)
	}

	return events, total, nil
}

/*
Update replaces the mutable fields of an event.

Parameters:
  - context: context.Context
  - event: *Event

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresEventRepository) Update(context context.Context, event *Event) error {
	const query = `
		UPDATE public.event
		SET title = $2, description = $3, eventdate = $4, location = $5,
			distancekm = $6, status = $7, updatedat = now()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.DistanceKM,
		event.Status,
	)
	if err != nil {
		return fmt.Errorf("postgres_event_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Event")
	}

	return nil
}

/*
Delete removes an event.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresEventRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM public.event WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_event_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Event")
	}

	return nil
}
