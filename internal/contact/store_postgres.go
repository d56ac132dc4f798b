// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact

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

// messageColumns is the shared SELECT column list.
var messageColumns = strings.Join(schema.ContactMessage.Columns(), ", ")

// PostgresMessageRepository implements MessageRepository using pgx.
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new PostgreSQL implementation of the
// MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

/*
Create persists a new message record.

Parameters:
  - context: context.Context
  - message: *Message

Returns:
  - error: Database errors
*/
func (repository *PostgresMessageRepository) Create(context context.Context, message *Message) error {
	const query = `
		INSERT INTO public.contactmessage (id, name, email, subject, body, isread, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Body,
		message.IsRead,
		message.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_contact_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a message by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Message: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresMessageRepository) FindByID(context context.Context, id string) (*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM public.contactmessage WHERE id = $1`

	message := &Message{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Body,
		&message.IsRead,
		&message.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Message")
		}
		return nil, fmt.Errorf("postgres_contact_repo_find_failed: %w", err)
	}

	return message, nil
}

/*
List returns a page of messages, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Message: Page of messages
  - int: Total count
  - error: Database errors
*/
func (repository *PostgresMessageRepository) List(context context.Context, limit, offset int) ([]*Message, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM public.contactmessage`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_count_failed: %w", err)
	}

	query := `SELECT ` + messageColumns + ` FROM public.contactmessage
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_list_failed: %w", err)
	}
	defer rows.Close()

	messages := make([]*Message, 0, limit)
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Body,
			&message.IsRead,
			&message.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_contact_repo_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_contact_repo_rows_failed: %w", err)
	}

	return messages, total, nil
}

/*
MarkRead flags a message as handled.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresMessageRepository) MarkRead(context context.Context, id string) error {
	const query = `UPDATE public.contactmessage SET isread = true WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_contact_repo_read_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Message")
	}

	return nil
}
