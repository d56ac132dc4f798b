// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news

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
	"github.com/gfyalova/granfondo/internal/platform/dberr"
)

// postColumns is the shared SELECT column list.
var postColumns = strings.Join(schema.Post.Columns(), ", ")

// PostgresPostRepository implements PostRepository using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of the
// PostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Summary,
		&post.Body,
		&post.Status,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_scan_failed: %w", err)
	}
	return post, nil
}

/*
Create persists a new post record.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.Conflict on duplicate slug, or database errors
*/
func (repository *PostgresPostRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO public.post (
			id, title, slug, summary, body, status, publishedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Body,
		post.Status,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A post with this slug already exists")
		}
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a post by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPostRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM public.post WHERE id = $1`
	return scanPost(repository.pool.QueryRow(context, query, id))
}

/*
FindBySlug retrieves a post by its slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPostRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM public.post WHERE slug = $1`
	return scanPost(repository.pool.QueryRow(context, query, slug))
}

/*
List returns a page of posts, optionally filtered by publication status.

Parameters:
  - context: context.Context
  - status: Status ("" for all)
  - limit: int
  - offset: int

Returns:
  - []*Post: Page of posts, newest first
  - int: Total matching count
  - error: Database errors
*/
func (repository *PostgresPostRepository) List(context context.Context, status Status, limit, offset int) ([]*Post, int, error) {
	filter := ""
	countQuery := `SELECT count(*) FROM public.post`
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
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	query := `SELECT ` + postColumns + ` FROM public.post` + filter + `
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

/*
Update replaces the mutable fields of a post.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: apperr.NotFound when no row matched, apperr.Conflict on duplicate
    slug, or database errors
*/
func (repository *PostgresPostRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE public.post
		SET title = $2, slug = $3, summary = $4, body = $5, status = $6,
			publishedat = $7, updatedat = now()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Body,
		post.Status,
		post.PublishedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A post with this slug already exists")
		}
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

/*
Delete removes a post.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresPostRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM public.post WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}
