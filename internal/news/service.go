// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/sanitize"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pointer"
	"github.com/gfyalova/granfondo/pkg/slug"
	"github.com/gfyalova/granfondo/pkg/uuid"
)

// # Definitions & Constructors

// PostInput carries the fields of a create or update request.
//
// Slug is optional; when empty it is derived from the title.
type PostInput struct {
	Title   string
	Slug    string
	Summary string
	Body    string
	Status  string
}

// Service implements the news content business logic.
type Service struct {
	postRepo PostRepository
	log      *slog.Logger
}

// NewService constructs a new news [Service].
func NewService(postRepo PostRepository, logger *slog.Logger) *Service {
	return &Service{
		postRepo: postRepo,
		log:      logger,
	}
}

// # Operations

/*
ListPublished returns the public news page.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Post: Published posts, newest first
  - int: Total published count
  - error: Database errors
*/
func (service *Service) ListPublished(context context.Context, limit, offset int) ([]*Post, int, error) {
	return service.postRepo.List(context, StatusPublished, limit, offset)
}

/*
GetPublishedBySlug returns one published post for the public site.

Description: Draft and archived posts are invisible on the public surface;
requesting them yields the same not-found as a missing slug.

Parameters:
  - context: context.Context
  - postSlug: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (service *Service) GetPublishedBySlug(context context.Context, postSlug string) (*Post, error) {
	post, err := service.postRepo.FindBySlug(context, postSlug)
	if err != nil {
		return nil, err
	}
	if post.Status != StatusPublished {
		return nil, apperr.NotFound("Post")
	}
	return post, nil
}

/*
List returns a back-office page of posts in any state.

Parameters:
  - context: context.Context
  - status: Status ("" for all)
  - limit: int
  - offset: int

Returns:
  - []*Post: Page of posts
  - int: Total matching count
  - error: Database errors
*/
func (service *Service) List(context context.Context, status Status, limit, offset int) ([]*Post, int, error) {
	return service.postRepo.List(context, status, limit, offset)
}

/*
Get returns one post regardless of state.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (service *Service) Get(context context.Context, id string) (*Post, error) {
	return service.postRepo.FindByID(context, id)
}

/*
Create validates, sanitizes and persists a new post.

Description: The body is passed through rich-text sanitization here and
nowhere else; the stored value is served verbatim by readers. PublishedAt
is stamped when the post is created in the published state.

Parameters:
  - context: context.Context
  - input: PostInput

Returns:
  - *Post: Persisted entity
  - error: apperr.ValidationError, apperr.Conflict on duplicate slug,
    or database errors
*/
func (service *Service) Create(context context.Context, input PostInput) (*Post, error) {
	post, err := service.buildPost(input)
	if err != nil {
		return nil, err
	}
	post.ID = uuid.New()

	if post.Status == StatusPublished {
		post.PublishedAt = pointer.To(time.Now())
	}

	if err := service.postRepo.Create(context, post); err != nil {
		return nil, err
	}

	service.log.Info("post_created", slog.String("post_id", post.ID), slog.String("slug", post.Slug))
	return post, nil
}

/*
Update validates, sanitizes and replaces an existing post.

Description: PublishedAt is stamped on the first transition into the
published state and kept on later edits.

Parameters:
  - context: context.Context
  - id: string
  - input: PostInput

Returns:
  - *Post: Updated entity
  - error: apperr.ValidationError, apperr.NotFound, apperr.Conflict,
    or database errors
*/
func (service *Service) Update(context context.Context, id string, input PostInput) (*Post, error) {
	existing, err := service.postRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	post, err := service.buildPost(input)
	if err != nil {
		return nil, err
	}
	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt
	post.PublishedAt = existing.PublishedAt

	if post.Status == StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = pointer.To(time.Now())
	}

	if err := service.postRepo.Update(context, post); err != nil {
		return nil, err
	}

	return post, nil
}

/*
Delete removes a post.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.postRepo.Delete(context, id); err != nil {
		return err
	}

	service.log.Info("post_deleted", slog.String("post_id", id))
	return nil
}

// buildPost validates and sanitizes the input into a persistable entity.
func (service *Service) buildPost(input PostInput) (*Post, error) {
	status := Status(input.Status)
	if status == "" {
		status = StatusDraft
	}

	postSlug := input.Slug
	if postSlug == "" {
		postSlug = slug.From(input.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldSlug, postSlug).
		Slug(FieldSlug, postSlug).
		MaxLen(FieldSummary, input.Summary, 500).
		Required(FieldBody, input.Body).
		OneOf(FieldStatus, string(status),
			string(StatusDraft), string(StatusPublished), string(StatusArchived))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Post{
		Title:   sanitize.PlainText(input.Title),
		Slug:    postSlug,
		Summary: sanitize.PlainText(input.Summary),
		Body:    sanitize.RichText(input.Body),
		Status:  status,
	}, nil
}
