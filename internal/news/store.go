// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news

import "context"

// # Post Data Access

// PostRepository defines the data access contract for news posts.
type PostRepository interface {

	/*
		Create persists a new post.

		Parameters:
		  - context: context.Context
		  - post: *Post (Body already sanitized)

		Returns:
		  - error: apperr.Conflict on duplicate slug, or database errors
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID returns the post with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		FindBySlug returns the post with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindBySlug(context context.Context, slug string) (*Post, error)

	/*
		List returns a page of posts plus the total count.

		Description: When status is non-empty the page is filtered to that
		publication state. Posts are ordered newest first.

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
	List(context context.Context, status Status, limit, offset int) ([]*Post, int, error)

	/*
		Update replaces the mutable fields of a post.

		Parameters:
		  - context: context.Context
		  - post: *Post (ID selects the row)

		Returns:
		  - error: apperr.NotFound, apperr.Conflict on duplicate slug,
		    or database errors
	*/
	Update(context context.Context, post *Post) error

	/*
		Delete removes a post.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	Delete(context context.Context, id string) error
}
