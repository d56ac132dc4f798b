// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gfyalova/granfondo/internal/platform/request"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the news HTTP endpoints.
type Handler struct {
	newsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{newsService: service}
}

// PublicRoutes returns the unauthenticated news endpoints.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPublished)
	router.Get("/{slug}", handler.getPublished)
	return router
}

// AdminRoutes returns the back-office content management endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
	return router
}

type postRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
	Status  string `json:"status"`
}

func (r postRequest) toInput() PostInput {
	return PostInput{
		Title:   r.Title,
		Slug:    r.Slug,
		Summary: r.Summary,
		Body:    r.Body,
		Status:  r.Status,
	}
}

/*
ListPublished returns the public news feed.

GET /api/v1/news

Response:
  - 200: Paginated published posts, newest first
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	posts, total, err := handler.newsService.ListPublished(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetPublished returns one published post by slug.

GET /api/v1/news/{slug}

Response:
  - 200: Post
  - 404: ErrNotFound (also for drafts and archived posts)
*/
func (handler *Handler) getPublished(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.newsService.GetPublishedBySlug(request.Context(), requestutil.Param(request, FieldSlug))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
List returns a back-office page of posts in any publication state.

GET /api/v1/admin/news?status=draft

Response:
  - 200: Paginated posts
  - 400: Unknown status value
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get(FieldStatus))

	if status != "" && !status.IsValid() {
		respond.Error(writer, request, validate.RequiredError(FieldStatus, "Unknown publication status"))
		return
	}

	posts, total, err := handler.newsService.List(request.Context(), status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns one post regardless of state.

GET /api/v1/admin/news/{id}

Response:
  - 200: Post
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.newsService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
Create adds a new post.

POST /api/v1/admin/news

Response:
  - 201: Persisted post (body sanitized, slug derived when omitted)
  - 400: ErrInvalidJSON or validation failure
  - 409: Duplicate slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.newsService.Create(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
Update replaces a post.

PUT /api/v1/admin/news/{id}

Response:
  - 200: Updated post
  - 400: ErrInvalidJSON or validation failure
  - 404: ErrNotFound
  - 409: Duplicate slug
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.newsService.Update(request.Context(), requestutil.Param(request, "id"), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
Remove deletes a post.

DELETE /api/v1/admin/news/{id}

Response:
  - 204: No content
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.newsService.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
