// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gfyalova/granfondo/internal/platform/request"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the contact form HTTP endpoints.
type Handler struct {
	contactService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{contactService: service}
}

// PublicRoutes returns the unauthenticated contact form endpoint.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

// AdminRoutes returns the back-office inbox endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	return router
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

/*
Submit accepts a new contact message.

POST /api/v1/contact

Response:
  - 201: Persisted message
  - 400: ErrInvalidJSON or validation failure (all field errors)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	message, err := handler.contactService.Submit(request.Context(), SubmitInput{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, message)
}

/*
List returns the back-office inbox.

GET /api/v1/admin/contact

Response:
  - 200: Paginated messages, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	messages, total, err := handler.contactService.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns one message and marks it read.

GET /api/v1/admin/contact/{id}

Response:
  - 200: Message
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	message, err := handler.contactService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, message)
}
