// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package events

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gfyalova/granfondo/internal/platform/request"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the event calendar HTTP endpoints.
type Handler struct {
	eventService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{eventService: service}
}

// PublicRoutes returns the unauthenticated calendar endpoints.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPublished)
	router.Get("/{id}", handler.get)
	return router
}

// AdminRoutes returns the back-office calendar management endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)
	return router
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	DistanceKM  int    `json:"distance_km"`
	Status      string `json:"status"`
}

func (r eventRequest) toInput() EventInput {
	return EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
		DistanceKM:  r.DistanceKM,
		Status:      r.Status,
	}
}

/*
ListPublished returns the public event calendar.

GET /api/v1/events

Response:
  - 200: Paginated published events, ride date ascending
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	events, total, err := handler.eventService.ListPublished(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
List returns a back-office page of events in any publication state.

GET /api/v1/admin/events?status=draft

Response:
  - 200: Paginated events
  - 400: Unknown status value
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get(FieldStatus))

	if status != "" && !status.IsValid() {
		respond.Error(writer, request, validate.RequiredError(FieldStatus, "Unknown publication status"))
		return
	}

	events, total, err := handler.eventService.List(request.Context(), status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns one event.

GET /api/v1/events/{id}

Response:
  - 200: Event
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	event, err := handler.eventService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

/*
Create adds a new event to the calendar.

POST /api/v1/admin/events

Response:
  - 201: Persisted event
  - 400: ErrInvalidJSON or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input eventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	event, err := handler.eventService.Create(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

/*
Update replaces an event.

PUT /api/v1/admin/events/{id}

Response:
  - 200: Updated event
  - 400: ErrInvalidJSON or validation failure
  - 404: ErrNotFound
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input eventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	event, err := handler.eventService.Update(request.Context(), requestutil.Param(request, "id"), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

/*
Remove deletes an event.

DELETE /api/v1/admin/events/{id}

Response:
  - 204: No content
  - 404: ErrNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.eventService.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
