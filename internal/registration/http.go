// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfyalova/granfondo/internal/platform/middleware"
	requestutil "github.com/gfyalova/granfondo/internal/platform/request"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/sec"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the application form HTTP endpoints.
type Handler struct {
	registrationService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{registrationService: service}
}

// PublicRoutes returns the unauthenticated application form endpoints.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

// AdminRoutes returns the back-office review endpoints.
//
// The session guard and claim verification are mounted by the server; this
// router only adds the admin-role gate on the reveal endpoint.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/status", handler.updateStatus)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/{id}/national-id", handler.revealNationalID)
	})

	return router
}

// # Request Payloads

type submitRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	NationalID     string `json:"national_id"`
	BirthYear      int    `json:"birth_year"`
	Category       string `json:"category"`
	Club           string `json:"club"`
	City           string `json:"city"`
	EmergencyName  string `json:"emergency_name"`
	EmergencyPhone string `json:"emergency_phone"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

/*
Submit accepts a new rider application.

POST /api/v1/applications

Description: Validates and sanitizes the payload, encrypts the national ID,
persists the application, and queues a confirmation email.

Request:
  - Body: submitRequest

Response:
  - 201: Application: Persisted entity with masked national ID
  - 400: ErrInvalidJSON: Bad input or validation failure (all field errors)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	application, err := handler.registrationService.Submit(request.Context(), SubmitInput{
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		NationalID:     input.NationalID,
		BirthYear:      input.BirthYear,
		Category:       input.Category,
		Club:           input.Club,
		City:           input.City,
		EmergencyName:  input.EmergencyName,
		EmergencyPhone: input.EmergencyPhone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, application)
}

/*
List returns a page of applications for review.

GET /api/v1/admin/applications?status=pending

Response:
  - 200: Paginated applications, national IDs masked
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get(FieldStatus))

	if status != "" && !status.IsValid() {
		respond.Error(writer, request, validate.RequiredError(FieldStatus, "Unknown review status"))
		return
	}

	applications, total, err := handler.registrationService.List(request.Context(), status, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, applications, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns one application for review.

GET /api/v1/admin/applications/{id}

Response:
  - 200: Application with masked national ID
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	application, err := handler.registrationService.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, application)
}

/*
RevealNationalID returns the decrypted national ID of one application.

GET /api/v1/admin/applications/{id}/national-id

Description: Admin-role-only. The value is returned once and never cached;
moderators receive 403 from the role gate.

Response:
  - 200: {"national_id": "..."}
  - 403: ErrForbidden: Moderator access
  - 404: ErrNotFound
*/
func (handler *Handler) revealNationalID(writer http.ResponseWriter, request *http.Request) {
	plaintext, err := handler.registrationService.RevealNationalID(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldNationalID: plaintext})
}

/*
UpdateStatus moves an application to a new review state.

PATCH /api/v1/admin/applications/{id}/status

Request:
  - Body: updateStatusRequest (Status)

Response:
  - 200: Success message
  - 400: Unknown status value
  - 404: ErrNotFound
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err := handler.registrationService.UpdateStatus(request.Context(), requestutil.Param(request, "id"), Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Application updated"})
}
