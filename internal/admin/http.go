// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package admin: HTTP delivery layer for back-office authentication.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service:
  - Protocol: Standard RESTful JSON interface.
  - Security: Owns the admin_session cookie lifecycle.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, cookies, JSON).
*/
package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/constants"
	"github.com/gfyalova/granfondo/internal/platform/ctxutil"
	"github.com/gfyalova/granfondo/internal/platform/middleware"
	requestutil "github.com/gfyalova/granfondo/internal/platform/request"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/sec"
	"github.com/gfyalova/granfondo/internal/platform/validate"
	"github.com/gfyalova/granfondo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements back-office authentication HTTP endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with admin-specific routes.
//
// # Endpoints
//   - POST /login      : Authenticates and sets the session cookie.
//   - POST /logout     : Revokes the session and clears the cookie.
//   - GET  /session    : Decodes the current session (silent refresh).
//   - /users...        : Admin-role-only account management.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.Post("/login", handler.login)

	// Cookie-presence gate: anonymous visitors are bounced with 401 before
	// any claims are read. Forged cookies pass here and die downstream.
	router.Group(func(r chi.Router) {
		r.Use(middleware.SessionGuard)
		r.Post("/logout", handler.logout)
		r.Get("/session", handler.session)
	})

	// Admin-role-only account management
	router.Group(func(r chi.Router) {
		r.Use(middleware.SessionGuard)
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/users", handler.listUsers)
		r.Post("/users", handler.createUser)
		r.Patch("/users/{id}/active", handler.setUserActive)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

/*
Login authenticates an admin and establishes a session.

POST /api/v1/admin/login

Description: Verifies credentials and injects the signed session token into
an HttpOnly, Secure, SameSite=Strict cookie whose Max-Age matches the
token's expiry.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session: Admin profile and role
  - 401: ErrUnauthorized: Generic invalid-credentials message
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// The login-time password bound (8) is looser than the creation policy
	// (12 + character classes): legacy accounts predate the policy.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		MaxLen(FieldPassword, input.Password, 128)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.adminService.Login(request.Context(), LoginInput{
		Username:  input.Username,
		Password:  input.Password,
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session.Token)

	respond.OK(writer, map[string]any{
		"user": map[string]any{
			"id":       session.Admin.ID,
			"username": session.Admin.Username,
			"role":     session.Admin.Role,
			"name":     session.Admin.Name,
		},
	})
}

/*
Logout terminates the current admin session.

POST /api/v1/admin/logout

Description: Pushes the session token onto the revocation deny-list and
clears the cookie. Idempotent: a dead or forged cookie still results in 204.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		// The cookie is cleared regardless, but a failed revocation means
		// the token stays live until expiry — that deserves a log line.
		if err := handler.adminService.Logout(request.Context(), cookie.Value); err != nil {
			ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "admin_logout_revocation_failed",
				slog.String("error", err.Error()),
			)
		}
	}

	clearSessionCookie(writer)
	respond.NoContent(writer)
}

/*
Session decodes the current session and silently refreshes it when needed.

GET /api/v1/admin/session

Description: Verifies the cookie's token (signature, expiry, revocation).
When the token is within the refresh window a brand-new token is issued and
set as a replacement cookie — the old token is never extended in place.

Response:
  - 200: SessionState: Identity, role, and refresh flag
  - 401: ErrUnauthorized: Any invalid/expired/revoked session (uniform)
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	state, err := handler.adminService.ReadSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if state == nil {
		clearSessionCookie(writer)
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	if state.ShouldRefresh {
		refreshed, err := handler.adminService.RefreshSession(request.Context(), state.Claims)
		if err == nil {
			setSessionCookie(writer, refreshed.Token)
		}
	}

	respond.OK(writer, map[string]any{
		"user": map[string]any{
			"id":       state.Claims.AdminID,
			"username": state.Claims.Username,
			"role":     state.Claims.Role,
			"name":     state.Claims.Name,
		},
		"should_refresh": state.ShouldRefresh,
	})
}

/*
ListUsers returns a page of back-office accounts.

GET /api/v1/admin/users

Response:
  - 200: Paginated list of accounts (password hashes never serialized)
  - 403: ErrForbidden: Moderator attempted admin-only access
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	admins, total, err := handler.adminService.ListAdmins(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, admins, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
CreateUser enrolls a new back-office account.

POST /api/v1/admin/users

Description: Validates the payload, enforces the password creation policy
(or generates a strong password when none is supplied), and persists the
account.

Request:
  - Body: createUserRequest (Username, Name, Role, Password?)

Response:
  - 201: Created account, plus the generated password when applicable
  - 409: ErrConflict: Username already exists
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		OneOf(FieldRole, input.Role, string(sec.RoleAdmin), string(sec.RoleModerator))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.adminService.CreateAdmin(request.Context(), CreateAdminInput{
		Username: input.Username,
		Name:     input.Name,
		Role:     sec.AdminRole(input.Role),
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := map[string]any{"user": result.Admin}
	if result.GeneratedPassword != "" {
		// Shown exactly once; only the hash is stored.
		payload["generated_password"] = result.GeneratedPassword
	}

	respond.Created(writer, payload)
}

/*
SetUserActive activates or deactivates a back-office account.

PATCH /api/v1/admin/users/{id}/active

Request:
  - Body: setActiveRequest (IsActive)

Response:
  - 200: Success message
  - 404: ErrNotFound: Unknown account ID
*/
func (handler *Handler) setUserActive(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input setActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.adminService.SetAdminActive(request.Context(), id, input.IsActive); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldMessage: "Account updated"})
}

// # Cookie Helpers

// setSessionCookie writes the admin_session cookie with the security
// attributes the session design requires.
func setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(sec.SessionTokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie deletes the admin_session cookie on the client.
func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
