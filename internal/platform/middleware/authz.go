// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

// Package middleware provides the HTTP middleware chain for the GranFondo
// Yalova API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN/AuthZ, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/constants"
	"github.com/gfyalova/granfondo/internal/platform/ctxutil"
	"github.com/gfyalova/granfondo/internal/platform/respond"
	"github.com/gfyalova/granfondo/internal/platform/sec"
)

// SessionVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining SessionVerifier here decouples the middleware from the concrete
// session service, allowing us to easily inject fakes during unit testing.
//
// The check is the FULL session check — signature, expiry, AND the
// revocation deny-list — so that a logged-out token carries no identity on
// any route. Signature-only verification here would leave revoked tokens
// authorized everywhere except the endpoints that happen to re-check.
type SessionVerifier interface {
	// VerifySession returns the claims for a valid, unrevoked token, or
	// nil for ANY failure (bad signature, expiry, revocation, deny-list
	// connectivity — revocation checks fail closed).
	VerifySession(context context.Context, tokenString string) *sec.SessionClaims
}

// Authenticate extracts and verifies the session token from the
// admin_session cookie.
//
// # Flow
//  1. Check for the admin_session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, verify it via [SessionVerifier]. A token that fails
//     verification is treated exactly like an absent one — expired,
//     malformed, forged, and revoked cookies are indistinguishable to the
//     client.
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
func Authenticate(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims := verifier.VerifySession(request.Context(), cookie.Value)
			if claims == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAdmin(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// SessionGuard gates protected routes on the PRESENCE of the session cookie.
//
// # Scope
//
// This is a coarse check only: a forged-but-present cookie passes the guard
// and fails later when claims are actually read. It mirrors the behavior of
// the site's navigation gate, whose job is to bounce anonymous visitors to
// the login page — verified identity is enforced by [RequireAuth] and
// [RequireRole] on the endpoints themselves.
func SessionGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(constants.SessionCookieName)
		if err != nil || cookie.Value == "" {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAdmin(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated admin doesn't have the
// required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context (implies AuthN).
//  2. Check if the admin's role meets or exceeds the required target role
//     using [sec.AdminRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden. The SPA redirects
//     moderators to their default view instead of showing an error page.
func RequireRole(role sec.AdminRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAdmin(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			adminRole := sec.AdminRole(claims.Role)
			if !adminRole.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
