// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/admin"
	"github.com/gfyalova/granfondo/internal/platform/constants"
	"github.com/gfyalova/granfondo/internal/platform/sec"
)

// # Helpers

func newTestHandler(t *testing.T, accounts ...*admin.Credential) (*admin.Handler, *fakeTokenProvider, *fakeRevocationRepository) {
	t.Helper()

	tokens := newFakeTokenProvider()
	revocations := newFakeRevocationRepository()
	service := admin.NewService(newFakeCredentialRepository(accounts...), revocations, tokens, discardLogger())
	return admin.NewHandler(service), tokens, revocations
}

func postJSON(path, body string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func sessionCookie(t *testing.T, response *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// # Login

/*
TestHandler_Login walks the login endpoint end to end: a bad credential
gets the generic message and no cookie, a good one gets the hardened
session cookie.
*/
func TestHandler_Login(t *testing.T) {
	const password = "Yalova#Fondo2026!"

	t.Run("unknown user gets generic message and no cookie", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/login",
			`{"username":"bilinmeyen","password":"`+password+`"}`))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid username or password")
		assert.Nil(t, sessionCookie(t, recorder.Result()))
	})

	t.Run("wrong password is indistinguishable", func(t *testing.T) {
		handler, _, _ := newTestHandler(t, activeAccount(t, "yonetici", password))

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/login",
			`{"username":"yonetici","password":"WrongPass#123456"}`))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid username or password")
		assert.Nil(t, sessionCookie(t, recorder.Result()))
	})

	t.Run("valid login sets hardened session cookie", func(t *testing.T) {
		handler, _, _ := newTestHandler(t, activeAccount(t, "yonetici", password))

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/login",
			`{"username":"yonetici","password":"`+password+`"}`))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"username":"yonetici"`)
		assert.NotContains(t, recorder.Body.String(), "token-adm-1")

		cookie := sessionCookie(t, recorder.Result())
		require.NotNil(t, cookie)
		assert.Equal(t, "token-adm-1", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, constants.SessionCookiePath, cookie.Path)
		assert.Equal(t, int(sec.SessionTokenTTL.Seconds()), cookie.MaxAge)
	})

	t.Run("malformed payload", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/login", `{"username":`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Nil(t, sessionCookie(t, recorder.Result()))
	})

	t.Run("password below login bound is rejected before lookup", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/login",
			`{"username":"yonetici","password":"short"}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// # Logout

/*
TestHandler_Logout verifies the cookie is cleared and the token revoked.
*/
func TestHandler_Logout(t *testing.T) {
	t.Run("revokes and clears", func(t *testing.T) {
		handler, tokens, revocations := newTestHandler(t)
		tokens.claims["live-token"] = sessionClaims("jti-1", time.Now().Add(time.Hour))

		request := postJSON("/logout", "")
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "live-token"})

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNoContent, recorder.Code)

		cookie := sessionCookie(t, recorder.Result())
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)

		revoked, err := revocations.IsRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("anonymous logout is bounced by the guard", func(t *testing.T) {
		handler, _, _ := newTestHandler(t)

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, postJSON("/logout", ""))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
