// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gfyalova/granfondo/pkg/uuid"
)

// # Session Tokens

const (
	// SessionTokenTTL is how long an admin session token stays valid.
	// Matches the Max-Age of the admin_session cookie.
	SessionTokenTTL = 7 * 24 * time.Hour

	// SessionRefreshThreshold marks a token for silent reissuance when its
	// remaining validity drops below this window. The old token is never
	// extended in place; a new one is always issued.
	SessionRefreshThreshold = 24 * time.Hour
)

// SessionClaims is the payload embedded inside an admin session token.
//
// # Why custom claims?
//
// By embedding the AdminID, Username, Role, and Name directly inside the
// token, protected pages can reconstruct the active admin context WITHOUT
// querying the database on every request.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	AdminID  string `json:"aid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
	Name     string `json:"nam"`
}

// TokenService signs and verifies admin session tokens using HS256.
//
// The signing key is symmetric: the same server-held secret both issues and
// verifies. Tokens are stateless and self-contained — no server-side state
// is touched by Issue or Verify.
type TokenService struct {
	signingKey []byte
	issuer     string
}

// NewTokenService creates a TokenService from the session-signing secret.
//
// An empty secret is a fatal configuration error: there is no fallback,
// because a guessable default key would let anyone forge admin sessions.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: session signing secret is not configured")
	}
	return &TokenService{
		signingKey: []byte(secret),
		issuer:     issuer,
	}, nil
}

// Issue creates a signed session token for the given admin identity.
//
// Every token carries a unique jti so that logout can revoke it via the
// deny-list without affecting other sessions of the same admin.
func (service *TokenService) Issue(adminID, username, role, name string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   adminID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(SessionTokenTTL)),
		},
		AdminID:  adminID,
		Username: username,
		Role:     role,
		Name:     name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.signingKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a session token string.
//
// It returns nil for ANY failure — malformed token, wrong signature, or
// expiry — without distinguishing the reason. Callers must treat nil
// uniformly as "unauthenticated"; exposing the failure mode would give an
// attacker an oracle.
func (service *TokenService) Verify(tokenString string) *SessionClaims {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.signingKey, nil
	})

	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil
	}

	return claims
}

// ShouldRefresh reports whether the token backing these claims is close
// enough to expiry that a fresh token should be issued.
func (service *TokenService) ShouldRefresh(claims *SessionClaims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < SessionRefreshThreshold
}
