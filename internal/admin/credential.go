// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

/*
Package admin implements the back-office identity and session layer.

It defines the admin credential entity and the login/session/logout flow
that guards every administrative endpoint.

# Architecture

  - Service: Orchestrates credential verification, token issuance, and
    session revocation.
  - Repository: Abstracted interfaces for Postgres (credentials) and Redis
    (revoked-session deny-list).
  - Security: Delegates all cryptography to internal/platform/sec.
*/
package admin

import (
	"time"

	"github.com/gfyalova/granfondo/internal/platform/sec"
)

// # Domain Entities

// Credential represents a back-office account.
type Credential struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.AdminRole `json:"role"`
	Name         string        `json:"name"`
	IsActive     bool          `json:"is_active"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the admin domain.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
	FieldIsActive = "is_active"
	FieldMessage  = "message"
)
