// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/sec"
	"github.com/gfyalova/granfondo/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and reading session tokens.
type TokenProvider interface {
	// Issue creates a signed session token for the given admin identity.
	Issue(adminID, username, role, name string) (string, error)

	// Verify returns the claims for a valid token, or nil for ANY failure.
	Verify(tokenString string) *sec.SessionClaims

	// ShouldRefresh reports whether remaining validity is below the
	// reissuance threshold.
	ShouldRefresh(claims *sec.SessionClaims) bool
}

// genericLoginError is the single user-facing message for every credential
// failure. Revealing WHICH condition failed (unknown user, inactive account,
// unmigrated hash, wrong password) would hand attackers an enumeration
// oracle; the distinguishing reason goes to the audit log only.
var genericLoginError = apperr.Unauthorized("Invalid username or password")

// Service implements the back-office authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to the login, session,
// or revocation logic must be reviewed by the security team.
type Service struct {
	credentialRepository CredentialRepository
	revocationRepository RevocationRepository
	tokenProvider        TokenProvider
	log                  *slog.Logger
}

// NewService constructs a new admin [Service] with necessary dependencies.
func NewService(
	credentialRepo CredentialRepository,
	revocationRepo RevocationRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		credentialRepository: credentialRepo,
		revocationRepository: revocationRepo,
		tokenProvider:        tokenProv,
		log:                  logger,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
}

// LoginSession represents a successfully established admin session.
type LoginSession struct {
	Token     string
	ExpiresAt time.Time
	Admin     *Credential
}

/*
Login validates admin credentials and issues a session token.

Description: Looks up the credential by exact username, verifies the
password with a constant-time comparison, and issues a signed session token.
Every failure mode maps to the same generic message.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session token and profile
  - error: Unauthorized (generic) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Case-sensitive exact lookup. Unknown usernames get the generic error.
	credential, err := service.credentialRepository.FindByUsername(context, input.Username)
	if err != nil {
		service.auditLoginFailure(context, input, "unknown_username")
		return nil, genericLoginError
	}

	// Deactivated accounts and accounts without a migrated hash are
	// indistinguishable from a bad password on the outside.
	if !credential.IsActive {
		service.auditLoginFailure(context, input, "inactive_account")
		return nil, genericLoginError
	}
	if credential.PasswordHash == "" {
		service.auditLoginFailure(context, input, "missing_password_hash")
		return nil, genericLoginError
	}

	// Constant-time comparison inside bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, credential.PasswordHash) {
		service.auditLoginFailure(context, input, "wrong_password")
		return nil, genericLoginError
	}

	token, err := service.tokenProvider.Issue(
		credential.ID,
		credential.Username,
		string(credential.Role),
		credential.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("admin_service_token_issue_failed: %w", err)
	}

	// Best-effort side effect: a failed timestamp write must never fail a
	// login that already passed every security check.
	if err := service.credentialRepository.UpdateLastLogin(context, credential.ID, time.Now()); err != nil {
		service.log.WarnContext(context, "admin_last_login_update_failed",
			slog.String("admin_id", credential.ID),
			slog.String("error", err.Error()),
		)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: time.Now().Add(sec.SessionTokenTTL),
		Admin:     credential,
	}, nil
}

/*
Logout revokes a session token.

Description: Pushes the token's jti onto the Redis deny-list for its
remaining lifetime. Tokens that fail verification are ignored — logging out
with a dead cookie is a successful, idempotent no-op.

Parameters:
  - context: context.Context
  - tokenString: string

Returns:
  - error: Revocation storage failures
*/
func (service *Service) Logout(context context.Context, tokenString string) error {
	claims := service.tokenProvider.Verify(tokenString)
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := service.revocationRepository.Revoke(context, claims.ID, remaining); err != nil {
		return fmt.Errorf("admin_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Reads

// SessionState is the decoded view of an active admin session.
type SessionState struct {
	Claims        *sec.SessionClaims
	ShouldRefresh bool
}

/*
ReadSession decodes and authorizes a session token.

Description: Verifies the signature and expiry, consults the revocation
deny-list, and flags tokens nearing expiry for silent reissuance. Returns
nil state (not an error detail) for ANY invalid session.

Parameters:
  - context: context.Context
  - tokenString: string

Returns:
  - *SessionState: Active session claims, or nil when unauthenticated
  - error: Revocation store connectivity failures only
*/
func (service *Service) ReadSession(context context.Context, tokenString string) (*SessionState, error) {
	claims := service.tokenProvider.Verify(tokenString)
	if claims == nil {
		return nil, nil
	}

	revoked, err := service.revocationRepository.IsRevoked(context, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("admin_service_revocation_check_failed: %w", err)
	}
	if revoked {
		return nil, nil
	}

	return &SessionState{
		Claims:        claims,
		ShouldRefresh: service.tokenProvider.ShouldRefresh(claims),
	}, nil
}

/*
VerifySession performs the full session check for the middleware layer.

Description: Wraps [Service.ReadSession] behind the nil-or-claims contract
the authentication middleware expects: signature, expiry, and the
revocation deny-list are all consulted, so a logged-out token carries no
identity on any route. A deny-list connectivity failure fails closed — the
request proceeds as anonymous and the outage is logged.

Parameters:
  - context: context.Context
  - tokenString: string

Returns:
  - *sec.SessionClaims: Active session claims, or nil for ANY failure
*/
func (service *Service) VerifySession(context context.Context, tokenString string) *sec.SessionClaims {
	state, err := service.ReadSession(context, tokenString)
	if err != nil {
		service.log.ErrorContext(context, "admin_session_check_unavailable",
			slog.String("error", err.Error()),
		)
		return nil
	}
	if state == nil {
		return nil
	}

	return state.Claims
}

/*
RefreshSession issues a brand-new token for an already-verified session.

Description: The old token is never mutated or extended in place; it keeps
its original expiry and simply becomes redundant.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims

Returns:
  - *LoginSession: Fresh token with fresh expiry
  - error: Signing failures
*/
func (service *Service) RefreshSession(context context.Context, claims *sec.SessionClaims) (*LoginSession, error) {
	token, err := service.tokenProvider.Issue(claims.AdminID, claims.Username, claims.Role, claims.Name)
	if err != nil {
		return nil, fmt.Errorf("admin_service_token_refresh_failed: %w", err)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: time.Now().Add(sec.SessionTokenTTL),
	}, nil
}

// # Admin User Management

// CreateAdminInput holds the data required to enroll a new back-office account.
type CreateAdminInput struct {
	Username string
	Name     string
	Role     sec.AdminRole

	// Password is optional: when empty a strong password is generated and
	// returned once in the result.
	Password string
}

// CreateAdminResult carries the created account and, when the password was
// generated, its one-time plaintext value.
type CreateAdminResult struct {
	Admin             *Credential
	GeneratedPassword string
}

/*
CreateAdmin enrolls a new back-office account.

Description: Enforces the password creation policy (stronger than the
login-time bound), hashes the password, and persists the account.

Parameters:
  - context: context.Context
  - input: CreateAdminInput

Returns:
  - *CreateAdminResult: Created entity plus one-time generated password
  - error: Conflict, validation, or storage errors
*/
func (service *Service) CreateAdmin(context context.Context, input CreateAdminInput) (*CreateAdminResult, error) {

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err := service.credentialRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	password := input.Password
	generated := ""

	if password == "" {
		password, err = sec.GenerateStrongPassword(16)
		if err != nil {
			return nil, fmt.Errorf("admin_service_password_generation_failed: %w", err)
		}
		generated = password
	} else if err := sec.CheckPasswordStrength(password); err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPassword,
			Message: err.Error(),
		})
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("admin_service_hash_failed: %w", err)
	}

	credential := &Credential{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         input.Role,
		Name:         input.Name,
		IsActive:     true,
	}

	if err := service.credentialRepository.Create(context, credential); err != nil {
		return nil, fmt.Errorf("admin_service_create_failed: %w", err)
	}

	return &CreateAdminResult{Admin: credential, GeneratedPassword: generated}, nil
}

/*
ListAdmins returns a page of back-office accounts.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Credential: Page of accounts
  - int: Total count
  - error: Storage failures
*/
func (service *Service) ListAdmins(context context.Context, limit, offset int) ([]*Credential, int, error) {
	return service.credentialRepository.List(context, limit, offset)
}

/*
SetAdminActive activates or deactivates an account.

Description: Deactivation does not revoke live sessions; the account fails
the IsActive check on its next login. (Live tokens remain valid until
expiry — the accepted stateless tradeoff, softened by the logout deny-list.)

Parameters:
  - context: context.Context
  - id: string
  - active: bool

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) SetAdminActive(context context.Context, id string, active bool) error {
	return service.credentialRepository.SetActive(context, id, active)
}

// auditLoginFailure records the real reason a login failed. Audit-only:
// the client always sees the generic message.
func (service *Service) auditLoginFailure(context context.Context, input LoginInput, reason string) {
	service.log.WarnContext(context, "admin_login_rejected",
		slog.String("username", input.Username),
		slog.String("reason", reason),
		slog.String("ip", input.IPAddress),
	)
}
