// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/admin"
	"github.com/gfyalova/granfondo/internal/platform/apperr"
	"github.com/gfyalova/granfondo/internal/platform/sec"
)

// # Test Fakes

// fakeCredentialRepository is an in-memory CredentialRepository keyed by
// username.
type fakeCredentialRepository struct {
	accounts map[string]*admin.Credential

	created      []*admin.Credential
	lastLoginIDs []string
	lastLoginErr error
	setActiveIDs []string
}

func newFakeCredentialRepository(accounts ...*admin.Credential) *fakeCredentialRepository {
	repository := &fakeCredentialRepository{accounts: map[string]*admin.Credential{}}
	for _, account := range accounts {
		repository.accounts[account.Username] = account
	}
	return repository
}

func (repository *fakeCredentialRepository) FindByUsername(_ context.Context, username string) (*admin.Credential, error) {
	credential, ok := repository.accounts[username]
	if !ok {
		return nil, apperr.NotFound("Admin account")
	}
	return credential, nil
}

func (repository *fakeCredentialRepository) FindByID(_ context.Context, id string) (*admin.Credential, error) {
	for _, credential := range repository.accounts {
		if credential.ID == id {
			return credential, nil
		}
	}
	return nil, apperr.NotFound("Admin account")
}

func (repository *fakeCredentialRepository) List(_ context.Context, _, _ int) ([]*admin.Credential, int, error) {
	accounts := make([]*admin.Credential, 0, len(repository.accounts))
	for _, credential := range repository.accounts {
		accounts = append(accounts, credential)
	}
	return accounts, len(accounts), nil
}

func (repository *fakeCredentialRepository) Create(_ context.Context, credential *admin.Credential) error {
	repository.accounts[credential.Username] = credential
	repository.created = append(repository.created, credential)
	return nil
}

func (repository *fakeCredentialRepository) UpdateLastLogin(_ context.Context, id string, _ time.Time) error {
	repository.lastLoginIDs = append(repository.lastLoginIDs, id)
	return repository.lastLoginErr
}

func (repository *fakeCredentialRepository) SetActive(_ context.Context, id string, _ bool) error {
	repository.setActiveIDs = append(repository.setActiveIDs, id)
	return nil
}

// fakeRevocationRepository records revocations in memory.
type fakeRevocationRepository struct {
	revoked   map[string]time.Duration
	revokeErr error
	checkErr  error
}

func newFakeRevocationRepository() *fakeRevocationRepository {
	return &fakeRevocationRepository{revoked: map[string]time.Duration{}}
}

func (repository *fakeRevocationRepository) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if repository.revokeErr != nil {
		return repository.revokeErr
	}
	repository.revoked[tokenID] = ttl
	return nil
}

func (repository *fakeRevocationRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if repository.checkErr != nil {
		return false, repository.checkErr
	}
	_, ok := repository.revoked[tokenID]
	return ok, nil
}

// fakeTokenProvider maps opaque token strings to claims.
type fakeTokenProvider struct {
	issued        []string
	issueErr      error
	claims        map[string]*sec.SessionClaims
	shouldRefresh bool
}

func newFakeTokenProvider() *fakeTokenProvider {
	return &fakeTokenProvider{claims: map[string]*sec.SessionClaims{}}
}

func (provider *fakeTokenProvider) Issue(adminID, _, _, _ string) (string, error) {
	if provider.issueErr != nil {
		return "", provider.issueErr
	}
	token := "token-" + adminID
	provider.issued = append(provider.issued, token)
	return token, nil
}

func (provider *fakeTokenProvider) Verify(tokenString string) *sec.SessionClaims {
	return provider.claims[tokenString]
}

func (provider *fakeTokenProvider) ShouldRefresh(_ *sec.SessionClaims) bool {
	return provider.shouldRefresh
}

// # Helpers

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeAccount(t *testing.T, username, password string) *admin.Credential {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	return &admin.Credential{
		ID:           "adm-1",
		Username:     username,
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		Name:         "Ayşe Demir",
		IsActive:     true,
	}
}

func sessionClaims(jti string, expiresAt time.Time) *sec.SessionClaims {
	return &sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AdminID:  "adm-1",
		Username: "yonetici",
		Role:     string(sec.RoleAdmin),
		Name:     "Ayşe Demir",
	}
}

// # Login

/*
TestService_Login verifies every credential failure collapses into the same
generic message while a valid login issues a token.
*/
func TestService_Login(t *testing.T) {
	const password = "Yalova#Fondo2026!"

	t.Run("success issues token and stamps last login", func(t *testing.T) {
		credentials := newFakeCredentialRepository(activeAccount(t, "yonetici", password))
		tokens := newFakeTokenProvider()
		service := admin.NewService(credentials, newFakeRevocationRepository(), tokens, discardLogger())

		session, err := service.Login(context.Background(), admin.LoginInput{
			Username: "yonetici",
			Password: password,
		})

		require.NoError(t, err)
		assert.Equal(t, "token-adm-1", session.Token)
		assert.Equal(t, "yonetici", session.Admin.Username)
		assert.WithinDuration(t, time.Now().Add(sec.SessionTokenTTL), session.ExpiresAt, 5*time.Second)
		assert.Equal(t, []string{"adm-1"}, credentials.lastLoginIDs)
	})

	t.Run("last login write failure does not fail the login", func(t *testing.T) {
		credentials := newFakeCredentialRepository(activeAccount(t, "yonetici", password))
		credentials.lastLoginErr = assert.AnError
		service := admin.NewService(credentials, newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		session, err := service.Login(context.Background(), admin.LoginInput{
			Username: "yonetici",
			Password: password,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("failure modes are indistinguishable", func(t *testing.T) {
		inactive := activeAccount(t, "pasif", password)
		inactive.IsActive = false

		unmigrated := activeAccount(t, "eski", password)
		unmigrated.PasswordHash = ""

		credentials := newFakeCredentialRepository(
			activeAccount(t, "yonetici", password),
			inactive,
			unmigrated,
		)
		service := admin.NewService(credentials, newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		tests := []struct {
			name     string
			username string
			password string
		}{
			{"unknown username", "bilinmeyen", password},
			{"inactive account", "pasif", password},
			{"missing password hash", "eski", password},
			{"wrong password", "yonetici", "WrongPass#123456"},
			{"empty password", "yonetici", ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				session, err := service.Login(context.Background(), admin.LoginInput{
					Username: tt.username,
					Password: tt.password,
				})

				assert.Nil(t, session)
				require.Error(t, err)
				assert.EqualError(t, err, "Invalid username or password")
			})
		}
	})
}

// # Logout & Session Reads

/*
TestService_Logout verifies the token's jti lands on the deny-list for its
remaining lifetime and that dead cookies are an idempotent no-op.
*/
func TestService_Logout(t *testing.T) {
	t.Run("revokes jti with remaining ttl", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(3*time.Hour))
		revocations := newFakeRevocationRepository()
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		require.NoError(t, service.Logout(context.Background(), "cookie"))

		ttl, ok := revocations.revoked["jti-1"]
		require.True(t, ok)
		assert.Greater(t, ttl, 2*time.Hour)
		assert.LessOrEqual(t, ttl, 3*time.Hour)
	})

	t.Run("invalid token is a no-op", func(t *testing.T) {
		revocations := newFakeRevocationRepository()
		service := admin.NewService(newFakeCredentialRepository(), revocations, newFakeTokenProvider(), discardLogger())

		require.NoError(t, service.Logout(context.Background(), "garbage"))
		assert.Empty(t, revocations.revoked)
	})

	t.Run("revocation store failure surfaces", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		revocations := newFakeRevocationRepository()
		revocations.revokeErr = assert.AnError
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		assert.Error(t, service.Logout(context.Background(), "cookie"))
	})
}

/*
TestService_ReadSession verifies signature, revocation, and refresh
signalling on session reads.
*/
func TestService_ReadSession(t *testing.T) {
	t.Run("valid session returns claims", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), tokens, discardLogger())

		state, err := service.ReadSession(context.Background(), "cookie")

		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "adm-1", state.Claims.AdminID)
		assert.False(t, state.ShouldRefresh)
	})

	t.Run("invalid token yields nil state without error", func(t *testing.T) {
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		state, err := service.ReadSession(context.Background(), "garbage")

		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("revoked token yields nil state", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		revocations := newFakeRevocationRepository()
		require.NoError(t, revocations.Revoke(context.Background(), "jti-1", time.Hour))
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		state, err := service.ReadSession(context.Background(), "cookie")

		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("deny list connectivity failure surfaces", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		revocations := newFakeRevocationRepository()
		revocations.checkErr = assert.AnError
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		state, err := service.ReadSession(context.Background(), "cookie")

		assert.Error(t, err)
		assert.Nil(t, state)
	})

	t.Run("near expiry flags refresh", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(30*time.Minute))
		tokens.shouldRefresh = true
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), tokens, discardLogger())

		state, err := service.ReadSession(context.Background(), "cookie")

		require.NoError(t, err)
		require.NotNil(t, state)
		assert.True(t, state.ShouldRefresh)
	})
}

/*
TestService_VerifySession verifies the middleware-facing session check
honors the revocation deny-list and fails closed on storage outages.
*/
func TestService_VerifySession(t *testing.T) {
	t.Run("valid session returns claims", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), tokens, discardLogger())

		claims := service.VerifySession(context.Background(), "cookie")
		require.NotNil(t, claims)
		assert.Equal(t, "adm-1", claims.AdminID)
	})

	t.Run("revoked token carries no identity", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		revocations := newFakeRevocationRepository()
		require.NoError(t, revocations.Revoke(context.Background(), "jti-1", time.Hour))
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		assert.Nil(t, service.VerifySession(context.Background(), "cookie"))
	})

	t.Run("deny list outage fails closed", func(t *testing.T) {
		tokens := newFakeTokenProvider()
		tokens.claims["cookie"] = sessionClaims("jti-1", time.Now().Add(time.Hour))
		revocations := newFakeRevocationRepository()
		revocations.checkErr = assert.AnError
		service := admin.NewService(newFakeCredentialRepository(), revocations, tokens, discardLogger())

		assert.Nil(t, service.VerifySession(context.Background(), "cookie"))
	})

	t.Run("garbage token", func(t *testing.T) {
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())
		assert.Nil(t, service.VerifySession(context.Background(), "garbage"))
	})
}

func TestService_RefreshSession(t *testing.T) {
	tokens := newFakeTokenProvider()
	service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), tokens, discardLogger())

	session, err := service.RefreshSession(context.Background(), sessionClaims("jti-1", time.Now().Add(time.Hour)))

	require.NoError(t, err)
	assert.Equal(t, "token-adm-1", session.Token)
	assert.WithinDuration(t, time.Now().Add(sec.SessionTokenTTL), session.ExpiresAt, 5*time.Second)
}

// # Admin Enrollment

/*
TestService_CreateAdmin covers the creation password policy, username
conflicts, and one-time generated passwords.
*/
func TestService_CreateAdmin(t *testing.T) {
	t.Run("rejects taken username", func(t *testing.T) {
		credentials := newFakeCredentialRepository(activeAccount(t, "yonetici", "Yalova#Fondo2026!"))
		service := admin.NewService(credentials, newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		result, err := service.CreateAdmin(context.Background(), admin.CreateAdminInput{
			Username: "yonetici",
			Name:     "Mehmet Kaya",
			Role:     sec.RoleModerator,
		})

		assert.Nil(t, result)
		assert.EqualError(t, err, "Username is already taken")
	})

	t.Run("rejects weak supplied password", func(t *testing.T) {
		service := admin.NewService(newFakeCredentialRepository(), newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		result, err := service.CreateAdmin(context.Background(), admin.CreateAdminInput{
			Username: "editor",
			Name:     "Mehmet Kaya",
			Role:     sec.RoleModerator,
			Password: "short",
		})

		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, apperr.IsAppError(err))
	})

	t.Run("hashes supplied password", func(t *testing.T) {
		const password = "Editor#Pass2026!"
		credentials := newFakeCredentialRepository()
		service := admin.NewService(credentials, newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		result, err := service.CreateAdmin(context.Background(), admin.CreateAdminInput{
			Username: "editor",
			Name:     "Mehmet Kaya",
			Role:     sec.RoleModerator,
			Password: password,
		})

		require.NoError(t, err)
		assert.Empty(t, result.GeneratedPassword)
		assert.NotEqual(t, password, result.Admin.PasswordHash)
		assert.True(t, sec.CheckPasswordHash(password, result.Admin.PasswordHash))
		assert.True(t, result.Admin.IsActive)
		require.Len(t, credentials.created, 1)
	})

	t.Run("generates strong password when omitted", func(t *testing.T) {
		credentials := newFakeCredentialRepository()
		service := admin.NewService(credentials, newFakeRevocationRepository(), newFakeTokenProvider(), discardLogger())

		result, err := service.CreateAdmin(context.Background(), admin.CreateAdminInput{
			Username: "editor",
			Name:     "Mehmet Kaya",
			Role:     sec.RoleModerator,
		})

		require.NoError(t, err)
		assert.Len(t, result.GeneratedPassword, 16)
		assert.NoError(t, sec.CheckPasswordStrength(result.GeneratedPassword))
		assert.True(t, sec.CheckPasswordHash(result.GeneratedPassword, result.Admin.PasswordHash))
	})
}
