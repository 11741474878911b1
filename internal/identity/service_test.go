// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipora/shipora/internal/identity"
	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/platform/sec"
	"github.com/shipora/shipora/pkg/pagination"
)

// # Test Doubles

// fakePrincipalRepository is an in-memory PrincipalRepository for unit tests.
type fakePrincipalRepository struct {
	byEmail map[string]*identity.Principal
	byID    map[string]*identity.Principal

	// insertErr forces Insert to fail, simulating storage-level errors.
	insertErr error
}

func newFakeRepository() *fakePrincipalRepository {
	return &fakePrincipalRepository{
		byEmail: make(map[string]*identity.Principal),
		byID:    make(map[string]*identity.Principal),
	}
}

func (f *fakePrincipalRepository) Insert(_ context.Context, principal *identity.Principal) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, exists := f.byEmail[principal.Email]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	f.byEmail[principal.Email] = principal
	f.byID[principal.ID] = principal
	return nil
}

func (f *fakePrincipalRepository) FindByEmail(_ context.Context, email string) (*identity.Principal, error) {
	principal, found := f.byEmail[email]
	if !found {
		return nil, apperr.NotFound("Principal")
	}
	return principal, nil
}

func (f *fakePrincipalRepository) FindByID(_ context.Context, id string) (*identity.Principal, error) {
	principal, found := f.byID[id]
	if !found {
		return nil, apperr.NotFound("Principal")
	}
	return principal, nil
}

func (f *fakePrincipalRepository) List(_ context.Context, limit, offset int) ([]*identity.Principal, error) {
	principals := make([]*identity.Principal, 0, len(f.byID))
	for _, principal := range f.byID {
		principals = append(principals, principal)
	}
	if offset >= len(principals) {
		return nil, nil
	}
	end := offset + limit
	if end > len(principals) {
		end = len(principals)
	}
	return principals[offset:end], nil
}

func (f *fakePrincipalRepository) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

// fakeTokenProvider issues predictable tokens without real signing.
type fakeTokenProvider struct{}

func (fakeTokenProvider) IssueToken(principalID, _, _ string, _ time.Duration) (string, error) {
	return "token-" + principalID, nil
}

func newTestService() (*identity.Service, *fakePrincipalRepository, *fakePrincipalRepository) {
	users := newFakeRepository()
	admins := newFakeRepository()
	return identity.NewService(users, admins, fakeTokenProvider{}), users, admins
}

// # Registration

func TestService_Register_ThenLogin(t *testing.T) {
	t.Parallel()
	service, _, _ := newTestService()

	created, err := service.Register(context.Background(), identity.RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	principal := created.Principal
	require.NotNil(t, principal)
	assert.NotEmpty(t, principal.ID)
	assert.Equal(t, sec.RoleUser, principal.Role)
	assert.NotEqual(t, "correct-horse", principal.PasswordHash, "password must never be stored in plain text")
	// Registration opens a session without requiring a second round trip.
	assert.Equal(t, "token-"+principal.ID, created.Token)

	session, err := service.Login(context.Background(), identity.LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-"+principal.ID, session.Token)
	assert.Equal(t, principal.ID, session.Principal.ID)
	assert.WithinDuration(t, time.Now().Add(identity.SessionTokenTTL), session.ExpiresAt, 5*time.Second)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), identity.RegisterInput{
		Name: "First", Email: "dup@example.com", Password: "password-1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), identity.RegisterInput{
		Name: "Second", Email: "dup@example.com", Password: "password-2",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "DUPLICATE_EMAIL"))
}

func TestService_Register_RacingDuplicateCollapses(t *testing.T) {
	t.Parallel()
	service, users, _ := newTestService()

	// Simulate the race: the pre-check misses, but the unique index fires.
	users.insertErr = &pgconn.PgError{Code: "23505"}

	_, err := service.Register(context.Background(), identity.RegisterInput{
		Name: "Racer", Email: "race@example.com", Password: "password-1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "DUPLICATE_EMAIL"))
}

func TestService_Register_StorageFailure(t *testing.T) {
	t.Parallel()
	service, users, _ := newTestService()

	users.insertErr = assert.AnError

	_, err := service.Register(context.Background(), identity.RegisterInput{
		Name: "Broken", Email: "broken@example.com", Password: "password-1",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "REGISTRATION_FAILED", appError.Code)
	// The underlying cause is part of the client-visible message by contract.
	assert.Contains(t, appError.Message, assert.AnError.Error())
}

// # Login

func TestService_Login_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), identity.RegisterInput{
		Name: "Known", Email: "known@example.com", Password: "right-password",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), identity.LoginInput{
		Email: "nobody@example.com", Password: "whatever",
	})
	_, wrongErr := service.Login(context.Background(), identity.LoginInput{
		Email: "known@example.com", Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknownApp := apperr.As(unknownErr)
	wrongApp := apperr.As(wrongErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)

	// Unknown email and wrong password must be byte-identical to the client.
	assert.Equal(t, unknownApp.Code, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
	assert.Equal(t, 400, wrongApp.HTTPStatus)
}

func TestService_AdminLogin_StoresAreDisjoint(t *testing.T) {
	t.Parallel()
	service, _, admins := newTestService()

	// Register a customer; the admin store stays empty.
	_, err := service.Register(context.Background(), identity.RegisterInput{
		Name: "Customer", Email: "customer@example.com", Password: "password-1",
	})
	require.NoError(t, err)

	// Customer credentials do not work on the admin endpoint.
	_, err = service.AdminLogin(context.Background(), identity.LoginInput{
		Email: "customer@example.com", Password: "password-1",
	})
	assert.True(t, apperr.IsCode(err, "INVALID_CREDENTIALS"))

	// Seed an admin and verify the admin store answers.
	hash, err := sec.HashPassword("admin-secret")
	require.NoError(t, err)
	require.NoError(t, admins.Insert(context.Background(), &identity.Principal{
		ID: "admin-1", Name: "Root", Email: "root@example.com",
		PasswordHash: hash, Role: sec.RoleAdmin,
	}))

	session, err := service.AdminLogin(context.Background(), identity.LoginInput{
		Email: "root@example.com", Password: "admin-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, session.Principal.Role)
}

// # Introspection & Listing

func TestService_CurrentPrincipal_RoutesByRole(t *testing.T) {
	t.Parallel()
	service, users, admins := newTestService()

	require.NoError(t, users.Insert(context.Background(), &identity.Principal{
		ID: "user-1", Email: "u@example.com", Role: sec.RoleUser,
	}))
	require.NoError(t, admins.Insert(context.Background(), &identity.Principal{
		ID: "admin-1", Email: "a@example.com", Role: sec.RoleAdmin,
	}))

	user, err := service.CurrentPrincipal(context.Background(), &sec.AuthClaims{
		PrincipalID: "user-1", Role: string(sec.RoleUser),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	admin, err := service.CurrentPrincipal(context.Background(), &sec.AuthClaims{
		PrincipalID: "admin-1", Role: string(sec.RoleAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)

	// A deleted principal with a still-valid token surfaces as NOT_FOUND.
	_, err = service.CurrentPrincipal(context.Background(), &sec.AuthClaims{
		PrincipalID: "ghost", Role: string(sec.RoleUser),
	})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

func TestService_ListUsers_Meta(t *testing.T) {
	t.Parallel()
	service, users, _ := newTestService()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, users.Insert(context.Background(), &identity.Principal{
			ID: id, Email: id + "@example.com", Role: sec.RoleUser,
		}))
	}

	principals, meta, err := service.ListUsers(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, principals, 2)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}
