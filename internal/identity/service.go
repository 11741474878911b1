// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
Package identity implements the credential and session use cases.

It handles principal registration, secure password hashing, and stateless
session issuance via signed JWTs.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Me).
  - Repository: Abstracted interfaces over the two Postgres principal stores.
  - Security: Leverages bcrypt hashing and HS256-signed session tokens.

The package ensures that the two principal stores stay disjoint: every use
case is bound to exactly one store before it touches any data.
*/
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/shipora/shipora/internal/platform/apperr"
	"github.com/shipora/shipora/internal/platform/dberr"
	"github.com/shipora/shipora/internal/platform/sec"
	"github.com/shipora/shipora/pkg/pagination"
	"github.com/shipora/shipora/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// IssueToken creates a signed session token for the given principal.
	//
	// # Parameters
	//   - principalID: The ID of the principal.
	//   - email: The email of the principal.
	//   - role: The role embedded in the token.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	IssueToken(principalID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements principal authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository  PrincipalRepository
	adminRepository PrincipalRepository
	tokenProvider   TokenProvider
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(
	userRepo PrincipalRepository,
	adminRepo PrincipalRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:  userRepo,
		adminRepository: adminRepo,
		tokenProvider:   tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new customer.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string // Optional contact number; admins never carry one.
	Password string
}

/*
Register validates, hashes, and persists a brand new customer principal,
then immediately opens a session for it.

Description: Registration always targets the customer store; administrators
are never self-enrolled. Duplicate detection happens twice: a fast pre-check
by email, and the store's unique index for the racing case. Both collapse to
the same DUPLICATE_EMAIL contract error. A fresh session token accompanies
the created principal so the client is logged in without a second round trip.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Created principal plus its first session token
  - err: DUPLICATE_EMAIL, REGISTRATION_FAILED, or hashing errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Verify email uniqueness. Return the client-safe duplicate err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.DuplicateEmail()
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	// Construct the new Principal entity. Time-sortable ID to prevent PG index fragmentation.
	principal := &Principal{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// Persist the principal. A concurrent registration with the same email
	// slips past the pre-check and surfaces here as a unique violation.
	if err := service.userRepository.Insert(context, principal); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.DuplicateEmail()
		}
		return nil, apperr.RegistrationFailed(err)
	}

	token, err := service.tokenProvider.IssueToken(principal.ID, principal.Email, string(principal.Role), SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTokenTTL),
		Principal: principal,
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates customer credentials and issues a session token.

Description: Consults the customer store only. An admin email presented here
fails exactly like an unknown one.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session token and principal profile
  - err: INVALID_CREDENTIALS or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	return service.login(context, service.userRepository, input)
}

/*
AdminLogin validates administrator credentials and issues a session token.

Description: Consults the admin store only. The issued token carries the
admin role, which gates every /api/admin route.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session token and principal profile
  - err: INVALID_CREDENTIALS or internal failures
*/
func (service *Service) AdminLogin(context context.Context, input LoginInput) (*Session, error) {
	return service.login(context, service.adminRepository, input)
}

// login is the shared credential check against one specific store.
//
// # Anti-Enumeration
//
// Unknown email and wrong password produce byte-identical failures. Callers
// must never specialize the two cases.
func (service *Service) login(context context.Context, repository PrincipalRepository, input LoginInput) (*Session, error) {
	principal, err := repository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// Verify password hash using bcrypt's constant-time comparison to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, principal.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := service.tokenProvider.IssueToken(principal.ID, principal.Email, string(principal.Role), SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("identity_service_token_generation_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTokenTTL),
		Principal: principal,
	}, nil
}

// # Session Introspection

/*
CurrentPrincipal resolves verified token claims into a fresh principal record.

Description: Routes the lookup to the store matching the role baked into the
claims, then re-reads the row so the response reflects current data rather
than the snapshot taken at token issuance.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims

Returns:
  - *Principal: Hydrated entity
  - err: NOT_FOUND (principal deleted after issuance) or storage errors
*/
func (service *Service) CurrentPrincipal(context context.Context, claims *sec.AuthClaims) (*Principal, error) {
	repository := service.userRepository
	if sec.Role(claims.Role) == sec.RoleAdmin {
		repository = service.adminRepository
	}

	principal, err := repository.FindByID(context, claims.PrincipalID)
	if err != nil {
		return nil, err
	}

	return principal, nil
}

// # Admin Listing

/*
ListUsers returns a page of registered customers for the admin dashboard.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*Principal: Page of customer principals
  - pagination.Meta: Paging metadata
  - err: Storage errors
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*Principal, pagination.Meta, error) {
	principals, err := service.userRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("identity_service_list_users_failed: %w", err)
	}

	total, err := service.userRepository.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("identity_service_count_users_failed: %w", err)
	}

	return principals, pagination.NewMeta(params.Page, params.Limit, int(total)), nil
}

// CountUsers returns the total number of registered customers.
func (service *Service) CountUsers(context context.Context) (int64, error) {
	return service.userRepository.Count(context)
}
