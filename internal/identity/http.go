// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

/*
HTTP delivery layer for principal identity management.

It implements the gateway for the credential lifecycle — from account creation
to login and session introspection.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Returns bearer session tokens; clients store them locally.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package identity

import (
	stdctx "context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shipora/shipora/internal/platform/middleware"
	requestutil "github.com/shipora/shipora/internal/platform/request"
	"github.com/shipora/shipora/internal/platform/respond"
	"github.com/shipora/shipora/internal/platform/validate"
	"github.com/shipora/shipora/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements identity-related HTTP endpoints.
//
// # Scope
//
// This handler manages the principal lifecycle entry points (registration,
// customer login, admin login, session introspection) plus the admin-only
// customer listing.
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// Routes returns a [chi.Router] configured with the credential routes.
//
// # Endpoints
//   - POST /register    : Creates a new customer account.
//   - POST /login       : Authenticates against the customer store.
//   - POST /admin/login : Authenticates against the admin store.
//   - GET  /me          : Returns the authenticated principal.
//
// None of the credential routes carry a rate limit: throttling and lockout
// are documented as absent from the login contract.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/admin/login", handler.adminLogin)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new customer account.

POST /api/auth/register

Description: Validates input, delegates duplicate detection and persistence
to [Service.Register], and returns the new principal together with its first
session token so the client is immediately logged in.

Request:
  - Body: registerRequest (Name, Email, Phone?, Password)

Response:
  - 201: Session: Created customer profile plus bearer token
  - 400: DUPLICATE_EMAIL or validation failure
  - 500: REGISTRATION_FAILED: Persistence failure (cause attached)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.identityService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
Login authenticates a customer and issues a session token.

POST /api/auth/login

Description: Verifies credentials against the customer store and returns a
bearer token with a fixed seven-day expiry.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Token, expiry, and principal profile
  - 400: INVALID_CREDENTIALS: Unknown email or wrong password (identical)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	handler.handleLogin(writer, request, handler.identityService.Login)
}

/*
AdminLogin authenticates an administrator and issues a session token.

POST /api/auth/admin/login

Description: Verifies credentials against the admin store only. A customer
email presented here fails identically to an unknown one.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Token, expiry, and principal profile
  - 400: INVALID_CREDENTIALS: Unknown email or wrong password (identical)
*/
func (handler *Handler) adminLogin(writer http.ResponseWriter, request *http.Request) {
	handler.handleLogin(writer, request, handler.identityService.AdminLogin)
}

// handleLogin is the shared transport flow for both login endpoints.
func (handler *Handler) handleLogin(
	writer http.ResponseWriter,
	request *http.Request,
	authenticate func(context stdctx.Context, input LoginInput) (*Session, error),
) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := authenticate(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
Me returns the authenticated principal's current profile.

GET /api/auth/me

Description: Resolves the bearer token claims back into a fresh database
record, so demotions or profile edits after issuance are visible.

Response:
  - 200: Principal: Current profile
  - 401: UNAUTHORIZED / TOKEN_INVALID / TOKEN_EXPIRED
  - 404: NOT_FOUND: Principal deleted after token issuance
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := handler.identityService.CurrentPrincipal(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal)
}

/*
ListUsers returns a page of registered customers.

GET /api/admin/users

Description: Admin-only listing ordered by registration time, newest first.

Response:
  - 200: []Principal + pagination meta
  - 401/403: Missing authentication or insufficient role
*/
func (handler *Handler) ListUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	principals, meta, err := handler.identityService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, principals, meta)
}
