// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

// Postgres-backed principal stores.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement [PrincipalRepository] using the [pgxpool.Pool] connection manager.
// One struct serves both principal stores; the bound table name is the only
// difference between the customer and admin instances.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
// Unique violations are NOT mapped here — the service layer inspects them via
// [dberr.IsUniqueViolation] to produce the duplicate-email contract error.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shipora/shipora/internal/platform/apperr"
)

// # Principal Repository

// PostgresPrincipalRepository implements [PrincipalRepository] using pgx.
type PostgresPrincipalRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewUserRepository creates the customer-store repository (users.account).
func NewUserRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool, table: "users.account"}
}

// NewAdminRepository creates the admin-store repository (users.admin).
func NewAdminRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool, table: "users.admin"}
}

/*
Insert persists a new principal record into the bound store table.

Description: Deep-persists principal metadata, ensuring timestamps are
initialized if not provided. The table's unique email index is the final
arbiter of duplicates; violations propagate to the caller unmapped.

Parameters:
  - context: context.Context
  - principal: *Principal (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresPrincipalRepository) Insert(context context.Context, principal *Principal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, name, email, phone, passwordhash, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, repository.table)

	now := time.Now()
	if principal.CreatedAt.IsZero() {
		principal.CreatedAt = now
	}
	principal.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		principal.ID,
		principal.Name,
		principal.Email,
		principal.Phone,
		principal.PasswordHash,
		principal.Role,
		principal.CreatedAt,
		principal.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_principal_repo_insert_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a principal record by their unique email address.

Description: Performs a lookup on the bound store table only. An email that
exists in the other store is invisible here.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Principal: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresPrincipalRepository) FindByEmail(context context.Context, email string) (*Principal, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, passwordhash, role, createdat, updatedat
		FROM %s
		WHERE email = $1`, repository.table)

	principal := &Principal{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&principal.ID,
		&principal.Name,
		&principal.Email,
		&principal.Phone,
		&principal.PasswordHash,
		&principal.Role,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Principal")
		}
		return nil, fmt.Errorf("postgres_principal_repo_find_by_email_failed: %w", err)
	}

	return principal, nil
}

/*
FindByID retrieves a principal record by their unique ID.

Description: Primary key resolution for principals.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Principal: Hydrated entity
  - error: Not found or execution errors
*/
func (repository *PostgresPrincipalRepository) FindByID(context context.Context, id string) (*Principal, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, passwordhash, role, createdat, updatedat
		FROM %s
		WHERE id = $1`, repository.table)

	principal := &Principal{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&principal.ID,
		&principal.Name,
		&principal.Email,
		&principal.Phone,
		&principal.PasswordHash,
		&principal.Role,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Principal")
		}
		return nil, fmt.Errorf("postgres_principal_repo_find_by_id_failed: %w", err)
	}

	return principal, nil
}

/*
List returns a page of principals, newest registrations first.

Description: Feeds the admin user listing. UUIDv7 primary keys are
time-sortable, so ordering on createdat stays index-friendly.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Principal: Hydrated entities
  - error: Execution errors
*/
func (repository *PostgresPrincipalRepository) List(context context.Context, limit, offset int) ([]*Principal, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, passwordhash, role, createdat, updatedat
		FROM %s
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`, repository.table)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_principal_repo_list_failed: %w", err)
	}
	defer rows.Close()

	principals := make([]*Principal, 0, limit)
	for rows.Next() {
		principal := &Principal{}
		if err := rows.Scan(
			&principal.ID,
			&principal.Name,
			&principal.Email,
			&principal.Phone,
			&principal.PasswordHash,
			&principal.Role,
			&principal.CreatedAt,
			&principal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_principal_repo_list_scan_failed: %w", err)
		}
		principals = append(principals, principal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_principal_repo_list_rows_failed: %w", err)
	}

	return principals, nil
}

/*
Count returns the total number of principals in the bound store.

Parameters:
  - context: context.Context

Returns:
  - int64: Row count
  - error: Execution errors
*/
func (repository *PostgresPrincipalRepository) Count(context context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", repository.table)

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_principal_repo_count_failed: %w", err)
	}

	return total, nil
}
