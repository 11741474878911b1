// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shipora/shipora/internal/platform/sec"
	"github.com/shipora/shipora/pkg/uuidv7"
)

/*
EnsureSeedAdmin guarantees that one administrator exists in the admin store.

Description: Idempotent startup fixture. If the email is already present the
call is a no-op; otherwise a new admin principal is created with the given
credentials. Production deployments are expected to rotate the password
immediately after first boot.

Parameters:
  - context: context.Context
  - repository: PrincipalRepository (must be the admin store)
  - email: string
  - password: string
  - logger: *slog.Logger

Returns:
  - error: Hashing or persistence failures
*/
func EnsureSeedAdmin(context context.Context, repository PrincipalRepository, email, password string, logger *slog.Logger) error {

	// Already seeded: nothing to do.
	if _, err := repository.FindByEmail(context, email); err == nil {
		logger.Info("seed_admin_already_present", slog.String("email", email))
		return nil
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("identity_seed_hash_failed: %w", err)
	}

	admin := &Principal{
		ID:           uuidv7.New(),
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
	}

	if err := repository.Insert(context, admin); err != nil {
		return fmt.Errorf("identity_seed_insert_failed: %w", err)
	}

	logger.Info("seed_admin_created", slog.String("email", email))
	return nil
}
