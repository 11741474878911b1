// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

package identity

import (
	"context"
)

// # Principal Data Access

// PrincipalRepository defines the data access contract for one principal store.
//
// The customer store and the admin store each get their own instance: the
// interface is identical, the backing table is not. Nothing in the contract
// allows a lookup to cross from one store into the other.
type PrincipalRepository interface {

	/*
		Insert persists a brand-new principal to the storage.

		Parameters:
		  - context: context.Context
		  - principal: *Principal

		Returns:
		  - error: Persistence failures, including unique email violations
	*/
	Insert(context context.Context, principal *Principal) error

	/*
		FindByEmail returns the principal with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Principal: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Principal, error)

	/*
		FindByID returns the principal with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Principal: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Principal, error)

	/*
		List returns a page of principals ordered by creation time (newest first).

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Principal: Hydrated entities
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Principal, error)

	/*
		Count returns the total number of principals in the store.

		Parameters:
		  - context: context.Context

		Returns:
		  - int64: Row count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int64, error)
}
