// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. It is injected into the application layer through small
// interfaces ([identity.TokenProvider], [middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shipora/shipora/internal/platform/apperr"
)

// AuthClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the principal ID, email, and role directly inside the token,
// [middleware.Authenticate] can reconstruct the active principal context
// WITHOUT querying the database on every request. Validity is determined
// solely by signature and expiry — there is no server-side session store and
// no revocation list, so a principal deleted or demoted after issuance keeps
// a working token until it expires.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the payload small.
	PrincipalID string `json:"pid"`
	Email       string `json:"eml"`
	Role        string `json:"rol"`
}

// TokenService handles generation and verification of session tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService.
//
// An empty secret is a configuration error, never silently substituted: the
// caller is expected to treat the returned error as fatal at startup.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret is empty")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// IssueToken creates a new signed session token for a principal.
//
// The expiry is fixed at issuance (issuedAt + timeToLive); nothing can
// shorten or extend it afterwards.
func (service *TokenService) IssueToken(principalID, email, role string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		PrincipalID: principalID,
		Email:       email,
		Role:        role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
//
// # Error Contract
//
//   - [apperr.TokenExpired] when the token is well-formed but past its expiry.
//   - [apperr.TokenInvalid] for every other failure (bad signature, wrong
//     algorithm, malformed string, missing claims).
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.TokenExpired()
		}
		return nil, apperr.TokenInvalid(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, apperr.TokenInvalid(fmt.Errorf("sec: invalid token claims"))
	}

	return claims, nil
}
