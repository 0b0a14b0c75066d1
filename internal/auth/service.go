// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
Package auth handles moderation-operator authentication.

Byfest has no public account system: visitors browse anonymously and
submissions are open. The only credential is the operator login, which is
configured through the environment (a username and a bcrypt hash) and
exchanged for a short-lived RS256 access token.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/byfest/byfest/internal/platform/apperr"
	"github.com/byfest/byfest/internal/platform/constants"
	"github.com/byfest/byfest/internal/platform/sec"
)

// TokenProvider issues signed access tokens. Implemented by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// # Service Layer

// Service verifies operator credentials and issues access tokens.
type Service struct {
	username     string
	passwordHash string
	tokens       TokenProvider
	logger       *slog.Logger
}

// NewService constructs a new [Service] from the configured credential.
func NewService(username, passwordHash string, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

/*
Login verifies the operator credential and issues an access token.

Description: The bcrypt comparison runs even when the username is wrong so
both failure paths cost the same; the response never distinguishes which
part of the credential failed.

Parameters:
  - context: context.Context
  - username: string
  - password: string (plain text, never stored)

Returns:
  - string: Signed RS256 access token
  - error: apperr.Unauthorized on any credential mismatch
*/
func (service *Service) Login(context context.Context, username, password string) (string, error) {
	passwordOK := sec.CheckPasswordHash(password, service.passwordHash)

	if username != service.username || !passwordOK {
		service.logger.Warn("operator_login_failed", slog.String("username", username))
		return "", apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.GenerateAccessToken(
		service.username,
		service.username,
		string(sec.RoleAdmin),
		constants.AccessTokenTTL,
	)
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("operator_login_succeeded", slog.String("username", username))
	return token, nil
}
