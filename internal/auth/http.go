// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/byfest/byfest/internal/platform/request"
	"github.com/byfest/byfest/internal/platform/respond"
	"github.com/byfest/byfest/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for operator authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	return router
}

// loginRequest is the inbound JSON schema for the operator login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the issued access token.
type loginResponse struct {
	AccessToken string `json:"access_token"`
}

/*
POST /api/v1/auth/login.

Description: Exchanges the operator credential for an RS256 access token
used on moderation endpoints.

Request (Body):
  - loginRequest: JSON object

Response:
  - 200: loginResponse: Signed access token
  - 400: ErrInvalidJSON/Validation: Malformed input
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", input.Username).Required("password", input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{AccessToken: token})
}
