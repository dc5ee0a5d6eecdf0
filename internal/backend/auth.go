// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strings"

	apperr "taskdeck/cli/internal/errors"
)

// Login calls POST /auth/login with { email, password }.
// A response without an access token is a decode failure, not a success.
func (h *HTTP) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var out AuthResult
	if err := h.doJSON(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return nil, apperr.New(apperr.DecodeFailure, "no access_token in login response")
	}
	return &out, nil
}

// Register calls POST /auth/register with the sign-up form.
func (h *HTTP) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if err := h.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return nil, apperr.New(apperr.DecodeFailure, "no access_token in register response")
	}
	return &out, nil
}

// Logout calls POST /auth/logout with the current bearer token.
func (h *HTTP) Logout(ctx context.Context) error {
	return h.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me calls GET /auth/me and returns the profile with roles and permissions.
func (h *HTTP) Me(ctx context.Context) (*MeResult, error) {
	var out MeResult
	if err := h.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
