// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers calls GET /users.
func (h *HTTP) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := h.doJSON(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser calls GET /users/{id}.
func (h *HTTP) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := h.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTaskAssignees calls GET /task-assignees, the users a task may be assigned to.
func (h *HTTP) ListTaskAssignees(ctx context.Context) ([]User, error) {
	var out []User
	if err := h.doJSON(ctx, http.MethodGet, "/task-assignees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
