// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Comments are addressed through their task for listing and creation
// (/tasks/{id}/comments) and directly by id for edits (/comments/{id}).

// ListTaskComments calls GET /tasks/{id}/comments.
func (h *HTTP) ListTaskComments(ctx context.Context, taskID int64) ([]Comment, error) {
	var out []Comment
	if err := h.doJSON(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/comments", taskID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment calls POST /tasks/{id}/comments with { content }.
func (h *HTTP) CreateComment(ctx context.Context, taskID int64, content string) (*Comment, error) {
	var out Comment
	body := map[string]string{"content": content}
	if err := h.doJSON(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/comments", taskID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment calls PUT /comments/{id} with { content }.
func (h *HTTP) UpdateComment(ctx context.Context, id int64, content string) (*Comment, error) {
	var out Comment
	body := map[string]string{"content": content}
	if err := h.doJSON(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment calls DELETE /comments/{id}.
func (h *HTTP) DeleteComment(ctx context.Context, id int64) error {
	return h.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}
