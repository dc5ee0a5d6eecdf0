// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListTasks calls GET /tasks.
func (h *HTTP) ListTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	if err := h.doJSON(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask calls GET /tasks/{id}.
func (h *HTTP) GetTask(ctx context.Context, id int64) (*Task, error) {
	return h.taskCall(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil)
}

// CreateTask calls POST /tasks.
func (h *HTTP) CreateTask(ctx context.Context, in TaskInput) (*Task, error) {
	return h.taskCall(ctx, http.MethodPost, "/tasks", in)
}

// UpdateTask calls PUT /tasks/{id}.
func (h *HTTP) UpdateTask(ctx context.Context, id int64, in TaskInput) (*Task, error) {
	return h.taskCall(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), in)
}

// DeleteTask calls DELETE /tasks/{id}.
func (h *HTTP) DeleteTask(ctx context.Context, id int64) error {
	return h.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// UpdateTaskStatus calls PUT /tasks/{id}/status with { status }.
func (h *HTTP) UpdateTaskStatus(ctx context.Context, id int64, status string) (*Task, error) {
	return h.taskCall(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/status", id), map[string]string{"status": status})
}

// AssignTask calls PUT /tasks/{id}/assign with { user_id }.
func (h *HTTP) AssignTask(ctx context.Context, id, userID int64) (*Task, error) {
	return h.taskCall(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/assign", id), map[string]int64{"user_id": userID})
}

func (h *HTTP) taskCall(ctx context.Context, method, path string, in any) (*Task, error) {
	var out Task
	if err := h.doJSON(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
