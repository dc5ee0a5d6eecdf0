// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListProjects calls GET /projects.
func (h *HTTP) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := h.doJSON(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject calls GET /projects/{id}.
func (h *HTTP) GetProject(ctx context.Context, id int64) (*Project, error) {
	var out Project
	if err := h.doJSON(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject calls POST /projects.
func (h *HTTP) CreateProject(ctx context.Context, in ProjectInput) (*Project, error) {
	var out Project
	if err := h.doJSON(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject calls PUT /projects/{id}.
func (h *HTTP) UpdateProject(ctx context.Context, id int64, in ProjectInput) (*Project, error) {
	var out Project
	if err := h.doJSON(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject calls DELETE /projects/{id}.
func (h *HTTP) DeleteProject(ctx context.Context, id int64) error {
	return h.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// ListProjectMembers calls GET /projects/{id}/members.
func (h *HTTP) ListProjectMembers(ctx context.Context, projectID int64) ([]Member, error) {
	var out []Member
	if err := h.doJSON(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/members", projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddProjectMember calls POST /projects/{id}/members.
func (h *HTTP) AddProjectMember(ctx context.Context, projectID int64, in MemberInput) error {
	return h.doJSON(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/members", projectID), in, nil)
}

// RemoveProjectMember calls DELETE /projects/{id}/members/{userId}.
func (h *HTTP) RemoveProjectMember(ctx context.Context, projectID, userID int64) error {
	return h.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d/members/%d", projectID, userID), nil, nil)
}

// UpdateProjectMemberRole calls PUT /projects/{id}/members/{userId} with { role }.
func (h *HTTP) UpdateProjectMemberRole(ctx context.Context, projectID, userID int64, role string) error {
	body := map[string]string{"role": role}
	return h.doJSON(ctx, http.MethodPut, fmt.Sprintf("/projects/%d/members/%d", projectID, userID), body, nil)
}
