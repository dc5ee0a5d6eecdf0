// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the Taskdeck REST backend.
// It defines the API contract for authentication and for the project, task, comment,
// user and file resources, and decodes every response into typed results or an
// error carrying an internal/errors Kind.
package backend

import (
	"context"
	"io"
)

// AuthAPI is the authentication collaborator the session store depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	// Logout invalidates the current access token on the backend.
	Logout(ctx context.Context) error
	// Me retrieves the current user's profile, roles and permissions.
	Me(ctx context.Context) (*MeResult, error)
}

// API is the full backend surface used by the CLI commands.
type API interface {
	AuthAPI

	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	CreateProject(ctx context.Context, in ProjectInput) (*Project, error)
	UpdateProject(ctx context.Context, id int64, in ProjectInput) (*Project, error)
	DeleteProject(ctx context.Context, id int64) error
	ListProjectMembers(ctx context.Context, projectID int64) ([]Member, error)
	AddProjectMember(ctx context.Context, projectID int64, in MemberInput) error
	RemoveProjectMember(ctx context.Context, projectID, userID int64) error
	UpdateProjectMemberRole(ctx context.Context, projectID, userID int64, role string) error

	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, in TaskInput) (*Task, error)
	UpdateTask(ctx context.Context, id int64, in TaskInput) (*Task, error)
	DeleteTask(ctx context.Context, id int64) error
	UpdateTaskStatus(ctx context.Context, id int64, status string) (*Task, error)
	AssignTask(ctx context.Context, id, userID int64) (*Task, error)

	ListTaskComments(ctx context.Context, taskID int64) ([]Comment, error)
	CreateComment(ctx context.Context, taskID int64, content string) (*Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (*Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListTaskAssignees(ctx context.Context) ([]User, error)

	Upload(ctx context.Context, req UploadRequest) (*UploadedFile, error)
	GetFile(ctx context.Context, name string, w io.Writer) (int64, error)
}

var _ API = (*HTTP)(nil)
