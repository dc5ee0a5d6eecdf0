// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "io"

// User is a user record as returned by the backend.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
}

// AuthResult is the success payload of login and register.
type AuthResult struct {
	AccessToken string   `json:"access_token"`
	User        User     `json:"user"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// MeResult is the success payload of GET /auth/me.
type MeResult struct {
	User        User     `json:"user"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
	Position             string `json:"position,omitempty"`
	Department           string `json:"department,omitempty"`
}

// Project is a project record.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Progress    int    `json:"progress"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// ProjectInput is the create/update payload for a project. Nil fields are omitted.
type ProjectInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Progress    *int   `json:"progress,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// Member is a user's membership in a project.
type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// MemberInput adds a user to a project.
type MemberInput struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// Task is a task record.
type Task struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	AssignedTo  *int64 `json:"assigned_to,omitempty"`
}

// TaskInput is the create/update payload for a task.
type TaskInput struct {
	ProjectID   int64  `json:"project_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	AssignedTo  *int64 `json:"assigned_to,omitempty"`
}

// Comment is a comment on a task.
type Comment struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	UserID    int64  `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// UploadRequest describes a file attached to a project or task.
type UploadRequest struct {
	Filename  string
	Content   io.Reader
	Type      string
	RelatedID int64
}

// UploadedFile is the backend's receipt for an upload.
type UploadedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
}
