// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		req           Requirement
		authenticated bool
		target        string
		want          Decision
	}{
		{
			name:   "auth required without token redirects to login",
			req:    RequiresAuth,
			target: "/projects/5",
			want:   RedirectTo(RouteLogin, map[string]string{"redirect": "/projects/5"}),
		},
		{name: "auth required with token", req: RequiresAuth, authenticated: true, target: "/projects/5", want: Allow()},
		{
			name:          "guest only with token redirects to dashboard",
			req:           RequiresGuest,
			authenticated: true,
			target:        "/login",
			want:          RedirectTo(RouteDashboard, map[string]string{}),
		},
		{name: "guest only without token", req: RequiresGuest, target: "/login", want: Allow()},
		{name: "no requirement without token", req: None, target: "/about", want: Allow()},
		{name: "no requirement with token", req: None, authenticated: true, target: "/about", want: Allow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.req, tt.authenticated, tt.target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Decide(tt.req, tt.authenticated, tt.target), "same inputs give the same decision")
		})
	}
}

func TestDecideKeepsFullTarget(t *testing.T) {
	d := Decide(RequiresAuth, false, "/tasks?status=done")
	assert.True(t, d.Redirect)
	assert.Equal(t, "/tasks?status=done", d.Query[RedirectParam])
}

func TestRequirementString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "auth", RequiresAuth.String())
	assert.Equal(t, "guest", RequiresGuest.String())
}
