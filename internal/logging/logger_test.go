// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	apperr "taskdeck/cli/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"trace":    pterm.LogLevelTrace,
		"DEBUG":    pterm.LogLevelDebug,
		"warn":     pterm.LogLevelWarn,
		"error":    pterm.LogLevelError,
		"disabled": pterm.LogLevelDisabled,
		"":         pterm.LogLevelInfo,
		"chatty":   pterm.LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", log.Args("path", "/auth/me"))
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "/auth/me")
}

func TestPresentError(t *testing.T) {
	assert.Equal(t, "", PresentError("login", nil))
	assert.Equal(t, "login: Invalid credentials",
		PresentError("login", apperr.New(apperr.AuthenticationFailure, "Invalid credentials")))

	validation := &apperr.E{
		Kind:    apperr.ValidationFailure,
		Message: "The given data was invalid.",
		Fields:  map[string][]string{"email": {"taken"}},
	}
	assert.Equal(t, "register: email: taken", PresentError("register", validation))
	assert.Equal(t, "boom token=***", PresentError("", errors.New("boom token=abc")))
	assert.Equal(t, "projects: Internal Server Error",
		PresentError("projects", &apperr.E{Kind: apperr.ServerFailure, Status: 500}))
}
