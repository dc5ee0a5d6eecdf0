// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdeck/cli/internal/backend"
)

func htmlFailure(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})
}

func TestFailuresWithoutServerMessageUseFallback(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv := httptest.NewServer(htmlFailure(status))
			t.Cleanup(srv.Close)

			s := NewStore(backend.New(srv.URL), newRing(t))

			assert.False(t, s.Login(context.Background(), "a@x.io", "pw"))
			assert.Equal(t, "Failed to login", s.LastError())
			assert.False(t, s.IsAuthenticated())

			assert.False(t, s.Register(context.Background(), backend.RegisterRequest{Name: "A", Email: "a@x.io", Password: "pw"}))
			assert.Equal(t, "Failed to register", s.LastError())
		})
	}
}

func TestFailureWithServerMessageKeepsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	s := NewStore(backend.New(srv.URL), newRing(t))
	assert.False(t, s.Login(context.Background(), "a@x.io", "wrong"))
	assert.Equal(t, "Invalid credentials", s.LastError())
}
