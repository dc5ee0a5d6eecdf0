// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth owns the authentication session of the taskdeck client.
// The Store performs login, registration, logout and profile refresh against the
// backend and keeps the persisted bearer token consistent with its in-memory state.
// Every action resolves to an outcome plus Session.LastError; no failure escapes.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/pterm/pterm"

	"taskdeck/cli/internal/backend"
	apperr "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/logging"
)

// Fallback messages used when the backend gives no usable message.
const (
	msgLoginFailed    = "Failed to login"
	msgRegisterFailed = "Failed to register"
	msgPersistFailed  = "Failed to save session"
)

// TokenStore persists the bearer token across process restarts.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

// Store is the session store. The zero value is not usable; use NewStore.
//
// The mutex is never held across a backend call, so the teardown hook can run
// from inside an in-flight request. Overlapping actions share the Loading flag.
type Store struct {
	api    backend.AuthAPI
	tokens TokenStore
	log    *pterm.Logger

	mu             sync.RWMutex
	state          Session
	authenticating bool

	loadOnce sync.Once
	loaded   string
	initOnce sync.Once
	initDone chan struct{}
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *pterm.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore returns an empty, anonymous store.
func NewStore(api backend.AuthAPI, tokens TokenStore, opts ...StoreOption) *Store {
	s := &Store{api: api, tokens: tokens, log: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates with email and password.
// On failure the previous session is left as it was and LastError explains why.
func (s *Store) Login(ctx context.Context, email, password string) (ok bool) {
	s.begin()
	defer s.end(&ok, msgLoginFailed)

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail(err, msgLoginFailed)
		return false
	}
	return s.establish(res)
}

// Register creates an account and signs it in.
// Validation failures are kept field by field in FieldErrors.
func (s *Store) Register(ctx context.Context, req backend.RegisterRequest) (ok bool) {
	s.begin()
	defer s.end(&ok, msgRegisterFailed)

	res, err := s.api.Register(ctx, req)
	if err != nil {
		s.fail(err, msgRegisterFailed)
		return false
	}
	return s.establish(res)
}

// Logout ends the session. The remote call is best effort; local state and the
// persisted token are always cleared. Safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state.Loading = true
	authenticated := s.state.IsAuthenticated
	s.mu.Unlock()

	if authenticated {
		if err := s.remoteLogout(ctx); err != nil {
			s.log.Warn("remote logout failed", s.log.Args("error", logging.Mask(err.Error())))
		}
	}
	s.reset()
}

// Teardown resets the session after an authorization-denied response.
// It is the hook handed to the backend client and never calls the network.
func (s *Store) Teardown() {
	s.log.Debug("session torn down after authorization was denied")
	s.reset()
}

// FetchUser refreshes the profile. Without a token it does nothing.
// An authorization-denied response logs the session out; any other failure keeps
// the current profile.
func (s *Store) FetchUser(ctx context.Context) {
	s.mu.Lock()
	token := s.state.Token
	if token == "" {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	res, err := s.me(ctx)
	if err != nil {
		if isAuthorizationDenied(err) {
			s.Logout(ctx)
			return
		}
		s.log.Debug("profile refresh failed, keeping cached profile", s.log.Args("error", logging.Mask(err.Error())))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A logout or re-login while the request was in flight wins.
	if s.state.Token != token {
		return
	}
	s.state.User = mergeUser(res.User, res.Roles, res.Permissions)
}

// Init restores a persisted session. It reads the token once per Store; when one
// is found the session is marked authenticated immediately and the profile is
// fetched in the background. The returned channel closes when that fetch resolves,
// or immediately when there was nothing to restore.
func (s *Store) Init(ctx context.Context) <-chan struct{} {
	s.initOnce.Do(func() {
		s.initDone = make(chan struct{})
		if s.restore() == "" {
			close(s.initDone)
			return
		}
		go func() {
			defer close(s.initDone)
			s.FetchUser(ctx)
		}()
	})
	return s.initDone
}

// Restore loads the persisted token without fetching the profile and reports
// whether one was found. It shares Init's single read of the token.
func (s *Store) Restore() bool {
	return s.restore() != ""
}

func (s *Store) restore() string {
	s.loadOnce.Do(func() {
		token, err := s.tokens.LoadToken()
		if err != nil {
			s.log.Warn("could not read stored token", s.log.Args("error", logging.Mask(err.Error())))
			return
		}
		if token == "" {
			return
		}
		s.loaded = token

		s.mu.Lock()
		s.state.Token = token
		s.state.IsAuthenticated = true
		s.mu.Unlock()
		s.log.Debug("restored session from keychain", s.log.Args("token", logging.MaskToken(token)))
	})
	return s.loaded
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.state
	c.User = s.state.User.clone()
	if s.state.FieldErrors != nil {
		c.FieldErrors = make(map[string][]string, len(s.state.FieldErrors))
		for k, v := range s.state.FieldErrors {
			c.FieldErrors[k] = append([]string(nil), v...)
		}
	}
	return c
}

// Phase reports the lifecycle state.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.authenticating:
		return Authenticating
	case s.state.Token == "":
		return Anonymous
	case s.state.User == nil:
		return AuthenticatedStale
	default:
		return Authenticated
	}
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// User returns a copy of the profile, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.clone()
}

// LastError returns the message of the last failed action.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastError
}

// IsAdmin reports whether the signed-in user holds the admin role.
func (s *Store) IsAdmin() bool { return s.hasRole(RoleAdmin) }

// IsProjectManager reports whether the signed-in user holds the project manager role.
func (s *Store) IsProjectManager() bool { return s.hasRole(RoleProjectManager) }

// IsTeamMember reports whether the signed-in user holds the team member role.
func (s *Store) IsTeamMember() bool { return s.hasRole(RoleTeamMember) }

// HasPermission reports whether the signed-in user holds permission. False without a profile.
func (s *Store) HasPermission(permission string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.HasPermission(permission)
}

func (s *Store) hasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.HasRole(role)
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.LastError = ""
	s.state.FieldErrors = nil
	s.authenticating = true
}

// end clears the in-flight flags and converts a panic in the collaborator into a failure.
func (s *Store) end(ok *bool, fallback string) {
	if r := recover(); r != nil {
		s.log.Error("auth action panicked", s.log.Args("panic", fmt.Sprint(r)))
		s.mu.Lock()
		s.state.LastError = fallback
		s.mu.Unlock()
		*ok = false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.authenticating = false
}

func (s *Store) fail(err error, fallback string) {
	msg, fields := errorMessage(err, fallback)
	s.log.Debug("auth action failed", s.log.Args("kind", string(apperr.KindOf(err)), "error", logging.Mask(err.Error())))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = msg
	s.state.FieldErrors = fields
}

// establish persists the token first so the durable flag never lags a signed-in session.
func (s *Store) establish(res *backend.AuthResult) bool {
	if err := s.tokens.SaveToken(res.AccessToken); err != nil {
		s.log.Warn("could not persist token", s.log.Args("error", logging.Mask(err.Error())))
		s.mu.Lock()
		s.state.LastError = msgPersistFailed
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = res.AccessToken
	s.state.IsAuthenticated = true
	s.state.User = mergeUser(res.User, res.Roles, res.Permissions)
	s.log.Debug("signed in", s.log.Args("user_id", res.User.ID))
	return true
}

func (s *Store) reset() {
	if err := s.tokens.ClearToken(); err != nil {
		s.log.Warn("could not clear stored token", s.log.Args("error", logging.Mask(err.Error())))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = v
}

func (s *Store) remoteLogout(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("logout panicked: %v", r)
		}
	}()
	return s.api.Logout(ctx)
}

func (s *Store) me(ctx context.Context) (res *backend.MeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch user panicked: %v", r)
		}
	}()
	return s.api.Me(ctx)
}

// errorMessage picks the user-facing message for a failed login or register.
// Transport and decode problems get the generic fallback.
func errorMessage(err error, fallback string) (string, map[string][]string) {
	switch apperr.KindOf(err) {
	case "", apperr.TransportFailure, apperr.DecodeFailure:
		return fallback, nil
	}
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		return apperr.FlattenFields(fields), fields
	}
	return apperr.MessageOf(err, fallback), nil
}

func isAuthorizationDenied(err error) bool {
	return apperr.Is(err, apperr.AuthorizationExpired) || apperr.Is(err, apperr.AuthenticationFailure)
}
