// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/cli/internal/backend"
	apperr "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/keychain"
)

type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	login    func(ctx context.Context, email, password string) (*backend.AuthResult, error)
	register func(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResult, error)
	logout   func(ctx context.Context) error
	me       func(ctx context.Context) (*backend.MeResult, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*backend.AuthResult, error) {
	f.record("login")
	return f.login(ctx, email, password)
}

func (f *fakeAPI) Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResult, error) {
	f.record("register")
	return f.register(ctx, req)
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.record("logout")
	if f.logout == nil {
		return nil
	}
	return f.logout(ctx)
}

func (f *fakeAPI) Me(ctx context.Context) (*backend.MeResult, error) {
	f.record("me")
	return f.me(ctx)
}

type countingTokens struct {
	TokenStore
	mu    sync.Mutex
	loads int
}

func (c *countingTokens) LoadToken() (string, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return c.TokenStore.LoadToken()
}

type failingTokens struct{ TokenStore }

func (failingTokens) SaveToken(string) error { return errors.New("keychain locked") }

func newRing(t *testing.T) *keychain.Manager {
	t.Helper()
	return keychain.NewWithRing(keyring.NewArrayKeyring(nil))
}

func teamMemberResult() *backend.AuthResult {
	return &backend.AuthResult{
		AccessToken: "tok1",
		User:        backend.User{ID: 1, Name: "A", Email: "a@x.io"},
		Roles:       []string{RoleTeamMember},
		Permissions: []string{"task.view"},
	}
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAPI{login: func(_ context.Context, email, password string) (*backend.AuthResult, error) {
		assert.Equal(t, "a@x.io", email)
		assert.Equal(t, "pw", password)
		return teamMemberResult(), nil
	}}
	tokens := newRing(t)
	s := NewStore(api, tokens)

	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	snap := s.Snapshot()
	assert.Equal(t, "tok1", snap.Token)
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	require.NotNil(t, snap.User)
	assert.Equal(t, int64(1), snap.User.ID)
	assert.Equal(t, "A", snap.User.Name)

	assert.True(t, s.IsTeamMember())
	assert.False(t, s.IsAdmin())
	assert.False(t, s.IsProjectManager())
	assert.True(t, s.HasPermission("task.view"))
	assert.False(t, s.HasPermission("task.delete"))
	assert.Equal(t, Authenticated, s.Phase())

	stored, err := tokens.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", stored)
}

func TestLoginFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: apperr.New(apperr.AuthenticationFailure, "Invalid credentials"), want: "Invalid credentials"},
		{name: "empty server message", err: apperr.New(apperr.AuthenticationFailure, ""), want: "Failed to login"},
		{name: "transport", err: apperr.Wrap(apperr.TransportFailure, "request failed", errors.New("dial tcp")), want: "Failed to login"},
		{name: "untyped", err: errors.New("boom"), want: "Failed to login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) {
				return nil, tt.err
			}}
			tokens := newRing(t)
			s := NewStore(api, tokens)

			assert.False(t, s.Login(context.Background(), "a@x.io", "bad"))
			snap := s.Snapshot()
			assert.Equal(t, tt.want, snap.LastError)
			assert.False(t, snap.IsAuthenticated)
			assert.Empty(t, snap.Token)
			assert.Nil(t, snap.User)
			assert.False(t, snap.Loading)
			assert.False(t, tokens.HasToken())
			assert.Equal(t, Anonymous, s.Phase())
		})
	}
}

func TestLoginFailureKeepsPriorSession(t *testing.T) {
	calls := 0
	api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) {
		calls++
		if calls == 1 {
			return teamMemberResult(), nil
		}
		return nil, apperr.New(apperr.AuthenticationFailure, "Invalid credentials")
	}}
	s := NewStore(api, newRing(t))

	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))
	require.False(t, s.Login(context.Background(), "b@x.io", "bad"))

	snap := s.Snapshot()
	assert.Equal(t, "tok1", snap.Token)
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "A", snap.User.Name)
	assert.Equal(t, "Invalid credentials", snap.LastError)
}

func TestLoginPersistFailureIsLoginFailure(t *testing.T) {
	api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) {
		return teamMemberResult(), nil
	}}
	s := NewStore(api, failingTokens{newRing(t)})

	assert.False(t, s.Login(context.Background(), "a@x.io", "pw"))
	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.NotEmpty(t, snap.LastError)
}

func TestLoginLoadingWhileInFlight(t *testing.T) {
	var s *Store
	api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) {
		snap := s.Snapshot()
		assert.True(t, snap.Loading)
		assert.Empty(t, snap.LastError)
		assert.Equal(t, Authenticating, s.Phase())
		return teamMemberResult(), nil
	}}
	s = NewStore(api, newRing(t))

	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))
	assert.False(t, s.Snapshot().Loading)
}

func TestLoginPanicBecomesFailure(t *testing.T) {
	api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) {
		panic("collaborator exploded")
	}}
	s := NewStore(api, newRing(t))

	var ok bool
	require.NotPanics(t, func() { ok = s.Login(context.Background(), "a@x.io", "pw") })
	assert.False(t, ok)
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "Failed to login", snap.LastError)
	assert.Equal(t, Anonymous, s.Phase())
}

func TestRegisterValidationFailure(t *testing.T) {
	fields := map[string][]string{
		"email":    {"The email has already been taken."},
		"password": {"The password must be at least 8 characters."},
	}
	api := &fakeAPI{register: func(context.Context, backend.RegisterRequest) (*backend.AuthResult, error) {
		return nil, &apperr.E{Kind: apperr.ValidationFailure, Message: "The given data was invalid.", Status: 422, Fields: fields}
	}}
	s := NewStore(api, newRing(t))

	assert.False(t, s.Register(context.Background(), backend.RegisterRequest{Name: "A", Email: "a@x.io", Password: "pw"}))
	snap := s.Snapshot()
	assert.Equal(t, "email: The email has already been taken.; password: The password must be at least 8 characters.", snap.LastError)
	assert.Equal(t, fields, snap.FieldErrors)
	assert.False(t, snap.IsAuthenticated)
}

func TestRegisterFallbackMessage(t *testing.T) {
	api := &fakeAPI{register: func(context.Context, backend.RegisterRequest) (*backend.AuthResult, error) {
		return nil, apperr.New(apperr.ServerFailure, "")
	}}
	s := NewStore(api, newRing(t))

	assert.False(t, s.Register(context.Background(), backend.RegisterRequest{Email: "a@x.io"}))
	assert.Equal(t, "Failed to register", s.LastError())
}

func TestRegisterSuccessSignsIn(t *testing.T) {
	api := &fakeAPI{register: func(_ context.Context, req backend.RegisterRequest) (*backend.AuthResult, error) {
		assert.Equal(t, "Bea", req.Name)
		return &backend.AuthResult{
			AccessToken: "tok-new",
			User:        backend.User{ID: 9, Name: "Bea", Email: req.Email},
			Roles:       []string{RoleProjectManager},
		}, nil
	}}
	tokens := newRing(t)
	s := NewStore(api, tokens)

	require.True(t, s.Register(context.Background(), backend.RegisterRequest{Name: "Bea", Email: "bea@x.io", Password: "secret123"}))
	assert.True(t, s.IsProjectManager())
	assert.Nil(t, s.Snapshot().FieldErrors)
	stored, _ := tokens.LoadToken()
	assert.Equal(t, "tok-new", stored)
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	api := &fakeAPI{
		login:  func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		logout: func(context.Context) error { return apperr.Wrap(apperr.TransportFailure, "request failed", errors.New("refused")) },
	}
	tokens := newRing(t)
	s := NewStore(api, tokens)
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.Logout(context.Background())

	assert.Equal(t, 1, api.count("logout"))
	assert.Equal(t, Session{}, s.Snapshot())
	assert.False(t, tokens.HasToken())
	assert.False(t, s.HasPermission("task.view"))
}

func TestLogoutIsIdempotent(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, newRing(t))

	s.Logout(context.Background())
	s.Logout(context.Background())

	assert.Equal(t, 0, api.count("logout"), "anonymous logout must not call the backend")
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestRestoreSkipsProfileFetch(t *testing.T) {
	api := &fakeAPI{}
	ring := newRing(t)
	require.NoError(t, ring.SaveToken("tok1"))
	s := NewStore(api, ring)

	assert.True(t, s.Restore())
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, AuthenticatedStale, s.Phase())

	s.Logout(context.Background())
	assert.Equal(t, 1, api.count("logout"))
	assert.Zero(t, api.count("me"))
	assert.False(t, ring.HasToken())
}

func TestRestoreWithoutToken(t *testing.T) {
	s := NewStore(&fakeAPI{}, newRing(t))
	assert.False(t, s.Restore())
	assert.Equal(t, Anonymous, s.Phase())
}

func TestFetchUserWithoutTokenIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, newRing(t))

	s.FetchUser(context.Background())

	assert.Equal(t, 0, api.count("me"))
	assert.Equal(t, Session{}, s.Snapshot())
}

func TestFetchUserRefreshesProfile(t *testing.T) {
	api := &fakeAPI{
		login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		me: func(context.Context) (*backend.MeResult, error) {
			return &backend.MeResult{
				User:        backend.User{ID: 1, Name: "A2", Department: "Ops"},
				Roles:       []string{RoleAdmin},
				Permissions: []string{"user.manage"},
			}, nil
		},
	}
	s := NewStore(api, newRing(t))
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.FetchUser(context.Background())

	u := s.User()
	require.NotNil(t, u)
	assert.Equal(t, "A2", u.Name)
	assert.Equal(t, "Ops", u.Department)
	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsTeamMember())
	assert.True(t, s.HasPermission("user.manage"))
	assert.False(t, s.Snapshot().Loading)
}

func TestFetchUserUnauthorizedLogsOut(t *testing.T) {
	api := &fakeAPI{
		login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		me: func(context.Context) (*backend.MeResult, error) {
			return nil, &apperr.E{Kind: apperr.AuthorizationExpired, Message: "Unauthenticated.", Status: 401}
		},
	}
	tokens := newRing(t)
	s := NewStore(api, tokens)
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.FetchUser(context.Background())

	assert.Equal(t, Session{}, s.Snapshot())
	assert.False(t, tokens.HasToken())
	assert.Equal(t, Anonymous, s.Phase())
}

func TestFetchUserTeardownDuringRequest(t *testing.T) {
	var s *Store
	api := &fakeAPI{
		login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		me: func(context.Context) (*backend.MeResult, error) {
			// The HTTP client runs the teardown hook before returning the error.
			s.Teardown()
			return nil, &apperr.E{Kind: apperr.AuthorizationExpired, Message: "Unauthenticated.", Status: 401}
		},
	}
	tokens := newRing(t)
	s = NewStore(api, tokens)
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.FetchUser(context.Background())

	assert.Equal(t, 0, api.count("logout"), "the session was already torn down")
	assert.Equal(t, Session{}, s.Snapshot())
	assert.False(t, tokens.HasToken())
}

func TestFetchUserOtherFailureKeepsProfile(t *testing.T) {
	api := &fakeAPI{
		login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		me: func(context.Context) (*backend.MeResult, error) {
			return nil, apperr.New(apperr.ServerFailure, "Server Error")
		},
	}
	s := NewStore(api, newRing(t))
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.FetchUser(context.Background())

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "A", snap.User.Name)
	assert.False(t, snap.Loading)
}

func TestFetchUserResultDroppedAfterLogout(t *testing.T) {
	var s *Store
	api := &fakeAPI{
		login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil },
		me: func(ctx context.Context) (*backend.MeResult, error) {
			s.Logout(ctx)
			return &backend.MeResult{User: backend.User{ID: 1, Name: "A"}}, nil
		},
	}
	s = NewStore(api, newRing(t))
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	s.FetchUser(context.Background())

	assert.Nil(t, s.User(), "a profile must never outlive its token")
	assert.False(t, s.IsAuthenticated())
}

func TestInitWithoutStoredToken(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, newRing(t))

	select {
	case <-s.Init(context.Background()):
	case <-time.After(time.Second):
		t.Fatal("init did not resolve")
	}
	assert.Equal(t, 0, api.count("me"))
	assert.Equal(t, Anonymous, s.Phase())
}

func TestInitRestoresSessionAndFetchesProfile(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAPI{me: func(context.Context) (*backend.MeResult, error) {
		<-release
		return &backend.MeResult{
			User:        backend.User{ID: 1, Name: "A"},
			Roles:       []string{RoleTeamMember},
			Permissions: []string{"task.view"},
		}, nil
	}}
	ring := newRing(t)
	require.NoError(t, ring.SaveToken("tok1"))
	tokens := &countingTokens{TokenStore: ring}
	s := NewStore(api, tokens)

	done := s.Init(context.Background())

	assert.True(t, s.IsAuthenticated(), "authenticated before the profile arrives")
	assert.Equal(t, AuthenticatedStale, s.Phase())
	assert.Nil(t, s.User())

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("init did not resolve")
	}
	assert.Equal(t, Authenticated, s.Phase())
	assert.True(t, s.HasPermission("task.view"))

	assert.Equal(t, done, s.Init(context.Background()))
	assert.Equal(t, 1, tokens.loads)
	assert.Equal(t, 1, api.count("me"))
}

func TestInitWithRevokedToken(t *testing.T) {
	api := &fakeAPI{me: func(context.Context) (*backend.MeResult, error) {
		return nil, &apperr.E{Kind: apperr.AuthorizationExpired, Message: "Unauthenticated.", Status: 401}
	}}
	ring := newRing(t)
	require.NoError(t, ring.SaveToken("stale"))
	s := NewStore(api, ring)

	<-s.Init(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.False(t, ring.HasToken())
}

func TestSnapshotIsACopy(t *testing.T) {
	api := &fakeAPI{login: func(context.Context, string, string) (*backend.AuthResult, error) { return teamMemberResult(), nil }}
	s := NewStore(api, newRing(t))
	require.True(t, s.Login(context.Background(), "a@x.io", "pw"))

	snap := s.Snapshot()
	snap.User.Roles[0] = RoleAdmin
	snap.User.Name = "mutated"

	assert.False(t, s.IsAdmin())
	assert.Equal(t, "A", s.User().Name)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "authenticated (profile pending)", AuthenticatedStale.String())
}
