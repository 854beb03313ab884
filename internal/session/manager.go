// Package session owns the bearer token lifecycle of a client: sign-in,
// persistence across restarts, startup validation, refresh and sign-out.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
	"greenjobs/internal/tokenstore"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("not signed in")

// Authenticator is the slice of the API the manager needs.
type Authenticator interface {
	Login(ctx context.Context, creds model.LoginData) (*model.AuthResponse, error)
	Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, role model.Role) (*model.AuthResponse, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error)
}

// RefreshPolicy decides what a failed RefreshUser does to the session.
type RefreshPolicy int

const (
	// RefreshKeepSession surfaces the error and keeps token and user.
	RefreshKeepSession RefreshPolicy = iota
	// RefreshClearOnUnauthorized signs out when the API answers 401 and
	// keeps the session for every other failure.
	RefreshClearOnUnauthorized
)

// Manager performs every session transition. Session-mutating calls are
// serialized: a second call waits until the first one settles.
type Manager struct {
	state  *State
	auth   Authenticator
	store  tokenstore.Store
	logger *log.Logger
	policy RefreshPolicy

	opMu     sync.Mutex
	initOnce sync.Once
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger enables session logging. Tokens are never logged.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithRefreshPolicy overrides the default RefreshKeepSession.
func WithRefreshPolicy(p RefreshPolicy) Option {
	return func(m *Manager) { m.policy = p }
}

// NewManager wires a manager to the state it writes, the API it calls and
// the store the token is persisted in.
func NewManager(state *State, auth Authenticator, store tokenstore.Store, opts ...Option) *Manager {
	if store == nil {
		store = tokenstore.NewMemoryStore("")
	}
	m := &Manager{
		state: state,
		auth:  auth,
		store: store,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the state the manager writes.
func (m *Manager) State() *State {
	return m.state
}

// Initialize validates a persisted token. It runs once per Manager; later
// calls return immediately. A rejected token is removed from memory and
// from the store. Loading is false once it returns.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.opMu.Lock()
		defer m.opMu.Unlock()
		m.state.setLoading(true)
		defer m.state.finishInit()

		if m.state.Token() != "" {
			return
		}
		tok, err := m.store.Load(ctx)
		if err != nil {
			m.logf("[Session] load stored token: %v", err)
			return
		}
		if tok == "" {
			return
		}

		m.state.setPendingToken(tok)
		user, err := m.auth.CurrentUser(ctx)
		if err != nil {
			m.logf("[Session] stored token rejected: %v", err)
			m.state.clear()
			m.clearStore(ctx)
			return
		}
		m.state.setAuthenticated(tok, user)
		m.logf("[Session] restored session user=%s role=%s", user.ID, user.Role())
	})
}

// Login signs in with email and password.
func (m *Manager) Login(ctx context.Context, creds model.LoginData) (*model.User, error) {
	return m.acquire(ctx, "login", func(ctx context.Context) (*model.AuthResponse, error) {
		return m.auth.Login(ctx, creds)
	})
}

// Register creates an account and signs in as it.
func (m *Manager) Register(ctx context.Context, data model.RegisterData) (*model.User, error) {
	return m.acquire(ctx, "register", func(ctx context.Context) (*model.AuthResponse, error) {
		return m.auth.Register(ctx, data)
	})
}

// LoginWithGoogle signs in through the social exchange for role.
func (m *Manager) LoginWithGoogle(ctx context.Context, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("google login: unknown role %q", role)
	}
	return m.acquire(ctx, "google login", func(ctx context.Context) (*model.AuthResponse, error) {
		return m.auth.LoginWithGoogle(ctx, role)
	})
}

// acquire runs a credential exchange and installs its result. On failure
// the session is left as it was and the API error is returned as is.
func (m *Manager) acquire(ctx context.Context, op string, exchange func(context.Context) (*model.AuthResponse, error)) (*model.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.state.setLoading(true)
	defer m.state.setLoading(false)

	resp, err := exchange(ctx)
	if err != nil {
		m.logf("[Session] %s failed: %v", op, err)
		return nil, err
	}

	user := resp.User
	m.state.setAuthenticated(resp.AccessToken, &user)
	if err := m.store.Save(ctx, resp.AccessToken); err != nil {
		m.logf("[Session] persist token after %s: %v", op, err)
	}
	m.logf("[Session] %s ok user=%s role=%s", op, user.ID, user.Role())
	return copyUser(&user), nil
}

// Logout clears token and user and removes the stored token. It waits for
// any in-flight session call so that call cannot sign the user back in.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	m.state.clear()
	m.clearStore(ctx)
	m.logf("[Session] logged out")
}

// RefreshUser refetches the current user. Without a token it does nothing.
// A failure is returned; whether it also signs out depends on the refresh policy.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	if m.state.Token() == "" {
		return nil
	}
	m.state.setLoading(true)
	defer m.state.setLoading(false)

	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		if m.policy == RefreshClearOnUnauthorized && apperrors.IsStatus(err, http.StatusUnauthorized) {
			m.logf("[Session] refresh rejected, signing out: %v", err)
			m.state.clear()
			m.clearStore(ctx)
		} else {
			m.logf("[Session] refresh failed: %v", err)
		}
		return err
	}
	m.state.setUser(user)
	return nil
}

// UpdateProfile sends a partial profile update for the signed-in employee
// and then refetches the user so the local copy matches the server. If the
// refetch fails, the copy returned by the update call is kept and the
// refetch error is returned.
func (m *Manager) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current := m.state.User()
	if m.state.Token() == "" || current == nil {
		return nil, ErrNotAuthenticated
	}
	if current.Role() != model.RoleEmployee {
		return nil, apperrors.ErrEmployeesOnly
	}
	if upd.Empty() {
		return current, nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	updated, err := m.auth.UpdateProfile(ctx, upd)
	if err != nil {
		m.logf("[Session] profile update failed: %v", err)
		return nil, err
	}
	m.state.setUser(updated)

	confirmed, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.logf("[Session] profile refetch failed: %v", err)
		return copyUser(updated), fmt.Errorf("confirm profile update: %w", err)
	}
	m.state.setUser(confirmed)
	return copyUser(confirmed), nil
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logf("[Session] clear stored token: %v", err)
	}
}

func (m *Manager) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf(format, args...)
	}
}

