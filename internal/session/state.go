package session

import (
	"sync"

	"greenjobs/internal/model"
)

// Phase is where the session is in its lifecycle.
type Phase int

const (
	// PhaseUninitialized means the stored token has not been checked yet.
	// Role-gated decisions must wait.
	PhaseUninitialized Phase = iota
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Snapshot is a consistent copy of the session at one instant.
type Snapshot struct {
	Token   string
	User    *model.User
	Loading bool
	Phase   Phase
}

// State is the single current-actor record of a running client. It is
// safe for concurrent reads; only Manager writes it.
type State struct {
	mu          sync.RWMutex
	token       string
	user        *model.User
	loading     bool
	initialized bool
}

// NewState returns a state that is loading and not yet initialized.
func NewState() *State {
	return &State{loading: true}
}

// Token returns the bearer token, or "" when signed out. It makes State
// usable as the request client's token source.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *State) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// Loading reports whether a session decision is pending.
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Phase reports the lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phaseLocked()
}

// Snapshot returns all fields read under one lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Token:   s.token,
		User:    copyUser(s.user),
		Loading: s.loading,
		Phase:   s.phaseLocked(),
	}
}

func (s *State) phaseLocked() Phase {
	if s.token != "" && s.user != nil {
		return PhaseAuthenticated
	}
	if !s.initialized {
		return PhaseUninitialized
	}
	return PhaseAnonymous
}

func (s *State) setAuthenticated(token string, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = copyUser(user)
}

// setPendingToken installs a token that has not been validated yet.
func (s *State) setPendingToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = nil
}

func (s *State) setUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return
	}
	s.user = copyUser(user)
}

func (s *State) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *State) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *State) finishInit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	s.loading = false
}

func copyUser(u *model.User) *model.User {
	return u.Clone()
}
