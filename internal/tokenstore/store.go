// Package tokenstore persists the session bearer token under one fixed
// key so that it survives process restarts.
package tokenstore

import (
	"context"
	"fmt"
	"sync"
)

// Key is the name the token is stored under in every backend.
const Key = "access_token"

// Store is durable storage for a single token. Load returns "" with no
// error when nothing is stored. Clear on an empty store is not an error.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Kind names a storage backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindRedis  Kind = "redis"
	KindMySQL  Kind = "mysql"
	KindMemory Kind = "memory"
)

// ParseKind converts a configuration value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindFile, KindRedis, KindMySQL, KindMemory:
		return k, nil
	}
	return "", fmt.Errorf("unknown token store %q", s)
}
