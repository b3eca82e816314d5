// Package memory provides an in-memory core.UserStore for development and
// tests. Writes are serialized by a single mutex, which stands in for the
// per-record write ordering a real database gives.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lborres/tanod/core"
)

type Store struct {
	mu    sync.RWMutex
	users map[string]*core.User // keyed by email
}

var _ core.UserStore = (*Store)(nil)

func New() *Store {
	return &Store{
		users: make(map[string]*core.User),
	}
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Existence check and insert happen under the same lock, so two
	// concurrent creates for one email cannot both succeed.
	if _, ok := s.users[u.Email]; ok {
		return core.ErrUserExists
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.Email] = clone(u)
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return clone(u), nil
}

func (s *Store) UpdateUser(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; !ok {
		return core.ErrUserNotFound
	}

	u.UpdatedAt = time.Now()
	s.users[u.Email] = clone(u)
	return nil
}

// clone keeps callers from sharing record pointers with the store.
func clone(u *core.User) *core.User {
	c := *u
	if u.PendingOTP != nil {
		otp := *u.PendingOTP
		c.PendingOTP = &otp
	}
	return &c
}
