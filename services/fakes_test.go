package services

import (
	"context"
	"sync"
	"time"

	"github.com/lborres/tanod/core"
)

// FakeUserStore is a test-only fake implementing core.UserStore. It stores
// users in a map keyed by email and exposes error fields for behavior
// injection.
type FakeUserStore struct {
	mu        sync.RWMutex
	users     map[string]*core.User
	createErr error
	getErr    error
	updateErr error
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{
		users: make(map[string]*core.User),
	}
}

func (f *FakeUserStore) CreateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[u.Email]; ok {
		return core.ErrUserExists
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.Email] = cloneUser(u)
	return nil
}

func (f *FakeUserStore) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (f *FakeUserStore) UpdateUser(ctx context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[u.Email]; !ok {
		return core.ErrUserNotFound
	}

	u.UpdatedAt = time.Now()
	f.users[u.Email] = cloneUser(u)
	return nil
}

// cloneUser copies the record so callers never share pointers with the
// store, mirroring a real round-trip.
func cloneUser(u *core.User) *core.User {
	c := *u
	if u.PendingOTP != nil {
		otp := *u.PendingOTP
		c.PendingOTP = &otp
	}
	return &c
}
