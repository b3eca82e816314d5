package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lborres/tanod/core"
	"github.com/lborres/tanod/pkg/crypto"
)

// AuthService orchestrates the use cases over the store, hasher, OTP
// manager, and session manager. It holds no mutable state of its own; the
// store is the only synchronization boundary.
type AuthService struct {
	store     core.UserStore
	passwords crypto.PasswordHandler
	sessions  *SessionManager
	otp       *OTPManager
	notifier  core.Notifier // optional
	exposeOTP bool
	now       func() time.Time
}

// Ensure AuthService implements AuthHandler
var _ core.AuthHandler = (*AuthService)(nil)

type AuthServiceOptions struct {
	// Notifier, when set, delivers reset codes out-of-band.
	Notifier core.Notifier
	// ExposeOTP returns the reset code in the API response. Dev mode only;
	// production installs a Notifier and leaves this off.
	ExposeOTP bool
}

func NewAuthService(store core.UserStore, passwords crypto.PasswordHandler, sessions *SessionManager, otp *OTPManager, opts AuthServiceOptions) *AuthService {
	return &AuthService{
		store:     store,
		passwords: passwords,
		sessions:  sessions,
		otp:       otp,
		notifier:  opts.Notifier,
		exposeOTP: opts.ExposeOTP,
		now:       time.Now,
	}
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input core.RegisterInput) (*core.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-check; the store's uniqueness constraint is authoritative.
	existing, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	hashed, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &core.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Username,
		PasswordHash: hashed,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return nil, core.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email and password and issues a session token
// pair. Unknown email and wrong password both answer ErrInvalidCredentials;
// the credential path never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, input core.LoginInput) (*core.LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := s.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	tokens, err := s.sessions.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &core.LoginResult{User: user, Tokens: *tokens}, nil
}

// RequestReset issues a fresh OTP for the user, overwriting any pending
// one, and hands it to the notifier when one is installed. Unlike login,
// this path answers ErrUserNotFound distinctly; the reset flow already
// requires control of the mailbox.
func (s *AuthService) RequestReset(ctx context.Context, input core.ResetRequestInput) (*core.ResetResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	code, err := s.otp.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save otp: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendOTP(ctx, user.Email, code); err != nil {
			return nil, fmt.Errorf("failed to deliver otp: %w", err)
		}
	}

	result := &core.ResetResult{}
	if s.exposeOTP {
		result.Code = code
	}
	return result, nil
}

// UpdatePassword consumes a pending OTP and stores a new password hash. A
// missing user collapses into the same invalid-or-expired answer the code
// checks give, so this endpoint is no account-existence oracle.
func (s *AuthService) UpdatePassword(ctx context.Context, input core.UpdatePasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return core.ErrOTPInvalidOrExpired
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.otp.Consume(user, input.OTP, s.now()); err != nil {
		return err
	}

	hashed, err := s.passwords.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

// Logout acknowledges the end of a session. Tokens are self-contained, so
// there is nothing to revoke server-side; the token stays valid until its
// encoded expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if _, err := s.sessions.Validate(token); err != nil {
		return err
	}
	return nil
}

// UpdateProfile mutates the display name of the authenticated user.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, input core.UpdateProfileInput) (*core.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Name = input.Name

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*core.TokenPair, error) {
	return s.sessions.Refresh(refreshToken)
}

// ValidateAccess verifies an access token and returns the asserted email.
func (s *AuthService) ValidateAccess(token string) (string, error) {
	return s.sessions.Validate(token)
}
