package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lborres/tanod/core"
	"github.com/lborres/tanod/pkg/crypto"
)

type SessionConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// SessionManager issues and validates self-contained session tokens bound
// to a user identity (email). Nothing is persisted; a token stays valid
// until its encoded expiry regardless of logout.
type SessionManager struct {
	config SessionConfig
	secret []byte
}

func NewSessionManager(config SessionConfig, secret []byte) *SessionManager {
	return &SessionManager{config: config, secret: secret}
}

// Issue mints a short-lived access token and a longer-lived refresh token
// for the given identity.
func (sm *SessionManager) Issue(email string) (*core.TokenPair, error) {
	access, err := crypto.SignToken(email, crypto.TokenUseAccess, sm.secret, sm.config.AccessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := crypto.SignToken(email, crypto.TokenUseRefresh, sm.secret, sm.config.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &core.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Validate checks an access token and returns the email it asserts.
func (sm *SessionManager) Validate(token string) (string, error) {
	claims, err := sm.parse(token)
	if err != nil {
		return "", err
	}
	if claims.TokenUse != crypto.TokenUseAccess {
		return "", core.ErrInvalidToken
	}
	return claims.Subject, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. Access
// tokens are rejected here so a leaked short-lived token cannot extend
// itself.
func (sm *SessionManager) Refresh(refreshToken string) (*core.TokenPair, error) {
	claims, err := sm.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != crypto.TokenUseRefresh {
		return nil, core.ErrInvalidToken
	}
	return sm.Issue(claims.Subject)
}

func (sm *SessionManager) parse(token string) (*crypto.SessionClaims, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	claims, err := crypto.ParseToken(token, sm.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, core.ErrInvalidToken
	}
	return claims, nil
}
