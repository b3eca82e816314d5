package core

import "time"

// User represents a registered account.
//
// This is the single persisted record in the system: identity, credential,
// and any pending password-reset state all live on it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	PendingOTP   *OTP      `json:"-"` // nil when no reset is pending
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OTP is a pending password-reset code. Code and ExpiresAt are always set
// together; a user either has both (reset pending) or a nil PendingOTP.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// TokenPair holds the signed session tokens returned on login and refresh.
// Both are self-contained; neither is persisted server-side.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh"`
}
