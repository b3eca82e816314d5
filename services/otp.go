package services

import (
	"crypto/subtle"
	"time"

	"github.com/lborres/tanod/core"
	"github.com/lborres/tanod/pkg/crypto"
)

const DefaultOTPTTL = 5 * time.Minute

// OTPManager issues and consumes one-time password-reset codes. It mutates
// the user record in memory only; the caller persists via the store, which
// is the synchronization boundary that sequences concurrent attempts.
type OTPManager struct {
	ttl time.Duration
	now func() time.Time
}

func NewOTPManager(ttl time.Duration) *OTPManager {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPManager{ttl: ttl, now: time.Now}
}

// Issue attaches a fresh code with expiry = now + TTL, overwriting any
// prior pending code. Only one OTP is live per user at a time.
func (m *OTPManager) Issue(user *core.User) (string, error) {
	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}

	user.PendingOTP = &core.OTP{
		Code:      code,
		ExpiresAt: m.now().Add(m.ttl),
	}
	return code, nil
}

// Consume validates the supplied code against the pending one and clears it
// on success so it cannot be reused. On any failure the pending code is left
// intact: a mismatched or expired attempt does not burn the code.
//
// Expiry is strict: now > expiry is expired, now == expiry is still valid.
func (m *OTPManager) Consume(user *core.User, suppliedCode string, now time.Time) error {
	pending := user.PendingOTP
	if pending == nil {
		return core.ErrOTPInvalidOrExpired
	}
	if subtle.ConstantTimeCompare([]byte(suppliedCode), []byte(pending.Code)) != 1 {
		return core.ErrOTPInvalidOrExpired
	}
	if now.After(pending.ExpiresAt) {
		return core.ErrOTPInvalidOrExpired
	}

	user.PendingOTP = nil
	return nil
}
