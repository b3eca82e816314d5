package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token use values embedded in the "use" claim. An access token must not be
// accepted for refresh and vice versa.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

var ErrTokenInvalid = errors.New("token is invalid")

// SessionClaims is the claim set carried by every session token: the
// standard registered claims (subject = email, iat, exp) plus the use tag.
type SessionClaims struct {
	TokenUse string `json:"use"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 token asserting subject, valid for ttl.
func SignToken(subject, use string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims. The
// returned error wraps jwt.ErrTokenExpired when the token is stale, so
// callers can distinguish expiry from tampering.
func ParseToken(tokenString string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
