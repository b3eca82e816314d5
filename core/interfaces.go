package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT
// ============================================

// UserStore defines user-record database operations.
//
// CreateUser must enforce email uniqueness at write time and return
// ErrUserExists on a duplicate; callers may pre-check with GetUserByEmail
// but that check is advisory only.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
}

// ============================================
// NOTIFIER PORT
// ============================================

// Notifier delivers a reset code out-of-band (email, SMS). The delivery
// channel itself is outside this system.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// ============================================
// AUTH HANDLER (for HTTP adapters)
// ============================================

// AuthHandler provides the use-case operations exposed over HTTP.
type AuthHandler interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	RequestReset(ctx context.Context, input ResetRequestInput) (*ResetResult, error)
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) error
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, email string, input UpdateProfileInput) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// ValidateAccess verifies an access token and returns the email it
	// asserts. Used by adapter middleware to guard protected routes.
	ValidateAccess(token string) (string, error)
}

// ============================================
// HTTP PORT
// ============================================

type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath string) error
}

// ============================================
// USE-CASE INPUTS & RESULTS
// ============================================

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User   *User
	Tokens TokenPair
}

type ResetRequestInput struct {
	Email string `json:"email"`
}

// ResetResult carries the issued code back to the caller. Code is empty
// when the server is configured to conceal it (delivery via Notifier only).
type ResetResult struct {
	Code string
}

type UpdatePasswordInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileInput struct {
	Name string `json:"name"`
}

type RefreshInput struct {
	Refresh string `json:"refresh"`
}
