package core

import "errors"

// Authentication errors
var (
	ErrUserExists          = errors.New("user already exists")       // 400 Bad Request
	ErrUserNotFound        = errors.New("user not found")            // 404 Not Found
	ErrInvalidCredentials  = errors.New("invalid email or password") // 401 Unauthorized
	ErrOTPInvalidOrExpired = errors.New("invalid or expired OTP")    // 400 Bad Request
)

// Token errors
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")                            // 401
	ErrInvalidAuthHeader = errors.New("invalid authorization format, expected 'Bearer <token>'") // 401
	ErrInvalidToken      = errors.New("invalid session token")                                   // 401
	ErrTokenExpired      = errors.New("session token expired")                                   // 401
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")     // 400
	ErrInvalidEmail     = errors.New("invalid email format")  // 400
	ErrPasswordRequired = errors.New("password is required")  // 400
	ErrPasswordTooShort = errors.New("password is too short") // 400
	ErrPasswordTooLong  = errors.New("password is too long")  // 400
	ErrOTPRequired      = errors.New("otp is required")       // 400
	ErrNameRequired     = errors.New("name is required")      // 400
)

// Config errors (server-side configuration)
var (
	ErrStoreRequired       = errors.New("user store is required")   // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required") // 500
	ErrSecretRequired      = errors.New("secret is required")       // 500
	ErrSecretTooShort      = errors.New("secret too short")         // 500
)
