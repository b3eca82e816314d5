// Package tanod is a minimal credential-authentication backend:
// registration, login issuing signed session tokens, OTP-driven password
// reset, and authenticated profile update.
package tanod

import (
	"fmt"
	"time"

	"github.com/lborres/tanod/core"
	"github.com/lborres/tanod/pkg/crypto"
	"github.com/lborres/tanod/services"
)

// interfaces
type (
	UserStore   = core.UserStore
	HTTPAdapter = core.HTTPAdapter
	Notifier    = core.Notifier
	AuthHandler = core.AuthHandler

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	SessionConfig = services.SessionConfig
	AuthService   = services.AuthService

	User      = core.User
	OTP       = core.OTP
	TokenPair = core.TokenPair
)

const (
	defaultBasePath  = "/api/auth"
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewBcrypt            = crypto.NewBcrypt
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = services.DefaultSessionConfig
)

var (
	ErrUserExists          = core.ErrUserExists
	ErrUserNotFound        = core.ErrUserNotFound
	ErrInvalidCredentials  = core.ErrInvalidCredentials
	ErrOTPInvalidOrExpired = core.ErrOTPInvalidOrExpired
)

var (
	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidAuthHeader = core.ErrInvalidAuthHeader
	ErrInvalidToken      = core.ErrInvalidToken
	ErrTokenExpired      = core.ErrTokenExpired
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrInvalidEmail     = core.ErrInvalidEmail
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
	ErrPasswordTooLong  = core.ErrPasswordTooLong
)

var (
	ErrStoreRequired       = core.ErrStoreRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
	ErrSecretRequired      = core.ErrSecretRequired
	ErrSecretTooShort      = core.ErrSecretTooShort
)

type Config struct {
	// Secret signs session tokens. Minimum 32 characters.
	Secret string

	Store core.UserStore

	HTTP core.HTTPAdapter

	// Optional config
	PasswordHasher crypto.PasswordHandler
	SessionConfig  *services.SessionConfig
	OTPTTL         time.Duration
	Notifier       core.Notifier
	BasePath       string

	// ExposeOTP returns reset codes in the HTTP response instead of relying
	// on the Notifier. Dev mode only.
	ExposeOTP bool
}

type Tanod struct {
	Auth     *services.AuthService
	Sessions *services.SessionManager
	BasePath string
}

func New(config Config) (*Tanod, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Store == nil {
		return nil, ErrStoreRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := services.DefaultSessionConfig()
		sessionConfig = &defaults
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewBcrypt()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	sessionManager := services.NewSessionManager(*sessionConfig, []byte(config.Secret))
	otpManager := services.NewOTPManager(config.OTPTTL)

	auth := services.NewAuthService(config.Store, passwordHasher, sessionManager, otpManager, services.AuthServiceOptions{
		Notifier:  config.Notifier,
		ExposeOTP: config.ExposeOTP,
	})

	tanod := &Tanod{
		Auth:     auth,
		Sessions: sessionManager,
		BasePath: basePath,
	}

	if err := config.HTTP.RegisterRoutes(auth, basePath); err != nil {
		return nil, err
	}

	return tanod, nil
}
