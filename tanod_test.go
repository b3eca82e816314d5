package tanod

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"

	fiberadapter "github.com/lborres/tanod/adapters/fiber"
	"github.com/lborres/tanod/adapters/memory"
	"github.com/lborres/tanod/pkg/crypto"
)

const testSecret = "secretshouldbeatleast32charslong"

func TestNew_ConfigValidation(t *testing.T) {
	store := memory.New()
	adapter := fiberadapter.New(fiber.New())

	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing secret",
			config:  Config{Store: store, HTTP: adapter},
			wantErr: ErrSecretRequired,
		},
		{
			name:    "short secret",
			config:  Config{Secret: "too-short", Store: store, HTTP: adapter},
			wantErr: ErrSecretTooShort,
		},
		{
			name:    "missing store",
			config:  Config{Secret: testSecret, HTTP: adapter},
			wantErr: ErrStoreRequired,
		},
		{
			name:    "missing http adapter",
			config:  Config{Secret: testSecret, Store: store},
			wantErr: ErrHTTPAdapterRequired,
		},
		{
			name:   "valid config with defaults",
			config: Config{Secret: testSecret, Store: store, HTTP: adapter},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Act
			instance, err := New(test.config)

			// Assert
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if instance.Auth == nil || instance.Sessions == nil {
				t.Error("New() should wire the service and session manager")
			}
			if instance.BasePath != "/api/auth" {
				t.Errorf("BasePath = %q, want default /api/auth", instance.BasePath)
			}
		})
	}
}

type scenarioClient struct {
	t   *testing.T
	app *fiber.App
}

func (c *scenarioClient) do(method, path, body, token string) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.app.Test(req)
	if err != nil {
		c.t.Fatalf("app.Test() error = %v", err)
	}
	payload := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &payload)
	return resp.StatusCode, payload
}

// Requirement: the full credential lifecycle over the real wire surface -
// register, login, reset, update password, old credential rejected, new
// credential accepted.
func TestScenario_PasswordResetLifecycle(t *testing.T) {
	// Arrange
	app := fiber.New()
	_, err := New(Config{
		Secret:         testSecret,
		Store:          memory.New(),
		HTTP:           fiberadapter.New(app),
		BasePath:       "/",
		PasswordHasher: &crypto.Bcrypt{Cost: bcrypt.MinCost},
		ExposeOTP:      true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client := &scenarioClient{t: t, app: app}

	// Act & Assert
	status, _ := client.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"password1","username":"Al"}`, "")
	if status != http.StatusOK {
		t.Fatalf("register status = %d, want 200", status)
	}

	status, _ = client.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"password1","username":"Al"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", status)
	}

	status, login := client.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"password1"}`, "")
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	if login["token"] == "" || login["refresh"] == "" {
		t.Fatal("login should return both tokens")
	}
	if login["username"] != "Al" || login["email"] != "a@x.com" {
		t.Errorf("login should echo the profile, got %v", login)
	}

	status, reset := client.do(http.MethodPost, "/reset-password", `{"email":"a@x.com"}`, "")
	if status != http.StatusOK {
		t.Fatalf("reset-password status = %d, want 200", status)
	}
	code, _ := reset["message"].(string)
	if len(code) != 6 {
		t.Fatalf("reset message %q should be a 6-digit code", code)
	}

	status, _ = client.do(http.MethodPost, "/update-password", `{"email":"a@x.com","otp":"`+code+`","new_password":"password2"}`, "")
	if status != http.StatusOK {
		t.Fatalf("update-password status = %d, want 200", status)
	}

	status, _ = client.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"password1"}`, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("login with old password status = %d, want 401", status)
	}

	status, _ = client.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"password2"}`, "")
	if status != http.StatusOK {
		t.Fatalf("login with new password status = %d, want 200", status)
	}
}

func TestScenario_ProfileUpdateAndTokens(t *testing.T) {
	// Arrange
	app := fiber.New()
	store := memory.New()
	_, err := New(Config{
		Secret:         testSecret,
		Store:          store,
		HTTP:           fiberadapter.New(app),
		BasePath:       "/",
		PasswordHasher: &crypto.Bcrypt{Cost: bcrypt.MinCost},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client := &scenarioClient{t: t, app: app}

	status, _ := client.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"password1","username":"Al"}`, "")
	if status != http.StatusOK {
		t.Fatalf("register status = %d, want 200", status)
	}
	status, login := client.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"password1"}`, "")
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	access := login["token"].(string)
	refresh := login["refresh"].(string)

	// Act & Assert: profile update with a valid token
	status, _ = client.do(http.MethodPut, "/update-profile", `{"name":"Alfred"}`, access)
	if status != http.StatusOK {
		t.Fatalf("update-profile status = %d, want 200", status)
	}

	// A refresh token does not authorize protected routes.
	status, _ = client.do(http.MethodPut, "/update-profile", `{"name":"Mallory"}`, refresh)
	if status != http.StatusUnauthorized {
		t.Fatalf("update-profile with refresh token status = %d, want 401", status)
	}

	// Refresh issues a usable new pair.
	status, refreshed := client.do(http.MethodPost, "/refresh", `{"refresh":"`+refresh+`"}`, "")
	if status != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200", status)
	}
	status, _ = client.do(http.MethodPost, "/logout", "", refreshed["token"].(string))
	if status != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", status)
	}
}

// Requirement: an expired session token answers 401 and the store is left
// unmutated.
func TestScenario_ExpiredTokenLeavesStoreUntouched(t *testing.T) {
	// Arrange
	app := fiber.New()
	store := memory.New()
	ttl := DefaultSessionConfig()
	ttl.AccessTTL = -time.Minute
	_, err := New(Config{
		Secret:         testSecret,
		Store:          store,
		HTTP:           fiberadapter.New(app),
		BasePath:       "/",
		PasswordHasher: &crypto.Bcrypt{Cost: bcrypt.MinCost},
		SessionConfig:  &ttl,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client := &scenarioClient{t: t, app: app}

	status, _ := client.do(http.MethodPost, "/register", `{"email":"a@x.com","password":"password1","username":"Al"}`, "")
	if status != http.StatusOK {
		t.Fatalf("register status = %d, want 200", status)
	}
	status, login := client.do(http.MethodPost, "/login", `{"email":"a@x.com","password":"password1"}`, "")
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200", status)
	}
	expired := login["token"].(string)

	// Act
	status, _ = client.do(http.MethodPut, "/update-profile", `{"name":"Mallory"}`, expired)

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("update-profile with expired token status = %d, want 401", status)
	}
	user, err := store.GetUserByEmail(t.Context(), "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if user.Name != "Al" {
		t.Errorf("store should be unmutated, Name = %q", user.Name)
	}
}
