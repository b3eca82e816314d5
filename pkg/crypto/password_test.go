package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testBcrypt() *Bcrypt {
	// Min cost keeps the suite fast; the algorithm is identical.
	return &Bcrypt{Cost: bcrypt.MinCost}
}

func TestBcrypt_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "success", password: "testPassword123", wantErr: false},
		{name: "empty password", password: "", wantErr: false},
		{name: "unicode", password: "パスワード🔐", wantErr: false},
		{name: "special chars", password: "p@ssw0rd!#$%", wantErr: false},
		{name: "null byte", password: "pass\x00word", wantErr: false},
		{name: "over 72 bytes fails", password: strings.Repeat("a", 80), wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := testBcrypt()

			// Act
			hash, err := b.Hash(test.password)

			// Assert
			if (err != nil) != test.wantErr {
				t.Fatalf("Hash() error = %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr {
				if hash == "" {
					t.Error("Hash() returned empty hash")
				}
				if !strings.HasPrefix(hash, "$2") {
					t.Errorf("Hash() should produce a bcrypt modular crypt string, got %q", hash)
				}
				if hash == test.password {
					t.Error("Hash() must not return the plaintext")
				}
			}
		})
	}
}

func TestBcrypt_Hash_UniqueSalts(t *testing.T) {
	// Arrange
	b := testBcrypt()
	password := "samePassword"

	// Act
	hash1, _ := b.Hash(password)
	hash2, _ := b.Hash(password)

	// Assert
	if hash1 == hash2 {
		t.Error("Hash() should generate different hashes with unique salts")
	}
	for _, h := range []string{hash1, hash2} {
		ok, err := b.Verify(password, h)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if !ok {
			t.Error("both hashes of the same password should verify")
		}
	}
}

func TestBcrypt_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", wantOk: true},
		{name: "wrong password", password: "correctPassword", attempt: "wrongPassword", wantOk: false},
		{name: "case sensitive", password: "correctPassword", attempt: "correctpassword", wantOk: false},
		{name: "extra character", password: "correctPassword", attempt: "correctPassword1", wantOk: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			b := testBcrypt()
			hash, _ := b.Hash(test.password)

			// Act
			ok, err := b.Verify(test.attempt, hash)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

// Requirement: a malformed stored hash is a verification failure, never a
// crash or a pass.
func TestPasswordHandlers_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		handler PasswordHandler
		hash    string
	}{
		{name: "bcrypt empty hash", handler: testBcrypt(), hash: ""},
		{name: "bcrypt garbage hash", handler: testBcrypt(), hash: "not-a-hash"},
		{name: "bcrypt truncated hash", handler: testBcrypt(), hash: "$2a$10$short"},
		{name: "argon2 empty hash", handler: NewArgon2(), hash: ""},
		{name: "argon2 garbage hash", handler: NewArgon2(), hash: "not-a-hash"},
		{name: "argon2 wrong algorithm", handler: NewArgon2(), hash: "$argon2i$v=19$m=65536,t=3,p=2$c29tZXNhbHQ$aGFzaA"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Act
			ok, err := test.handler.Verify("anyPassword", test.hash)

			// Assert
			if err != nil {
				t.Fatalf("Verify() with malformed hash should not error, got %v", err)
			}
			if ok {
				t.Error("Verify() with malformed hash must be false")
			}
		})
	}
}

func TestArgon2_HashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", wantOk: true},
		{name: "wrong password", password: "correctPassword", attempt: "wrongPassword", wantOk: false},
		{name: "long password", password: strings.Repeat("a", 128), attempt: strings.Repeat("a", 128), wantOk: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			a := NewArgon2()
			hash, err := a.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Errorf("Hash() should start with $argon2id$, got %q", hash)
			}

			// Act
			ok, err := a.Verify(test.attempt, hash)

			// Assert
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}
