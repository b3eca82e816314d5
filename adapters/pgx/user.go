package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lborres/tanod/core"
)

// CreateUser inserts the record. The unique index on email is the
// authoritative duplicate check: a violation at write time maps to
// core.ErrUserExists regardless of any earlier advisory lookup.
func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, otp_code, otp_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	code, expiresAt := otpColumns(user.PendingOTP)

	err := a.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, code, expiresAt,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return core.ErrUserExists
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	q := `SELECT id, email, password_hash, name, otp_code, otp_expires_at, created_at, updated_at
		FROM users WHERE email = $1`

	user := &core.User{}
	var code *string
	var expiresAt *time.Time
	err := a.db.QueryRow(ctx, q, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&code, &expiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}

	// The schema constrains otp columns to both-or-neither.
	if code != nil && expiresAt != nil {
		user.PendingOTP = &core.OTP{Code: *code, ExpiresAt: *expiresAt}
	}
	return user, nil
}

// UpdateUser persists the whole record in one statement, so concurrent
// writers are serialized by the row lock.
func (a *Adapter) UpdateUser(ctx context.Context, user *core.User) error {
	q := `UPDATE users
		SET password_hash = $1, name = $2, otp_code = $3, otp_expires_at = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at`

	code, expiresAt := otpColumns(user.PendingOTP)

	err := a.db.QueryRow(ctx, q,
		user.PasswordHash, user.Name, code, expiresAt, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrUserNotFound
		}
		return err
	}
	return nil
}

func otpColumns(otp *core.OTP) (*string, *time.Time) {
	if otp == nil {
		return nil, nil
	}
	return &otp.Code, &otp.ExpiresAt
}
