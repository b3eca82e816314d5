// Package pgx provides a PostgreSQL core.UserStore backed by a pgx pool.
package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/tanod/core"
)

// Querier is the pool subset the adapter uses. pgxpool.Pool satisfies it,
// and so does a pgxmock pool in tests. Every statement goes through
// QueryRow because each one RETURNINGs the server-side timestamps.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Adapter struct {
	db Querier
}

var (
	_ core.UserStore = (*Adapter)(nil)
	_ Querier        = (*pgxpool.Pool)(nil)
)

func New(db Querier) *Adapter {
	return &Adapter{db: db}
}
