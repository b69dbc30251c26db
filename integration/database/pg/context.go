package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/launchpad/core/effect"
)

// Querier is the part of the pgx API shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

type txContextKey struct{}

// WithTx returns a context carrying tx. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext returns the transaction stored by WithTx.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}

// Pool returns the pool provided by the pg preparer.
func Pool(ctx context.Context) (*pgxpool.Pool, bool) {
	return effect.From[*pgxpool.Pool](ctx)
}

// DB returns the transaction in ctx when there is one, otherwise the provided pool.
func DB(ctx context.Context) (Querier, error) {
	if tx, ok := TxFromContext(ctx); ok {
		return tx, nil
	}
	if pool, ok := Pool(ctx); ok && pool != nil {
		return pool, nil
	}
	return nil, ErrNoPool
}

// Check is a readiness check using the pool provided by the pg preparer.
func Check(ctx context.Context) error {
	pool, ok := Pool(ctx)
	if !ok || pool == nil {
		return ErrNoPool
	}
	return Healthcheck(pool)(ctx)
}
