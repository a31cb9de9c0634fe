package state

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// withTx stores a pgx transaction in context for downstream store usage.
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, tx)
}

// txFrom extracts a pgx transaction from context if present.
func txFrom(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}
