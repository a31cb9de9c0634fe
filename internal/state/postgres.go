package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tracechain/pkg/platform/sentinel"
)

// PostgresStore persists state in a single key/value table. Transactions run
// SERIALIZABLE so the uniqueness read and the commit inside one RunInTx see
// one snapshot; the loser of a concurrent creation surfaces ErrConflict.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS tracechain_state (
    address TEXT PRIMARY KEY,
    data    BYTEA NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresStore connects and ensures the state table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Get(ctx context.Context, addresses []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(addresses))
	if len(addresses) == 0 {
		return result, nil
	}
	const q = `SELECT address, data FROM tracechain_state WHERE address = ANY($1)`
	rows, err := s.querier(ctx).Query(ctx, q, addresses)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var addr string
		var data []byte
		if err := rows.Scan(&addr, &data); err != nil {
			return nil, fmt.Errorf("scan state row: %w", err)
		}
		if len(data) > 0 {
			result[addr] = data
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) Set(ctx context.Context, entries map[string][]byte) error {
	q := s.querier(ctx)
	for addr, data := range entries {
		const stmt = `INSERT INTO tracechain_state (address, data) VALUES ($1, $2)`
		if _, err := q.Exec(ctx, stmt, addr, data); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("write state: %w", err)
		}
	}
	return nil
}

// RunInTx executes fn inside a SERIALIZABLE transaction. Serialization
// failures are reported as ErrConflict: the concurrent creation already
// committed the address this transaction was about to take.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(withTx(ctx, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "40001" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// querier returns the in-flight transaction when RunInTx is active, else the
// pool, so reads outside a transaction still work (health checks, tooling).
func (s *PostgresStore) querier(ctx context.Context) querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return s.pool
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
