package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxTxKey struct{}

// TxInfo is the pgx counterpart of SQLiteTxInfo.
type TxInfo struct {
	Tx    pgx.Tx
	Owned bool
}

// WithTx returns a context carrying the pgx transaction.
func WithTx(ctx context.Context, tx pgx.Tx, owned bool) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, TxInfo{Tx: tx, Owned: owned})
}

// TxInfoFromContext reports the pgx transaction in the context, if any.
func TxInfoFromContext(ctx context.Context) (TxInfo, bool) {
	info, ok := ctx.Value(pgxTxKey{}).(TxInfo)
	if !ok || info.Tx == nil {
		return TxInfo{}, false
	}
	return info, true
}

// DBExecutor is the querying surface pgxpool.Pool and pgx.Tx have in
// common, so repository methods run unchanged inside or outside a
// transaction.
type DBExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Executor resolves the executor for the context: the transaction when one
// is present, the pool otherwise.
func Executor(ctx context.Context, pool *pgxpool.Pool) DBExecutor {
	if info, ok := TxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return pool
}
