package persistence

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx satisfies pgx.Tx for context plumbing tests; none of its methods
// are ever invoked.
type stubTx struct {
	pgx.Tx
}

func TestPgxTxContext(t *testing.T) {
	t.Run("round-trips the transaction", func(t *testing.T) {
		tx := &stubTx{}
		ctx := WithTx(context.Background(), tx, true)

		info, ok := TxInfoFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, tx, info.Tx)
		assert.True(t, info.Owned)
	})

	t.Run("joined scope is not owned", func(t *testing.T) {
		ctx := WithTx(context.Background(), &stubTx{}, false)

		info, ok := TxInfoFromContext(ctx)
		require.True(t, ok)
		assert.False(t, info.Owned)
	})

	t.Run("empty context has no transaction", func(t *testing.T) {
		_, ok := TxInfoFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil transaction is treated as absent", func(t *testing.T) {
		ctx := WithTx(context.Background(), nil, true)
		_, ok := TxInfoFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestExecutor(t *testing.T) {
	t.Run("prefers the context transaction", func(t *testing.T) {
		tx := &stubTx{}
		ctx := WithTx(context.Background(), tx, true)

		assert.Same(t, tx, Executor(ctx, nil))
	})

	t.Run("falls back to the pool", func(t *testing.T) {
		executor := Executor(context.Background(), nil)
		assert.Nil(t, executor)
	})
}
