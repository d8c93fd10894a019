package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUnitOfWork records which lifecycle calls happened.
type fakeUnitOfWork struct {
	beginErr   error
	began      bool
	committed  bool
	rolledBack bool
}

type fakeTxKey struct{}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if u.beginErr != nil {
		return nil, u.beginErr
	}
	u.began = true
	return context.WithValue(ctx, fakeTxKey{}, true), nil
}

func (u *fakeUnitOfWork) Commit(ctx context.Context) error {
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback(ctx context.Context) error {
	u.rolledBack = true
	return nil
}

func TestWithUnitOfWork(t *testing.T) {
	t.Run("commits when the function succeeds", func(t *testing.T) {
		uow := &fakeUnitOfWork{}

		var sawTx bool
		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			sawTx = ctx.Value(fakeTxKey{}) != nil
			return nil
		})

		require.NoError(t, err)
		assert.True(t, sawTx)
		assert.True(t, uow.committed)
		assert.False(t, uow.rolledBack)
	})

	t.Run("rolls back and returns the function error", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		boom := errors.New("boom")

		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.True(t, uow.rolledBack)
		assert.False(t, uow.committed)
	})

	t.Run("propagates begin failure without running the function", func(t *testing.T) {
		uow := &fakeUnitOfWork{beginErr: errors.New("no connection")}

		ran := false
		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			ran = true
			return nil
		})

		assert.Error(t, err)
		assert.False(t, ran)
	})
}
