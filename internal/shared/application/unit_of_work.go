// Package application holds the helpers command and query handlers share:
// the transactional unit of work and event metadata stamping.
package application

import "context"

// UnitOfWork scopes a set of repository writes to one transaction. Begin
// returns a context carrying the transaction; repositories that find one
// there join it instead of writing directly.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WithUnitOfWork runs fn inside a transaction: commit when fn succeeds,
// roll back and return fn's error otherwise.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}
