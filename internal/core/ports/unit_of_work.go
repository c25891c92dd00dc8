package ports

import "context"

// UnitOfWorkFactory creates a new unit of work for each business transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork maintains a list of aggregates affected by a business transaction
// and coordinates writing out the changes atomically. Repositories obtained
// from the same unit of work share a single database transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes all tracked changes out in a single transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. After a successful Commit there is no
	// transaction left to abort and implementations report that with an
	// error; callers using the deferred-rollback idiom discard it.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to this unit of work's
	// transaction.
	OrderRepository() OrderRepository
}
