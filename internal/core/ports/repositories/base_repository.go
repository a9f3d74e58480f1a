package repositories

import "context"

// TransactionManager runs a batch of repository calls as one atomic unit of
// work. Implementations carry the transaction in the context passed to fn,
// so repository methods invoked with that context join the same transaction.
// If fn returns an error the whole unit of work is rolled back; partial
// application is never observable.
type TransactionManager interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}
