package repository

import "context"

// TxManager runs a function inside a database transaction. The transaction
// is committed when fn returns nil and rolled back otherwise. Repositories
// called with the ctx passed to fn join the same transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
