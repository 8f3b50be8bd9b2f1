package database

import "context"

// TxRunner executes a function atomically with respect to the persistence
// boundary. Repository calls made with the context passed to fn join the
// same transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
