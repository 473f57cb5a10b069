package repository

import "context"

// TxManager runs fn with repositories bound to a single database
// transaction. fn returning an error rolls the transaction back.
//
// The note usecase uses this to pair "insert note" with "append id to the
// owner's set" (and the delete counterpart) so the bidirectional ownership
// invariant cannot be observed half-applied.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(users UserRepository, notes NoteRepository) error) error
}
