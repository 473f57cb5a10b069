package repository

import (
	"context"

	"github.com/neeraj476/notes-app/internal/domain"
)

// Usecases depend on interfaces, not concrete implementations, so the
// store can be swapped and tests can pass fakes.
type UserRepository interface {
	// Create inserts the user and returns the stored row. A taken email
	// yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail returns the user including its password hash; it is the
	// only read that exposes the hash, and only to the login path.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// AppendNote adds noteID to the user's note-id set and returns the
	// updated user. The mutation is a single atomic statement (never
	// load-mutate-save) and is idempotent: an already-present id is a no-op.
	AppendNote(ctx context.Context, userID, noteID string) (*domain.User, error)

	// RemoveNote strips noteID from the user's note-id set and returns the
	// updated user. Removing an absent id is a no-op success.
	RemoveNote(ctx context.Context, userID, noteID string) (*domain.User, error)
}
