package repository

import (
	"context"

	"github.com/neeraj476/notes-app/internal/domain"
)

// NotePatch is an explicit optional-field patch: nil means "leave as is",
// a non-nil pointer is an explicit new value (so fontSize 0 is expressible).
type NotePatch struct {
	Title     *string
	Content   *string
	Color     *string
	FontSize  *int
	FontStyle *domain.FontStyle
}

// Empty reports whether the patch would change nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil &&
		p.Color == nil && p.FontSize == nil && p.FontStyle == nil
}

type NoteRepository interface {
	// Create inserts the note with store-assigned id, default styles and
	// timestamps, and returns the stored row.
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)

	// FindByID returns the note only if it is owned by ownerID; both a
	// missing and a foreign note yield domain.ErrNoteNotFound.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error)

	// FindByOwner returns all notes of ownerID in insertion order.
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)

	// SearchByTitle returns ownerID's notes whose title contains term,
	// case-insensitively.
	SearchByTitle(ctx context.Context, ownerID, term string) ([]*domain.Note, error)

	// UpdateFields applies the patch only if the note is owned by ownerID;
	// otherwise domain.ErrNoteNotFound.
	UpdateFields(ctx context.Context, id, ownerID string, patch NotePatch) (*domain.Note, error)

	// Delete removes the note only if it is owned by ownerID and returns
	// the deleted row; otherwise domain.ErrNoteNotFound.
	Delete(ctx context.Context, id, ownerID string) (*domain.Note, error)
}
