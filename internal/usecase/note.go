package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/metrics"
	"github.com/neeraj476/notes-app/internal/repository"
)

// NoteUsecase coordinates the two stores so that a user's note-id set and
// the set of notes actually owned by that user never diverge after a
// successful operation. Paired writes run in one transaction; reads fold
// ownership into the lookup so "absent" and "not owned" stay
// indistinguishable.
type NoteUsecase struct {
	tx     repository.TxManager
	notes  repository.NoteRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewNoteUsecase(tx repository.TxManager, notes repository.NoteRepository, users repository.UserRepository, logger *slog.Logger) *NoteUsecase {
	return &NoteUsecase{
		tx:     tx,
		notes:  notes,
		users:  users,
		logger: logger.With("component", "note_usecase"),
	}
}

// CreateNote inserts the note and appends its id to the owner's set in a
// single transaction: either both happen or neither does, so no orphaned
// note can be observed.
func (u *NoteUsecase) CreateNote(ctx context.Context, ownerID, title, content string) (*domain.Note, error) {
	var created *domain.Note
	err := u.tx.WithinTx(ctx, func(users repository.UserRepository, notes repository.NoteRepository) error {
		n, err := notes.Create(ctx, &domain.Note{
			OwnerID: ownerID,
			Title:   title,
			Content: content,
		})
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		if _, err := users.AppendNote(ctx, ownerID, n.ID); err != nil {
			u.logger.ErrorContext(ctx, "note insert rolled back: owner set append failed",
				"owner_id", ownerID, "note_id", n.ID, "error", err)
			return fmt.Errorf("append note to owner: %w", err)
		}

		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.NotesCreatedTotal.Inc()
	return created, nil
}

// DeleteNote removes the note and strips its id from the requester's set
// in one transaction. The delete only matches notes owned by the
// requester: a foreign note id answers exactly like a missing one.
func (u *NoteUsecase) DeleteNote(ctx context.Context, noteID, requesterID string) (*domain.User, error) {
	if !validID(noteID) {
		return nil, domain.ErrNoteNotFound
	}

	var owner *domain.User
	err := u.tx.WithinTx(ctx, func(users repository.UserRepository, notes repository.NoteRepository) error {
		if _, err := notes.Delete(ctx, noteID, requesterID); err != nil {
			return err
		}

		updated, err := users.RemoveNote(ctx, requesterID, noteID)
		if err != nil {
			return fmt.Errorf("remove note from owner: %w", err)
		}
		owner = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.NotesDeletedTotal.Inc()
	return owner, nil
}

func (u *NoteUsecase) GetNote(ctx context.Context, noteID, requesterID string) (*domain.Note, error) {
	if !validID(noteID) {
		return nil, domain.ErrNoteNotFound
	}
	return u.notes.FindByID(ctx, noteID, requesterID)
}

func (u *NoteUsecase) ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	return u.notes.FindByOwner(ctx, ownerID)
}

func (u *NoteUsecase) SearchNotes(ctx context.Context, ownerID, term string) ([]*domain.Note, error) {
	return u.notes.SearchByTitle(ctx, ownerID, term)
}

func (u *NoteUsecase) UpdateNote(ctx context.Context, noteID, requesterID string, patch repository.NotePatch) (*domain.Note, error) {
	if !validID(noteID) {
		return nil, domain.ErrNoteNotFound
	}
	return u.notes.UpdateFields(ctx, noteID, requesterID, patch)
}

// validID keeps malformed ids on the not-found path instead of surfacing a
// store error, preserving ownership opacity.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
