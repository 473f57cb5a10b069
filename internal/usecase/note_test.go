package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/repository"
	"github.com/neeraj476/notes-app/internal/usecase"
)

const (
	ownerID  = "5f2c3a9e-1f4b-4c6d-8e7a-0b1c2d3e4f5a"
	noteID   = "9a8b7c6d-5e4f-4a3b-9c8d-7e6f5a4b3c2d"
	intruder = "11111111-2222-4333-8444-555555555555"
)

// ---- fakes ----

type fakeNoteRepo struct {
	create        func(ctx context.Context, note *domain.Note) (*domain.Note, error)
	findByID      func(ctx context.Context, id, ownerID string) (*domain.Note, error)
	findByOwner   func(ctx context.Context, ownerID string) ([]*domain.Note, error)
	searchByTitle func(ctx context.Context, ownerID, term string) ([]*domain.Note, error)
	updateFields  func(ctx context.Context, id, ownerID string, patch repository.NotePatch) (*domain.Note, error)
	delete        func(ctx context.Context, id, ownerID string) (*domain.Note, error)
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	return r.create(ctx, note)
}

func (r *fakeNoteRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	return r.findByID(ctx, id, ownerID)
}

func (r *fakeNoteRepo) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	return r.findByOwner(ctx, ownerID)
}

func (r *fakeNoteRepo) SearchByTitle(ctx context.Context, ownerID, term string) ([]*domain.Note, error) {
	return r.searchByTitle(ctx, ownerID, term)
}

func (r *fakeNoteRepo) UpdateFields(ctx context.Context, id, ownerID string, patch repository.NotePatch) (*domain.Note, error) {
	return r.updateFields(ctx, id, ownerID, patch)
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	return r.delete(ctx, id, ownerID)
}

// fakeTxManager hands the same fakes to fn; "rollback" is simply fn's
// error propagating.
type fakeTxManager struct {
	users repository.UserRepository
	notes repository.NoteRepository
}

func (m *fakeTxManager) WithinTx(_ context.Context, fn func(users repository.UserRepository, notes repository.NoteRepository) error) error {
	return fn(m.users, m.notes)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newNoteUsecase(users *fakeUserRepo, notes *fakeNoteRepo) *usecase.NoteUsecase {
	return usecase.NewNoteUsecase(&fakeTxManager{users: users, notes: notes}, notes, users, testLogger())
}

// ---- CreateNote ----

func TestCreateNote_AppendsIDToOwnerSet(t *testing.T) {
	var appendedUser, appendedNote string
	notes := &fakeNoteRepo{
		create: func(_ context.Context, note *domain.Note) (*domain.Note, error) {
			created := *note
			created.ID = noteID
			created.Styles = domain.Styles{
				Color:     domain.DefaultColor,
				FontSize:  domain.DefaultFontSize,
				FontStyle: domain.FontStyleNormal,
			}
			return &created, nil
		},
	}
	users := &fakeUserRepo{
		appendNote: func(_ context.Context, userID, nID string) (*domain.User, error) {
			appendedUser, appendedNote = userID, nID
			return &domain.User{ID: userID, NoteIDs: []string{nID}}, nil
		},
	}

	note, err := newNoteUsecase(users, notes).CreateNote(context.Background(), ownerID, "Groceries", "milk")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.ID != noteID {
		t.Errorf("note ID = %q, want %q", note.ID, noteID)
	}
	if note.Styles.Color != "#000000" || note.Styles.FontSize != 16 || note.Styles.FontStyle != "normal" {
		t.Errorf("unexpected default styles: %+v", note.Styles)
	}
	if appendedUser != ownerID || appendedNote != noteID {
		t.Errorf("appended (%q, %q), want (%q, %q)", appendedUser, appendedNote, ownerID, noteID)
	}
}

func TestCreateNote_AppendFailureAbortsCreate(t *testing.T) {
	notes := &fakeNoteRepo{
		create: func(_ context.Context, note *domain.Note) (*domain.Note, error) {
			created := *note
			created.ID = noteID
			return &created, nil
		},
	}
	users := &fakeUserRepo{
		appendNote: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, errors.New("connection reset")
		},
	}

	if _, err := newNoteUsecase(users, notes).CreateNote(context.Background(), ownerID, "Groceries", ""); err == nil {
		t.Fatal("expected error when owner set append fails")
	}
}

// ---- DeleteNote ----

func TestDeleteNote_RemovesIDFromOwnerSet(t *testing.T) {
	var deletedID, deletedOwner string
	notes := &fakeNoteRepo{
		delete: func(_ context.Context, id, owner string) (*domain.Note, error) {
			deletedID, deletedOwner = id, owner
			return &domain.Note{ID: id, OwnerID: owner}, nil
		},
	}
	users := &fakeUserRepo{
		removeNote: func(_ context.Context, userID, _ string) (*domain.User, error) {
			return &domain.User{ID: userID, NoteIDs: []string{}}, nil
		},
	}

	user, err := newNoteUsecase(users, notes).DeleteNote(context.Background(), noteID, ownerID)
	if err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if deletedID != noteID || deletedOwner != ownerID {
		t.Errorf("deleted (%q, %q), want (%q, %q)", deletedID, deletedOwner, noteID, ownerID)
	}
	if len(user.NoteIDs) != 0 {
		t.Errorf("owner still references %v", user.NoteIDs)
	}
}

func TestDeleteNote_ForeignNoteLooksMissing(t *testing.T) {
	removeCalled := false
	notes := &fakeNoteRepo{
		delete: func(_ context.Context, _, _ string) (*domain.Note, error) {
			// owner_id clause filters out a note owned by someone else
			return nil, domain.ErrNoteNotFound
		},
	}
	users := &fakeUserRepo{
		removeNote: func(_ context.Context, _, _ string) (*domain.User, error) {
			removeCalled = true
			return nil, nil
		},
	}

	_, err := newNoteUsecase(users, notes).DeleteNote(context.Background(), noteID, intruder)
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("err = %v, want ErrNoteNotFound", err)
	}
	if removeCalled {
		t.Error("owner set mutated despite failed delete")
	}
}

func TestDeleteNote_MalformedID(t *testing.T) {
	uc := newNoteUsecase(&fakeUserRepo{}, &fakeNoteRepo{})

	_, err := uc.DeleteNote(context.Background(), "not-a-uuid", ownerID)
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("err = %v, want ErrNoteNotFound", err)
	}
}

// ---- GetNote / UpdateNote ----

func TestGetNote_MalformedID(t *testing.T) {
	uc := newNoteUsecase(&fakeUserRepo{}, &fakeNoteRepo{})

	_, err := uc.GetNote(context.Background(), "42", ownerID)
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("err = %v, want ErrNoteNotFound", err)
	}
}

func TestUpdateNote_PassesPatchThrough(t *testing.T) {
	var got repository.NotePatch
	notes := &fakeNoteRepo{
		updateFields: func(_ context.Context, _, _ string, patch repository.NotePatch) (*domain.Note, error) {
			got = patch
			return &domain.Note{ID: noteID}, nil
		},
	}

	title := "Renamed"
	size := 0 // explicit zero must survive the trip
	_, err := newNoteUsecase(&fakeUserRepo{}, notes).UpdateNote(context.Background(), noteID, ownerID,
		repository.NotePatch{Title: &title, FontSize: &size})
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if got.Title == nil || *got.Title != "Renamed" {
		t.Errorf("patch title = %v, want Renamed", got.Title)
	}
	if got.FontSize == nil || *got.FontSize != 0 {
		t.Errorf("patch fontSize = %v, want explicit 0", got.FontSize)
	}
	if got.Content != nil || got.Color != nil || got.FontStyle != nil {
		t.Errorf("unset fields leaked into patch: %+v", got)
	}
}
