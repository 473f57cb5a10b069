package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/neeraj476/notes-app/internal/domain"
	"github.com/neeraj476/notes-app/internal/repository"
)

type NoteRepository struct {
	db querier
}

func NewNoteRepository(db querier) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, owner_id, title, content, color, font_size, font_style, created_at, updated_at`

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	// id, styling defaults and timestamps come from the schema.
	query := `
		INSERT INTO notes (owner_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING ` + noteColumns

	return scanNote(r.db.QueryRow(ctx, query, note.OwnerID, note.Title, note.Content))
}

func (r *NoteRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND owner_id = $2`
	return scanNote(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *NoteRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find notes by owner: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

func (r *NoteRepository) SearchByTitle(ctx context.Context, ownerID, term string) ([]*domain.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1 AND title ILIKE '%' || $2 || '%'
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ownerID, escapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// escapeLike neutralizes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func (r *NoteRepository) UpdateFields(ctx context.Context, id, ownerID string, patch repository.NotePatch) (*domain.Note, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id, ownerID}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.FontSize != nil {
		add("font_size", *patch.FontSize)
	}
	if patch.FontStyle != nil {
		add("font_style", string(*patch.FontStyle))
	}

	query := fmt.Sprintf(`
		UPDATE notes
		SET   %s
		WHERE id = $1 AND owner_id = $2
		RETURNING `+noteColumns,
		strings.Join(set, ", "))

	return scanNote(r.db.QueryRow(ctx, query, args...))
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	query := `DELETE FROM notes WHERE id = $1 AND owner_id = $2 RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, id, ownerID))
}

func collectNotes(rows pgx.Rows) ([]*domain.Note, error) {
	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var n domain.Note
	err := row.Scan(
		&n.ID, &n.OwnerID, &n.Title, &n.Content,
		&n.Styles.Color, &n.Styles.FontSize, &n.Styles.FontStyle,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &n, nil
}
