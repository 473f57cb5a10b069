package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/neeraj476/notes-app/internal/domain"
)

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, note_ids, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.FullName.FirstName,
		user.FullName.LastName,
		user.Email,
		user.PasswordHash,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindByEmail is the only read that surfaces the password hash; it feeds
// the credential check on login.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, email, note_ids, created_at, updated_at,
		       password_hash
		FROM users WHERE email = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FullName.FirstName, &u.FullName.LastName, &u.Email,
		&u.NoteIDs, &u.CreatedAt, &u.UpdatedAt, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// AppendNote adds noteID to the user's note-id set in one statement.
// The CASE keeps the append idempotent without making "already present"
// indistinguishable from "no such user".
func (r *UserRepository) AppendNote(ctx context.Context, userID, noteID string) (*domain.User, error) {
	query := `
		UPDATE users
		SET    note_ids = CASE
		           WHEN note_ids @> ARRAY[$2::uuid] THEN note_ids
		           ELSE array_append(note_ids, $2::uuid)
		       END,
		       updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, userID, noteID))
}

func (r *UserRepository) RemoveNote(ctx context.Context, userID, noteID string) (*domain.User, error) {
	query := `
		UPDATE users
		SET    note_ids   = array_remove(note_ids, $2::uuid),
		       updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, userID, noteID))
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FullName.FirstName, &u.FullName.LastName, &u.Email,
		&u.NoteIDs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
