package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrTokenInvalid   = errors.New("token is invalid or expired")
)

type FullName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type User struct {
	ID       string   `json:"id"`
	FullName FullName `json:"fullName"`
	Email    string   `json:"email"`

	// PasswordHash is only populated on the login path and never serialized.
	PasswordHash string `json:"-"`

	// NoteIDs is the denormalized set of notes owned by this user. It must
	// stay a subset of the notes whose OwnerID equals ID; the note usecase
	// keeps the two in sync.
	NoteIDs []string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
