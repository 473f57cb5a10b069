package domain

import (
	"errors"
	"time"
)

// ErrNoteNotFound covers both "no such note" and "note owned by someone
// else". The two are deliberately indistinguishable so that note IDs of
// other users cannot be probed.
var ErrNoteNotFound = errors.New("note not found")

type FontStyle string

const (
	FontStyleNormal   FontStyle = "normal"
	FontStyleItalic   FontStyle = "italic"
	FontStyleBold     FontStyle = "bold"
	FontStyleSemibold FontStyle = "semibold"
)

const (
	DefaultColor    = "#000000"
	DefaultFontSize = 16
)

type Styles struct {
	Color     string    `json:"color"`
	FontSize  int       `json:"fontSize"`
	FontStyle FontStyle `json:"fontStyle"`
}

type Note struct {
	ID      string `json:"id"`
	OwnerID string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Styles  Styles `json:"styles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
