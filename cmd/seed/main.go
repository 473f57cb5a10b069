// seed inserts a demo user and a handful of notes into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/neeraj476/notes-app/internal/infrastructure/postgres"
)

const (
	seedEmail    = "demo@notes.local"
	seedPassword = "demo-password"
)

type noteSpec struct {
	title   string
	content string
}

var notes = []noteSpec{
	{"Groceries", "milk, eggs, coffee"},
	{"Team Meeting", "discuss quarterly targets"},
	{"meeting notes", "follow up with design"},
	{"Agenda", "plan next sprint"},
	{"Ideas", ""},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ('Demo', 'User', $1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, spec := range notes {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM notes WHERE owner_id = $1 AND title = $2)`,
			userID, spec.title,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("check note %q: %v", spec.title, err)
		}
		if exists {
			continue
		}

		// Same pairing the API uses: insert the note, then atomically
		// append its id to the owner's set.
		var noteID string
		err = pool.QueryRow(ctx, `
			INSERT INTO notes (owner_id, title, content)
			VALUES ($1, $2, $3)
			RETURNING id`,
			userID, spec.title, spec.content,
		).Scan(&noteID)
		if err != nil {
			log.Fatalf("insert note %q: %v", spec.title, err)
		}

		_, err = pool.Exec(ctx, `
			UPDATE users
			SET note_ids = array_append(note_ids, $2::uuid), updated_at = NOW()
			WHERE id = $1`,
			userID, noteID,
		)
		if err != nil {
			log.Fatalf("append note %q to owner: %v", spec.title, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  Notes:    %d inserted, %d already present\n", inserted, len(notes)-inserted)
}
