package postgres

import (
	"context"
	"fmt"

	"github.com/neeraj476/notes-app/internal/domain"
)

// ConsistencyRepository backs the periodic ownership sweep. It looks for
// the two ways the bidirectional invariant can break: a note missing from
// its owner's note-id set (orphan) and a note-id with no matching note
// (dangling entry).
type ConsistencyRepository struct {
	db querier
}

func NewConsistencyRepository(db querier) *ConsistencyRepository {
	return &ConsistencyRepository{db: db}
}

type Orphan struct {
	NoteID  string
	OwnerID string
}

func (r *ConsistencyRepository) FindOrphanedNotes(ctx context.Context, limit int) ([]Orphan, error) {
	query := `
		SELECT n.id, n.owner_id
		FROM notes n
		JOIN users u ON u.id = n.owner_id
		WHERE NOT (u.note_ids @> ARRAY[n.id])
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("find orphaned notes: %w", err)
	}
	defer rows.Close()

	var orphans []Orphan
	for rows.Next() {
		var o Orphan
		if err := rows.Scan(&o.NoteID, &o.OwnerID); err != nil {
			return nil, fmt.Errorf("scan orphan: %w", err)
		}
		orphans = append(orphans, o)
	}
	return orphans, rows.Err()
}

// RepairOrphan re-appends the note id to its owner's set, idempotently.
func (r *ConsistencyRepository) RepairOrphan(ctx context.Context, ownerID, noteID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET    note_ids = CASE
		           WHEN note_ids @> ARRAY[$2::uuid] THEN note_ids
		           ELSE array_append(note_ids, $2::uuid)
		       END,
		       updated_at = NOW()
		WHERE id = $1`, ownerID, noteID)
	if err != nil {
		return fmt.Errorf("repair orphan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// PruneDanglingIDs strips note-ids that reference no live note from every
// affected user's set. Returns the number of users touched.
func (r *ConsistencyRepository) PruneDanglingIDs(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users u
		SET    note_ids = (
		           SELECT COALESCE(array_agg(nid), '{}')
		           FROM unnest(u.note_ids) AS nid
		           WHERE EXISTS (
		               SELECT 1 FROM notes n WHERE n.id = nid AND n.owner_id = u.id
		           )
		       ),
		       updated_at = NOW()
		WHERE EXISTS (
		    SELECT 1 FROM unnest(u.note_ids) AS nid
		    WHERE NOT EXISTS (
		        SELECT 1 FROM notes n WHERE n.id = nid AND n.owner_id = u.id
		    )
		)`)
	if err != nil {
		return 0, fmt.Errorf("prune dangling ids: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
