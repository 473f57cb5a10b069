// Package reconcile audits the bidirectional ownership invariant between
// users.note_ids and notes.owner_id. Paired writes are transactional, so
// the sweep should find nothing; anything it does find is logged and
// repaired so a divergence is never silent.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/neeraj476/notes-app/internal/infrastructure/postgres"
	"github.com/neeraj476/notes-app/internal/metrics"
)

const orphanBatchSize = 100

// consistencyRepo is the subset of postgres.ConsistencyRepository the
// reconciler needs.
type consistencyRepo interface {
	FindOrphanedNotes(ctx context.Context, limit int) ([]postgres.Orphan, error)
	RepairOrphan(ctx context.Context, ownerID, noteID string) error
	PruneDanglingIDs(ctx context.Context) (int, error)
}

type Reconciler struct {
	repo     consistencyRepo
	logger   *slog.Logger
	schedule string
}

func NewReconciler(repo consistencyRepo, logger *slog.Logger, schedule string) *Reconciler {
	return &Reconciler{
		repo:     repo,
		logger:   logger.With("component", "reconciler"),
		schedule: schedule,
	}
}

// Start runs sweeps on the configured cron schedule until ctx is done.
func (r *Reconciler) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() { r.Sweep(ctx) }); err != nil {
		return fmt.Errorf("parse reconcile schedule: %w", err)
	}

	c.Start()
	r.logger.Info("reconciler started", "schedule", r.schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("reconciler shut down")
	return nil
}

// Sweep runs one reconciliation pass.
func (r *Reconciler) Sweep(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.ReconcileCycleDuration.Observe(time.Since(start).Seconds())
	}()

	orphans, err := r.repo.FindOrphanedNotes(ctx, orphanBatchSize)
	if err != nil {
		r.logger.ErrorContext(ctx, "find orphaned notes", "error", err)
		return
	}
	for _, o := range orphans {
		if err := r.repo.RepairOrphan(ctx, o.OwnerID, o.NoteID); err != nil {
			r.logger.ErrorContext(ctx, "repair orphaned note",
				"note_id", o.NoteID, "owner_id", o.OwnerID, "error", err)
			continue
		}
		r.logger.WarnContext(ctx, "repaired orphaned note",
			"note_id", o.NoteID, "owner_id", o.OwnerID)
		metrics.ReconcileRepairsTotal.WithLabelValues("orphaned_note").Inc()
	}

	pruned, err := r.repo.PruneDanglingIDs(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "prune dangling note ids", "error", err)
		return
	}
	if pruned > 0 {
		r.logger.WarnContext(ctx, "pruned dangling note ids", "users", pruned)
		metrics.ReconcileRepairsTotal.WithLabelValues("dangling_id").Add(float64(pruned))
	}
}
