package reconcile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/neeraj476/notes-app/internal/infrastructure/postgres"
	"github.com/neeraj476/notes-app/internal/reconcile"
)

type fakeConsistencyRepo struct {
	orphans    []postgres.Orphan
	findErr    error
	repairErr  error
	repaired   []postgres.Orphan
	pruned     int
	pruneCalls int
}

func (r *fakeConsistencyRepo) FindOrphanedNotes(_ context.Context, _ int) ([]postgres.Orphan, error) {
	return r.orphans, r.findErr
}

func (r *fakeConsistencyRepo) RepairOrphan(_ context.Context, ownerID, noteID string) error {
	if r.repairErr != nil {
		return r.repairErr
	}
	r.repaired = append(r.repaired, postgres.Orphan{NoteID: noteID, OwnerID: ownerID})
	return nil
}

func (r *fakeConsistencyRepo) PruneDanglingIDs(_ context.Context) (int, error) {
	r.pruneCalls++
	return r.pruned, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweep_RepairsEveryOrphan(t *testing.T) {
	repo := &fakeConsistencyRepo{
		orphans: []postgres.Orphan{
			{NoteID: "n1", OwnerID: "u1"},
			{NoteID: "n2", OwnerID: "u2"},
		},
	}
	r := reconcile.NewReconciler(repo, testLogger(), "@every 5m")

	r.Sweep(context.Background())

	if len(repo.repaired) != 2 {
		t.Fatalf("repaired %d orphans, want 2", len(repo.repaired))
	}
	if repo.repaired[0].NoteID != "n1" || repo.repaired[0].OwnerID != "u1" {
		t.Errorf("first repair = %+v", repo.repaired[0])
	}
	if repo.pruneCalls != 1 {
		t.Errorf("prune called %d times, want 1", repo.pruneCalls)
	}
}

func TestSweep_FindFailureSkipsPrune(t *testing.T) {
	repo := &fakeConsistencyRepo{findErr: errors.New("db down")}
	r := reconcile.NewReconciler(repo, testLogger(), "@every 5m")

	r.Sweep(context.Background())

	if repo.pruneCalls != 0 {
		t.Errorf("prune called despite find failure")
	}
}

func TestSweep_RepairFailureContinues(t *testing.T) {
	repo := &fakeConsistencyRepo{
		orphans:   []postgres.Orphan{{NoteID: "n1", OwnerID: "u1"}},
		repairErr: errors.New("conflict"),
	}
	r := reconcile.NewReconciler(repo, testLogger(), "@every 5m")

	r.Sweep(context.Background())

	if repo.pruneCalls != 1 {
		t.Errorf("prune skipped after repair failure, want it to run")
	}
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	r := reconcile.NewReconciler(&fakeConsistencyRepo{}, testLogger(), "not a cron expr")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Start(ctx); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}
