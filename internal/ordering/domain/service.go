package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidTaskID = errors.New("invalid_prep_task_id")
	ErrNoTasks       = errors.New("no_tasks_to_aggregate")
)

type Service interface {
	// Aggregate computes demand for the given tasks; with no IDs it runs
	// over every open (planned or in-progress) task.
	Aggregate(ctx context.Context, req AggregateRequest) (*DemandSummary, error)
	BySupplier(ctx context.Context, req AggregateRequest) ([]SupplierOrder, error)
	// SnapshotShortfalls persists the current open-task demand; the
	// nightly scheduler calls this.
	SnapshotShortfalls(ctx context.Context) (int, error)
	Snapshots(ctx context.Context, since time.Time) ([]ShortfallSnapshot, error)
}

type AggregateRequest struct {
	TaskIDs []string `json:"task_ids"`
}
