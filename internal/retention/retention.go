// FilePath: internal/retention/retention.go
package retention

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// ReadingStore is the slice of the reading store the retention task needs
type ReadingStore interface {
	PurgeReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Task enforces the bounded retention window on raw readings. Daily
// aggregates are never touched.
type Task struct {
	store   ReadingStore
	horizon time.Duration
}

// DefaultHorizon is the retention window applied when none is configured
const DefaultHorizon = 7 * 24 * time.Hour

// New creates a new retention Task
func New(store ReadingStore, horizon time.Duration) *Task {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Task{
		store:   store,
		horizon: horizon,
	}
}

// Run deletes all readings older than the retention horizon. Deleting zero
// rows is a normal outcome, not an error. Returns true on completion.
func (t *Task) Run(ctx context.Context) (bool, error) {
	cutoff := time.Now().Add(-t.horizon)

	count, err := t.store.PurgeReadingsBefore(ctx, cutoff)
	if err != nil {
		return false, err
	}

	nuts.L.Infof("[Retention] Removed %d readings older than %v", count, cutoff)
	return true, nil
}
