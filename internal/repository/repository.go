// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/taghub/taghub/internal/models"
)

// TagRepository defines the interface for the tag registry
type TagRepository interface {
	EnsureTag(ctx context.Context, externalID, name string) (*models.Tag, error)
	Get(ctx context.Context, id int64) (*models.Tag, error)
	GetTags(ctx context.Context) ([]*models.Tag, error)
	Rename(ctx context.Context, id int64, name string) error
}

// ReadingRepository defines the interface for raw reading storage
type ReadingRepository interface {
	Insert(ctx context.Context, reading *models.Reading) error
	Query(ctx context.Context, filters models.ReadingFilters) ([]*models.ReadingWithTag, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// DistinctDaysBefore returns the midnight-normalized set of UTC calendar
	// days that have at least one reading strictly before the boundary. The
	// connection pins the session timezone to UTC, so date_trunc buckets in
	// the same zone the callers compute their boundaries in.
	DistinctDaysBefore(ctx context.Context, boundary time.Time) ([]time.Time, error)
	// Extremum computes min or max of one sensor for a tag over [start, end).
	// Returns nil when no readings match.
	Extremum(ctx context.Context, kind models.ExtremumKind, tagID int64, sensor models.Sensor, start, end time.Time) (*float64, error)
	// LatestValues returns up to limit non-null values of one sensor for a tag,
	// newest first.
	LatestValues(ctx context.Context, tagID int64, sensor models.Sensor, limit int) ([]float64, error)
}

// AggregateRepository defines the interface for daily rollup storage
type AggregateRepository interface {
	// Create persists a rollup row. A row for the same (tag_id, date) yields a
	// ConflictError; the unique index enforces this across concurrent runs.
	Create(ctx context.Context, aggregate *models.DailyAggregate) error
	Exists(ctx context.Context, tagID int64, date time.Time) (bool, error)
	Get(ctx context.Context, tagID int64, date time.Time) (*models.DailyAggregate, error)
	List(ctx context.Context, filters models.AggregateFilters) ([]*models.DailyAggregate, error)
}
