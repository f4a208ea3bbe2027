// FilePath: internal/aggregation/aggregation.go
package aggregation

import (
	"context"
	"time"

	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
	"github.com/taghub/taghub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDays bounds the fan-out over pending days
const maxConcurrentDays = 4

// Task rolls raw readings up into daily aggregates. Each (tag, day) pair with
// data gets exactly one rollup row; already-aggregated pairs are skipped and
// the current, still-incomplete day is never considered.
type Task struct {
	tags       repository.TagRepository
	readings   repository.ReadingRepository
	aggregates repository.AggregateRepository

	now func() time.Time
}

// New creates a new aggregation Task
func New(
	tags repository.TagRepository,
	readings repository.ReadingRepository,
	aggregates repository.AggregateRepository,
) *Task {
	return &Task{
		tags:       tags,
		readings:   readings,
		aggregates: aggregates,
		now:        time.Now,
	}
}

// Run sweeps all complete days present in the raw readings and aggregates
// every (tag, day) pair that lacks a rollup. Per-unit conflicts, e.g. from a
// concurrently running invocation, are logged and skipped; storage failures
// abort the sweep but leave already-committed rollups in place. Returns true
// on completion, including when there was nothing to do.
func (t *Task) Run(ctx context.Context) (bool, error) {
	// Days are bucketed in UTC, matching the pinned database session zone.
	// Computing the boundary in the process-local zone would let the current,
	// still-incomplete UTC bucket slip past the guard whenever the local zone
	// runs ahead of UTC.
	boundary := models.StartOfDay(t.now().UTC())

	days, err := t.readings.DistinctDaysBefore(ctx, boundary)
	if err != nil {
		return false, err
	}
	if len(days) == 0 {
		nuts.L.Infof("[Aggregation] No complete days with readings, nothing to do")
		return true, nil
	}

	tags, err := t.tags.GetTags(ctx)
	if err != nil {
		return false, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDays)

	for _, day := range days {
		day := models.StartOfDay(day)
		// Defense against stores that hand back days at or past the boundary
		if !day.Before(boundary) {
			continue
		}
		g.Go(func() error {
			return t.aggregateDay(gctx, day, tags)
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	nuts.L.Infof("[Aggregation] Sweep complete over %d days and %d tags", len(days), len(tags))
	return true, nil
}

// aggregateDay computes and persists the rollup of one complete calendar day
// for every tag that has data on that day. The gate is per (tag, day): a
// rollup already present for one tag never suppresses the others.
func (t *Task) aggregateDay(ctx context.Context, day time.Time, tags []*models.Tag) error {
	dayEnd := day.AddDate(0, 0, 1)

	for _, tag := range tags {
		exists, err := t.aggregates.Exists(ctx, tag.ID, day)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		aggregate, err := t.computeAggregate(ctx, tag.ID, day, dayEnd)
		if err != nil {
			return err
		}
		// No data at all for this tag on this day
		if aggregate.Empty() {
			continue
		}

		if err := t.aggregates.Create(ctx, aggregate); err != nil {
			// A concurrent run won the insert race; the rollup exists, so
			// this unit is done.
			if errors.IsConflict(err) {
				nuts.L.Warnf("[Aggregation] Rollup for tag %d on %s already created elsewhere",
					tag.ID, day.Format("2006-01-02"))
				continue
			}
			return err
		}

		nuts.L.Infof("[Aggregation] Created rollup for tag %d on %s",
			tag.ID, day.Format("2006-01-02"))
	}

	return nil
}

func (t *Task) computeAggregate(ctx context.Context, tagID int64, day, dayEnd time.Time) (*models.DailyAggregate, error) {
	aggregate := &models.DailyAggregate{
		ID:        nuts.NID("agg", 12),
		TagID:     tagID,
		Date:      day,
		CreatedAt: time.Now(),
	}

	var err error
	if aggregate.TemperatureMin, err = t.readings.Extremum(ctx, models.ExtremumMin, tagID, models.SensorTemperature, day, dayEnd); err != nil {
		return nil, err
	}
	if aggregate.TemperatureMax, err = t.readings.Extremum(ctx, models.ExtremumMax, tagID, models.SensorTemperature, day, dayEnd); err != nil {
		return nil, err
	}
	if aggregate.HumidityMin, err = t.readings.Extremum(ctx, models.ExtremumMin, tagID, models.SensorHumidity, day, dayEnd); err != nil {
		return nil, err
	}
	if aggregate.HumidityMax, err = t.readings.Extremum(ctx, models.ExtremumMax, tagID, models.SensorHumidity, day, dayEnd); err != nil {
		return nil, err
	}

	return aggregate, nil
}
