// FilePath: internal/repository/postgres/postgres.reading.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/taghub/taghub/internal/database"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type ReadingRepo struct {
	PostgresBaseRepo
}

func NewReadingRepository(db database.DB) (*ReadingRepo, error) {
	repo := &ReadingRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ReadingRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id TEXT PRIMARY KEY,
			tag_id BIGINT NOT NULL REFERENCES tags(id),
			datetime TIMESTAMPTZ NOT NULL,
			temperature DOUBLE PRECISION,
			humidity DOUBLE PRECISION,
			battery_low BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_tag_datetime
			ON readings(tag_id, datetime DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_datetime
			ON readings(datetime)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize readings schema", err)
		}
	}
	return nil
}

// sensorColumns whitelists the sensor kinds against their column names
var sensorColumns = map[models.Sensor]string{
	models.SensorTemperature: "temperature",
	models.SensorHumidity:    "humidity",
}

func (r *ReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	query := `
		INSERT INTO readings (
			id, tag_id, datetime, temperature, humidity, battery_low, created_at
		) VALUES (
			:id, :tag_id, :datetime, :temperature, :humidity, :battery_low, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to insert reading", err)
	}
	return nil
}

// Query returns readings newest-first, each joined with its tag name.
// DateStart and DateEnd are exclusive bounds on datetime.
func (r *ReadingRepo) Query(ctx context.Context, filters models.ReadingFilters) ([]*models.ReadingWithTag, error) {
	query := `
		SELECT r.id, r.tag_id, r.datetime, r.temperature, r.humidity,
			r.battery_low, r.created_at, t.name AS tag_name
		FROM readings r
		JOIN tags t ON t.id = r.tag_id
		WHERE 1=1`

	args := []interface{}{}
	if filters.TagID != nil {
		args = append(args, *filters.TagID)
		query += fmt.Sprintf(" AND r.tag_id = $%d", len(args))
	}
	if filters.DateStart != nil {
		args = append(args, *filters.DateStart)
		query += fmt.Sprintf(" AND r.datetime > $%d", len(args))
	}
	if filters.DateEnd != nil {
		args = append(args, *filters.DateEnd)
		query += fmt.Sprintf(" AND r.datetime < $%d", len(args))
	}

	query += " ORDER BY r.datetime DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	readings := []*models.ReadingWithTag{}
	err := r.db.GetDB().SelectContext(ctx, &readings, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to query readings", err)
	}
	return readings, nil
}

func (r *ReadingRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM readings WHERE datetime < $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to delete old readings", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[ReadingRepo] Deleted %d readings before %v", rows, cutoff)
	return rows, nil
}

func (r *ReadingRepo) DistinctDaysBefore(ctx context.Context, boundary time.Time) ([]time.Time, error) {
	days := []time.Time{}
	query := `
		SELECT DISTINCT date_trunc('day', datetime) AS day
		FROM readings
		WHERE datetime < $1
		ORDER BY day`

	err := r.db.GetDB().SelectContext(ctx, &days, query, boundary)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list reading days", err)
	}
	return days, nil
}

// Extremum computes min or max of one sensor for a tag over [start, end).
// Returns nil when no readings carry a value for that sensor in the window.
func (r *ReadingRepo) Extremum(ctx context.Context, kind models.ExtremumKind, tagID int64, sensor models.Sensor, start, end time.Time) (*float64, error) {
	column, ok := sensorColumns[sensor]
	if !ok {
		return nil, errors.NewValidationError("invalid sensor", nil)
	}

	agg := "MIN"
	if kind == models.ExtremumMax {
		agg = "MAX"
	}

	query := fmt.Sprintf(`
		SELECT %s(%s)
		FROM readings
		WHERE tag_id = $1 AND datetime >= $2 AND datetime < $3`, agg, column)

	var value *float64
	err := r.db.GetDB().GetContext(ctx, &value, query, tagID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to compute extremum", err)
	}
	return value, nil
}

func (r *ReadingRepo) LatestValues(ctx context.Context, tagID int64, sensor models.Sensor, limit int) ([]float64, error) {
	column, ok := sensorColumns[sensor]
	if !ok {
		return nil, errors.NewValidationError("invalid sensor", nil)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM readings
		WHERE tag_id = $1 AND %s IS NOT NULL
		ORDER BY datetime DESC
		LIMIT $2`, column, column)

	values := []float64{}
	err := r.db.GetDB().SelectContext(ctx, &values, query, tagID, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get latest values", err)
	}
	return values, nil
}
