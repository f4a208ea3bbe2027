// FilePath: internal/repository/postgres/postgres.aggregate.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/taghub/taghub/internal/database"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
)

// uniqueViolation is the postgres error code raised by the (tag_id, date)
// unique index; it backs the one-rollup-per-tag-per-day invariant across
// concurrent task runs.
const uniqueViolation = pq.ErrorCode("23505")

type AggregateRepo struct {
	PostgresBaseRepo
}

func NewAggregateRepository(db database.DB) (*AggregateRepo, error) {
	repo := &AggregateRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *AggregateRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS daily_aggregates (
			id TEXT PRIMARY KEY,
			tag_id BIGINT NOT NULL REFERENCES tags(id),
			date DATE NOT NULL,
			temperature_min DOUBLE PRECISION,
			temperature_max DOUBLE PRECISION,
			humidity_min DOUBLE PRECISION,
			humidity_max DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_aggregates_tag_date
			ON daily_aggregates(tag_id, date)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize aggregates schema", err)
		}
	}
	return nil
}

func (r *AggregateRepo) Create(ctx context.Context, aggregate *models.DailyAggregate) error {
	query := `
		INSERT INTO daily_aggregates (
			id, tag_id, date, temperature_min, temperature_max,
			humidity_min, humidity_max, created_at
		) VALUES (
			:id, :tag_id, :date, :temperature_min, :temperature_max,
			:humidity_min, :humidity_max, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, aggregate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return errors.NewConflictError(
				fmt.Sprintf("aggregate already exists for tag %d on %s",
					aggregate.TagID, aggregate.Date.Format("2006-01-02")), err)
		}
		return errors.NewDatabaseError("failed to create aggregate", err)
	}
	return nil
}

func (r *AggregateRepo) Exists(ctx context.Context, tagID int64, date time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM daily_aggregates WHERE tag_id = $1 AND date = $2)`

	err := r.db.GetDB().GetContext(ctx, &exists, query, tagID, date)
	if err != nil {
		return false, errors.NewDatabaseError("failed to check aggregate existence", err)
	}
	return exists, nil
}

func (r *AggregateRepo) Get(ctx context.Context, tagID int64, date time.Time) (*models.DailyAggregate, error) {
	aggregate := &models.DailyAggregate{}
	query := `SELECT * FROM daily_aggregates WHERE tag_id = $1 AND date = $2`

	err := r.db.GetDB().GetContext(ctx, aggregate, query, tagID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("aggregate not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get aggregate", err)
	}
	return aggregate, nil
}

func (r *AggregateRepo) List(ctx context.Context, filters models.AggregateFilters) ([]*models.DailyAggregate, error) {
	query := `SELECT * FROM daily_aggregates WHERE 1=1`

	args := []interface{}{}
	if filters.TagID != nil {
		args = append(args, *filters.TagID)
		query += fmt.Sprintf(" AND tag_id = $%d", len(args))
	}
	if filters.DateStart != nil {
		args = append(args, *filters.DateStart)
		query += fmt.Sprintf(" AND date > $%d", len(args))
	}
	if filters.DateEnd != nil {
		args = append(args, *filters.DateEnd)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}

	query += " ORDER BY date DESC, tag_id"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	aggregates := []*models.DailyAggregate{}
	err := r.db.GetDB().SelectContext(ctx, &aggregates, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list aggregates", err)
	}
	return aggregates, nil
}
