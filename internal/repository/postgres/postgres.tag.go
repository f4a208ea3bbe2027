// FilePath: internal/repository/postgres/postgres.tag.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/taghub/taghub/internal/database"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
)

type TagRepo struct {
	PostgresBaseRepo
}

func NewTagRepository(db database.DB) (*TagRepo, error) {
	repo := &TagRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *TagRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			external_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize tags schema", err)
	}
	return nil
}

// EnsureTag returns the tag for externalID, creating it if unknown. An empty
// name on an existing tag is left untouched.
func (r *TagRepo) EnsureTag(ctx context.Context, externalID, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	query := `
		INSERT INTO tags (external_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE tags.name END,
			updated_at = NOW()
		RETURNING id, external_id, name, created_at, updated_at`

	err := r.db.GetDB().GetContext(ctx, tag, query, externalID, name)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to ensure tag", err)
	}
	return tag, nil
}

func (r *TagRepo) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag := &models.Tag{}
	query := `SELECT * FROM tags WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, tag, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("tag not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get tag", err)
	}
	return tag, nil
}

func (r *TagRepo) GetTags(ctx context.Context) ([]*models.Tag, error) {
	tags := []*models.Tag{}
	query := `SELECT * FROM tags ORDER BY id`

	err := r.db.GetDB().SelectContext(ctx, &tags, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list tags", err)
	}
	return tags, nil
}

func (r *TagRepo) Rename(ctx context.Context, id int64, name string) error {
	query := `UPDATE tags SET name = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.GetDB().ExecContext(ctx, query, name, time.Now(), id)
	if err != nil {
		return errors.NewDatabaseError("failed to rename tag", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("tag not found", nil)
	}

	return nil
}
