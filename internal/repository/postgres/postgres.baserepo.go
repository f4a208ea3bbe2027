package postgres

import (
	"github.com/taghub/taghub/internal/database"
)

// PostgresBaseRepo holds the shared connection handle all repos embed
type PostgresBaseRepo struct {
	db database.DB
}
