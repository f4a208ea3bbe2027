// FilePath: internal/models/models.tag.go
package models

import "time"

// Tag represents a physical sensor tag, identified by its hardware address
// and an internal numeric identifier.
type Tag struct {
	ID         int64     `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
