package models

import "time"

// ReadingFilters defines the available filter options for reading queries.
// All fields are optional; DateStart and DateEnd are exclusive bounds.
type ReadingFilters struct {
	TagID     *int64     `json:"tag_id" schema:"tag_id"`
	DateStart *time.Time `json:"date_start" schema:"date_start"`
	DateEnd   *time.Time `json:"date_end" schema:"date_end"`
	Limit     int        `json:"limit" schema:"limit"`
}

// AggregateFilters defines the available filter options for rollup queries
type AggregateFilters struct {
	TagID     *int64     `json:"tag_id" schema:"tag_id"`
	DateStart *time.Time `json:"date_start" schema:"date_start"`
	DateEnd   *time.Time `json:"date_end" schema:"date_end"`
	Limit     int        `json:"limit" schema:"limit"`
}
