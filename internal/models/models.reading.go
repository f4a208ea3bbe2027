// FilePath: internal/models/models.reading.go
package models

import (
	"math"
	"time"
)

// Sensor identifies which measured quantity an operation refers to
type Sensor string

const (
	SensorTemperature Sensor = "temperature"
	SensorHumidity    Sensor = "humidity"
)

// Valid reports whether s is a known sensor kind
func (s Sensor) Valid() bool {
	return s == SensorTemperature || s == SensorHumidity
}

// ExtremumKind selects min or max for window queries
type ExtremumKind string

const (
	ExtremumMin ExtremumKind = "min"
	ExtremumMax ExtremumKind = "max"
)

// Valid reports whether k is a known extremum kind
func (k ExtremumKind) Valid() bool {
	return k == ExtremumMin || k == ExtremumMax
}

// Reading represents a single timestamped sample from a tag.
// Immutable once written; only the retention task removes rows.
type Reading struct {
	ID          string    `json:"id" db:"id"`
	TagID       int64     `json:"tag_id" db:"tag_id"`
	Datetime    time.Time `json:"datetime" db:"datetime"`
	Temperature *float64  `json:"temperature" db:"temperature"`
	Humidity    *float64  `json:"humidity" db:"humidity"`
	BatteryLow  bool      `json:"battery_low" db:"battery_low"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ReadingWithTag is the query projection joining a reading with its tag name
type ReadingWithTag struct {
	Reading
	TagName string `json:"tag_name" db:"tag_name"`
}

// ReadingInput is the ingestion payload for a single reading. Exactly one of
// TagID or TagExternalID must identify the tag. Voltage, when present, derives
// BatteryLow and overrides the explicit flag.
type ReadingInput struct {
	TagID         *int64    `json:"tag_id"`
	TagExternalID string    `json:"tag_external_id"`
	TagName       string    `json:"tag_name"`
	Datetime      time.Time `json:"datetime"`
	Temperature   *float64  `json:"temperature"`
	Humidity      *float64  `json:"humidity"`
	Voltage       *float64  `json:"voltage"`
	BatteryLow    *bool     `json:"battery_low"`
}

// Round2 rounds a sensor value to 2 decimal places, the stored precision
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, used to suppress jitter in trend inputs
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
