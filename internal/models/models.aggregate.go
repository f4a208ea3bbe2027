// FilePath: internal/models/models.aggregate.go
package models

import "time"

// DailyAggregate is the min/max rollup of one tag's readings for one calendar
// day. Date carries no time component beyond midnight. At most one row exists
// per (tag_id, date); only the aggregation task creates rows, nothing updates
// or deletes them.
type DailyAggregate struct {
	ID             string    `json:"id" db:"id"`
	TagID          int64     `json:"tag_id" db:"tag_id"`
	Date           time.Time `json:"date" db:"date"`
	TemperatureMin *float64  `json:"temperature_min" db:"temperature_min"`
	TemperatureMax *float64  `json:"temperature_max" db:"temperature_max"`
	HumidityMin    *float64  `json:"humidity_min" db:"humidity_min"`
	HumidityMax    *float64  `json:"humidity_max" db:"humidity_max"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Empty reports whether the rollup holds no data at all. Empty aggregates are
// never persisted.
func (a *DailyAggregate) Empty() bool {
	return a.TemperatureMin == nil && a.TemperatureMax == nil &&
		a.HumidityMin == nil && a.HumidityMax == nil
}
