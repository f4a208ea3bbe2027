package hubservice

import (
	"context"
	"time"

	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
)

const (
	// trendSamples is the fixed window of the trend heuristic
	trendSamples = 3
	// trendFetchLimit bounds how far back the trend looks for distinct
	// plateaus; sensors reporting a flat line longer than this read as flat
	trendFetchLimit = 12
)

// MinOrMax computes the extremum of one sensor for a tag over the half-open
// window [start, end). Returns nil when no readings match.
func (s *HubService) MinOrMax(ctx context.Context, kind models.ExtremumKind, tagID int64, sensor models.Sensor, start, end time.Time) (*float64, error) {
	if !kind.Valid() {
		return nil, errors.NewValidationError("kind must be min or max", nil)
	}
	if tagID <= 0 {
		return nil, errors.NewValidationError("tag id is required", nil)
	}
	if !sensor.Valid() {
		return nil, errors.NewValidationError("sensor must be temperature or humidity", nil)
	}
	if start.IsZero() || end.IsZero() {
		return nil, errors.NewValidationError("window requires both start and end", nil)
	}
	if start.After(end) {
		return nil, errors.NewValidationError("window start must not be after end", nil)
	}

	return s.Readings.Extremum(ctx, kind, tagID, sensor, start, end)
}

// Trend derives a direction signal from the tag's most recent values of one
// sensor: +1 rising, -1 falling, 0 flat or insufficient data. Values are
// rounded to 1 decimal to suppress jitter, consecutive duplicates collapse
// into one plateau, and the 3 newest plateaus must be strictly monotonic;
// anything else reads as flat.
func (s *HubService) Trend(ctx context.Context, tagID int64, sensor models.Sensor) (int, error) {
	if tagID <= 0 {
		return 0, errors.NewValidationError("tag id is required", nil)
	}
	if !sensor.Valid() {
		return 0, errors.NewValidationError("sensor must be temperature or humidity", nil)
	}

	values, err := s.Readings.LatestValues(ctx, tagID, sensor, trendFetchLimit)
	if err != nil {
		return 0, err
	}

	return trendDirection(values), nil
}

// trendDirection expects values newest-first
func trendDirection(values []float64) int {
	plateaus := compressPlateaus(values)
	if len(plateaus) < trendSamples {
		return 0
	}

	a, b, c := plateaus[0], plateaus[1], plateaus[2]
	switch {
	case a > b && b > c:
		return 1
	case a < b && b < c:
		return -1
	default:
		return 0
	}
}

// compressPlateaus rounds each value to 1 decimal and collapses consecutive
// equal values into a single sample
func compressPlateaus(values []float64) []float64 {
	plateaus := make([]float64, 0, len(values))
	for _, v := range values {
		rounded := models.Round1(v)
		if len(plateaus) > 0 && plateaus[len(plateaus)-1] == rounded {
			continue
		}
		plateaus = append(plateaus, rounded)
	}
	return plateaus
}
