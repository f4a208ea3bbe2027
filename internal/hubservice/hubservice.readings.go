package hubservice

import (
	"context"
	"time"

	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SaveReading validates and persists one reading. Temperature and humidity
// are rounded to 2 decimal places. When a voltage is supplied, battery_low is
// derived from the configured threshold and overrides any explicit flag.
func (s *HubService) SaveReading(ctx context.Context, input *models.ReadingInput) (*models.Reading, error) {
	if input.TagID == nil && input.TagExternalID == "" {
		return nil, errors.NewValidationError("tag id or external id is required", nil)
	}
	if input.Datetime.IsZero() {
		return nil, errors.NewValidationError("datetime must be a valid timestamp", nil)
	}

	tag, err := s.resolveTag(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reading := &models.Reading{
		ID:        nuts.NID("rd", 12),
		TagID:     tag.ID,
		Datetime:  input.Datetime,
		CreatedAt: now,
	}

	if input.Temperature != nil {
		v := models.Round2(*input.Temperature)
		reading.Temperature = &v
	}
	if input.Humidity != nil {
		v := models.Round2(*input.Humidity)
		reading.Humidity = &v
	}

	if input.BatteryLow != nil {
		reading.BatteryLow = *input.BatteryLow
	}
	// A reported voltage wins over the explicit flag
	if input.Voltage != nil {
		reading.BatteryLow = *input.Voltage < s.opts.BatteryLowVoltage
	}

	if err := s.Readings.Insert(ctx, reading); err != nil {
		return nil, err
	}

	s.invalidateStatus(ctx, tag.ID)
	return reading, nil
}

func (s *HubService) resolveTag(ctx context.Context, input *models.ReadingInput) (*models.Tag, error) {
	if input.TagID != nil {
		return s.Tags.Get(ctx, *input.TagID)
	}
	return s.Tags.EnsureTag(ctx, input.TagExternalID, input.TagName)
}

// QueryReadings returns readings newest-first, joined with the tag name
func (s *HubService) QueryReadings(ctx context.Context, filters models.ReadingFilters) ([]*models.ReadingWithTag, error) {
	return s.Readings.Query(ctx, filters)
}

// PurgeReadingsBefore deletes all readings strictly before cutoff and returns
// the count of removed rows. Zero and future cutoffs are rejected.
func (s *HubService) PurgeReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errors.NewValidationError("cutoff must be a valid timestamp", nil)
	}
	if cutoff.After(time.Now()) {
		return 0, errors.NewValidationError("cutoff must not be in the future", nil)
	}

	count, err := s.Readings.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	nuts.L.Infof("[HubService] Purged %d readings before %v", count, cutoff)
	return count, nil
}
