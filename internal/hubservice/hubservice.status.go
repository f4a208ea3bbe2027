package hubservice

import (
	"context"
	"fmt"
	"time"

	"github.com/taghub/taghub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// TagStatus is the dashboard view of one tag: its latest reading, the current
// trend directions, and today's extrema so far.
type TagStatus struct {
	Tag              *models.Tag            `json:"tag"`
	LastReading      *models.ReadingWithTag `json:"last_reading"`
	TemperatureTrend int                    `json:"temperature_trend"`
	HumidityTrend    int                    `json:"humidity_trend"`
	TodayTempMin     *float64               `json:"today_temperature_min"`
	TodayTempMax     *float64               `json:"today_temperature_max"`
	TodayHumidityMin *float64               `json:"today_humidity_min"`
	TodayHumidityMax *float64               `json:"today_humidity_max"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

func statusCacheKey(tagID int64) string {
	return fmt.Sprintf("taghub:status:%d", tagID)
}

// GetTagStatus builds the current status view for a tag. Results are served
// from the redis cache when one is configured.
func (s *HubService) GetTagStatus(ctx context.Context, tagID int64) (*TagStatus, error) {
	if s.statusCache != nil {
		cached := &TagStatus{}
		hit, err := s.statusCache.Get(ctx, statusCacheKey(tagID), cached)
		if err != nil {
			nuts.L.Warnf("[HubService] Status cache read failed for tag %d: %v", tagID, err)
		} else if hit {
			return cached, nil
		}
	}

	tag, err := s.Tags.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}

	status := &TagStatus{
		Tag:         tag,
		GeneratedAt: time.Now(),
	}

	readings, err := s.Readings.Query(ctx, models.ReadingFilters{TagID: &tagID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(readings) > 0 {
		status.LastReading = readings[0]
	}

	if status.TemperatureTrend, err = s.Trend(ctx, tagID, models.SensorTemperature); err != nil {
		return nil, err
	}
	if status.HumidityTrend, err = s.Trend(ctx, tagID, models.SensorHumidity); err != nil {
		return nil, err
	}

	dayStart := models.StartOfDay(status.GeneratedAt)
	dayEnd := dayStart.AddDate(0, 0, 1)

	if status.TodayTempMin, err = s.MinOrMax(ctx, models.ExtremumMin, tagID, models.SensorTemperature, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if status.TodayTempMax, err = s.MinOrMax(ctx, models.ExtremumMax, tagID, models.SensorTemperature, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if status.TodayHumidityMin, err = s.MinOrMax(ctx, models.ExtremumMin, tagID, models.SensorHumidity, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if status.TodayHumidityMax, err = s.MinOrMax(ctx, models.ExtremumMax, tagID, models.SensorHumidity, dayStart, dayEnd); err != nil {
		return nil, err
	}

	if s.statusCache != nil {
		if err := s.statusCache.Set(ctx, statusCacheKey(tagID), status); err != nil {
			nuts.L.Warnf("[HubService] Status cache write failed for tag %d: %v", tagID, err)
		}
	}

	return status, nil
}

// invalidateStatus drops the cached status view after new data for a tag
func (s *HubService) invalidateStatus(ctx context.Context, tagID int64) {
	if s.statusCache == nil {
		return
	}
	if err := s.statusCache.Delete(ctx, statusCacheKey(tagID)); err != nil {
		nuts.L.Warnf("[HubService] Status cache invalidation failed for tag %d: %v", tagID, err)
	}
}
