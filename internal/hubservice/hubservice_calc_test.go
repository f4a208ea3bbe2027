package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/models"
	"github.com/taghub/taghub/internal/testutils"
)

func TestMinOrMax_Validation(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	cases := []struct {
		name   string
		kind   models.ExtremumKind
		tagID  int64
		sensor models.Sensor
		start  time.Time
		end    time.Time
	}{
		{"invalid kind", "median", 1, models.SensorTemperature, start, end},
		{"missing tag id", models.ExtremumMin, 0, models.SensorTemperature, start, end},
		{"invalid sensor", models.ExtremumMin, 1, "pressure", start, end},
		{"missing window start", models.ExtremumMin, 1, models.SensorTemperature, time.Time{}, end},
		{"missing window end", models.ExtremumMin, 1, models.SensorTemperature, start, time.Time{}},
		{"start after end", models.ExtremumMin, 1, models.SensorTemperature, end, start},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			readings := &testutils.MockReadingRepository{}
			svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

			_, err := svc.MinOrMax(context.Background(), tc.kind, tc.tagID, tc.sensor, tc.start, tc.end)

			assert.True(t, errors.IsValidation(err), "expected validation error, got %v", err)
			readings.AssertNotCalled(t, "Extremum",
				mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMinOrMax_DelegatesToStore(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("returns store value", func(t *testing.T) {
		readings := &testutils.MockReadingRepository{}
		svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

		readings.On("Extremum", mock.Anything, models.ExtremumMax, int64(4), models.SensorHumidity, start, end).
			Return(testutils.Float64Ptr(61.2), nil)

		value, err := svc.MinOrMax(context.Background(), models.ExtremumMax, 4, models.SensorHumidity, start, end)

		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, 61.2, *value)
	})

	t.Run("empty window yields nil", func(t *testing.T) {
		readings := &testutils.MockReadingRepository{}
		svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

		readings.On("Extremum", mock.Anything, models.ExtremumMin, int64(4), models.SensorTemperature, start, end).
			Return(nil, nil)

		value, err := svc.MinOrMax(context.Background(), models.ExtremumMin, 4, models.SensorTemperature, start, end)

		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("equal bounds are a valid empty window", func(t *testing.T) {
		readings := &testutils.MockReadingRepository{}
		svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

		readings.On("Extremum", mock.Anything, models.ExtremumMin, int64(4), models.SensorTemperature, start, start).
			Return(nil, nil)

		value, err := svc.MinOrMax(context.Background(), models.ExtremumMin, 4, models.SensorTemperature, start, start)

		require.NoError(t, err)
		assert.Nil(t, value)
	})
}

func TestTrend_Validation(t *testing.T) {
	readings := &testutils.MockReadingRepository{}
	svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

	_, err := svc.Trend(context.Background(), 0, models.SensorTemperature)
	assert.True(t, errors.IsValidation(err))

	_, err = svc.Trend(context.Background(), 1, "pressure")
	assert.True(t, errors.IsValidation(err))

	readings.AssertNotCalled(t, "LatestValues", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTrend_Scenarios(t *testing.T) {
	cases := []struct {
		name   string
		values []float64 // newest first
		want   int
	}{
		{"no readings", []float64{}, 0},
		{"one reading", []float64{20}, 0},
		{"two readings", []float64{20, 10}, 0},
		{"strictly rising", []float64{25, 20, 15}, 1},
		{"strictly falling", []float64{15, 20, 25}, -1},
		{"rising through plateaus", []float64{25, 20, 20, 15, 15, 10}, 1},
		{"falling through plateaus", []float64{10, 15, 15, 20, 20, 25}, -1},
		{"zigzag is flat", []float64{20, 25, 20}, 0},
		{"all equal is flat", []float64{20, 20, 20}, 0},
		{"jitter below 0.1 is flat", []float64{20.04, 20.01, 19.99}, 0},
		{"jitter above 0.1 still trends", []float64{20.3, 20.2, 20.1}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			readings := &testutils.MockReadingRepository{}
			svc := newTestService(&testutils.MockTagRepository{}, readings, &testutils.MockAggregateRepository{})

			readings.On("LatestValues", mock.Anything, int64(1), models.SensorTemperature, mock.AnythingOfType("int")).
				Return(tc.values, nil)

			trend, err := svc.Trend(context.Background(), 1, models.SensorTemperature)

			require.NoError(t, err)
			assert.Equal(t, tc.want, trend)
		})
	}
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, 0, trendDirection(nil))
	assert.Equal(t, 1, trendDirection([]float64{3, 2, 1}))
	assert.Equal(t, -1, trendDirection([]float64{1, 2, 3}))
	assert.Equal(t, 0, trendDirection([]float64{2, 2, 1}))
}

func TestCompressPlateaus(t *testing.T) {
	assert.Equal(t, []float64{25, 20, 15, 10}, compressPlateaus([]float64{25, 20, 20, 15, 15, 10}))
	// Rounding happens before collapsing
	assert.Equal(t, []float64{20}, compressPlateaus([]float64{20.04, 20.01, 19.99}))
	assert.Empty(t, compressPlateaus(nil))
}
