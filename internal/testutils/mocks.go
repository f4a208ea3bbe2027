// FilePath: internal/testutils/mocks.go
package testutils

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/taghub/taghub/internal/models"
)

// MockTagRepository is a testify mock of repository.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) EnsureTag(ctx context.Context, externalID, name string) (*models.Tag, error) {
	args := m.Called(ctx, externalID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) Get(ctx context.Context, id int64) (*models.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

func (m *MockTagRepository) GetTags(ctx context.Context) ([]*models.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tag), args.Error(1)
}

func (m *MockTagRepository) Rename(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

// MockReadingRepository is a testify mock of repository.ReadingRepository
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) Insert(ctx context.Context, reading *models.Reading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) Query(ctx context.Context, filters models.ReadingFilters) ([]*models.ReadingWithTag, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReadingWithTag), args.Error(1)
}

func (m *MockReadingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReadingRepository) DistinctDaysBefore(ctx context.Context, boundary time.Time) ([]time.Time, error) {
	args := m.Called(ctx, boundary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockReadingRepository) Extremum(ctx context.Context, kind models.ExtremumKind, tagID int64, sensor models.Sensor, start, end time.Time) (*float64, error) {
	args := m.Called(ctx, kind, tagID, sensor, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockReadingRepository) LatestValues(ctx context.Context, tagID int64, sensor models.Sensor, limit int) ([]float64, error) {
	args := m.Called(ctx, tagID, sensor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

// MockAggregateRepository is a testify mock of repository.AggregateRepository
type MockAggregateRepository struct {
	mock.Mock
}

func (m *MockAggregateRepository) Create(ctx context.Context, aggregate *models.DailyAggregate) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAggregateRepository) Exists(ctx context.Context, tagID int64, date time.Time) (bool, error) {
	args := m.Called(ctx, tagID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockAggregateRepository) Get(ctx context.Context, tagID int64, date time.Time) (*models.DailyAggregate, error) {
	args := m.Called(ctx, tagID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyAggregate), args.Error(1)
}

func (m *MockAggregateRepository) List(ctx context.Context, filters models.AggregateFilters) ([]*models.DailyAggregate, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyAggregate), args.Error(1)
}

// Float64Ptr is a convenience helper for optional sensor values
func Float64Ptr(v float64) *float64 {
	return &v
}
