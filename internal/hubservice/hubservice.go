package hubservice

import (
	"github.com/taghub/taghub/internal/cache"
	"github.com/taghub/taghub/internal/errors"
	"github.com/taghub/taghub/internal/repository"
)

// Options holds service-wide tunables
type Options struct {
	// BatteryLowVoltage is the threshold below which a reported voltage marks
	// the reading battery_low.
	BatteryLowVoltage float64
}

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Tags       repository.TagRepository
	Readings   repository.ReadingRepository
	Aggregates repository.AggregateRepository

	statusCache *cache.StatusCache
	opts        Options
}

// New creates a new HubService instance. statusCache may be nil, in which
// case the status view is computed on every request.
func New(
	tags repository.TagRepository,
	readings repository.ReadingRepository,
	aggregates repository.AggregateRepository,
	statusCache *cache.StatusCache,
	opts Options,
) *HubService {
	if opts.BatteryLowVoltage <= 0 {
		opts.BatteryLowVoltage = 2.5
	}
	return &HubService{
		Tags:        tags,
		Readings:    readings,
		Aggregates:  aggregates,
		statusCache: statusCache,
		opts:        opts,
	}
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Tags == nil {
		return ErrMissingRepository("tags")
	}
	if s.Readings == nil {
		return ErrMissingRepository("readings")
	}
	if s.Aggregates == nil {
		return ErrMissingRepository("aggregates")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
