package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopJob(ctx context.Context) (bool, error) {
	return true, nil
}

func TestAdd(t *testing.T) {
	s := New()

	err := s.Add("aggregation", "10 0 * * *", noopJob)
	require.NoError(t, err)

	err = s.Add("retention", "30 0 * * *", noopJob)
	require.NoError(t, err)
}

func TestAdd_RejectsDuplicateName(t *testing.T) {
	s := New()

	require.NoError(t, s.Add("aggregation", "10 0 * * *", noopJob))

	err := s.Add("aggregation", "15 0 * * *", noopJob)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already scheduled")
}

func TestAdd_RejectsBadSpec(t *testing.T) {
	s := New()

	err := s.Add("aggregation", "not a cron spec", noopJob)
	assert.Error(t, err)
}
