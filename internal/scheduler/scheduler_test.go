package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_RejectsInvalidSchedule(t *testing.T) {
	s := New()
	defer s.Stop()
	err := s.Add("sweep", "every midnight", func(context.Context) (int64, error) { return 0, nil })
	assert.Error(t, err)
}

func TestAdd_AcceptsDailySchedule(t *testing.T) {
	s := New()
	defer s.Stop()
	require.NoError(t, s.Add("announcement_sweep", "0 0 * * *", func(context.Context) (int64, error) { return 0, nil }))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRun_FailureIsContained(t *testing.T) {
	s := New()
	defer s.Stop()
	var calls atomic.Int32

	fn := func(ctx context.Context) (int64, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("db unavailable")
		}
		return 2, nil
	}

	// A failing run must not stop later ones.
	s.run("announcement_sweep", fn)
	s.run("announcement_sweep", fn)
	assert.EqualValues(t, 2, calls.Load())
}

func TestStop_CancelsJobContext(t *testing.T) {
	s := New()
	s.Start()
	s.Stop()
	assert.ErrorIs(t, s.ctx.Err(), context.Canceled)
}
