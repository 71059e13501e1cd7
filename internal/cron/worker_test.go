package cron

import (
	"context"
	"testing"
	"time"

	"github.com/tankstander/fuelprices/internal/fuel"
	"github.com/tankstander/fuelprices/internal/storage"
)

// lockedStorage wraps the in-memory backend with an advisory lock that is
// already held, plus call recording for the job bookkeeping.
type lockedStorage struct {
	*storage.MemoryStorage
	lockFree bool

	acquires int
	releases int
	jobRuns  int
}

func (s *lockedStorage) AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	s.acquires++
	return s.lockFree, nil
}

func (s *lockedStorage) ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	s.releases++
	return true, nil
}

func (s *lockedStorage) UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error {
	s.jobRuns++
	return s.MemoryStorage.UpdateScheduledJob(ctx, name, started, dur, success, errMsg)
}

func emptyRegistry() *fuel.Registry {
	reg := fuel.NewRegistry(fuel.Options{})
	reg.LoadCompanies([]string{"nonexistent"}, nil)
	return reg
}

func TestNextDelay(t *testing.T) {
	fallback := 180 * time.Minute

	if got := nextDelay("", fallback); got != fallback {
		t.Errorf("empty setting = %s, want fallback", got)
	}
	if got := nextDelay("90", fallback); got != 90*time.Minute {
		t.Errorf("minute setting = %s, want 90m", got)
	}
	if got := nextDelay("0", fallback); got != fallback {
		t.Errorf("zero setting = %s, want fallback", got)
	}
	if got := nextDelay("garbage", fallback); got != fallback {
		t.Errorf("bad setting = %s, want fallback", got)
	}

	// A cron expression yields the time until its next tick.
	got := nextDelay("*/5 * * * *", fallback)
	if got <= 0 || got > 5*time.Minute {
		t.Errorf("cron setting = %s, want within (0, 5m]", got)
	}
}

func TestRunOnceRecordsJobOutcome(t *testing.T) {
	st := &lockedStorage{MemoryStorage: storage.NewMemory(), lockFree: true}
	runOnce(context.Background(), emptyRegistry(), st, 0)

	if st.acquires != 1 || st.releases != 1 {
		t.Errorf("advisory lock acquired %d times, released %d times; want 1/1", st.acquires, st.releases)
	}
	if st.jobRuns != 1 {
		t.Errorf("scheduled job booked %d times, want 1", st.jobRuns)
	}
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	st := &lockedStorage{MemoryStorage: storage.NewMemory(), lockFree: false}
	runOnce(context.Background(), emptyRegistry(), st, 0)

	if st.acquires != 1 {
		t.Errorf("advisory lock acquired %d times, want 1", st.acquires)
	}
	if st.releases != 0 {
		t.Errorf("released a lock that was never held")
	}
	if st.jobRuns != 0 {
		t.Errorf("job ran %d times while the lock was held elsewhere, want 0", st.jobRuns)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, emptyRegistry(), storage.NewMemory(), Options{Interval: time.Hour})
	}()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}
