package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation, useful for tests and
// simple single-process deployments.
type MemoryStorage struct {
	mu       sync.RWMutex
	snaps    map[string]PriceSnapshot
	settings map[string]string
	jobs     map[string]ScheduledJob
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		snaps:    make(map[string]PriceSnapshot),
		settings: make(map[string]string),
		jobs:     make(map[string]ScheduledJob),
	}
}

func (m *MemoryStorage) GetPriceSnapshot(ctx context.Context, company string) (*PriceSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[company]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *MemoryStorage) SavePriceSnapshot(ctx context.Context, snap PriceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	m.snaps[snap.Company] = snap
	return nil
}

func (m *MemoryStorage) ListPriceSnapshots(ctx context.Context) ([]PriceSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PriceSnapshot, 0, len(m.snaps))
	for _, snap := range m.snaps {
		out = append(out, snap)
	}
	return out, nil
}

func (m *MemoryStorage) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *MemoryStorage) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MemoryStorage) UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	status := 0
	if success {
		status = 1
	}
	m.jobs[name] = ScheduledJob{
		Name:           name,
		LastRunAt:      started,
		LastDurationMs: dur.Milliseconds(),
		LastSuccess:    status,
		LastError:      errMsg,
	}
	return nil
}

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (m *MemoryStorage) Close() error { return nil }
