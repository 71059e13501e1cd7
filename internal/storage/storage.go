package storage

import (
	"context"
	"time"
)

// PriceSnapshot stores the latest published price records for one company as
// an opaque JSON payload. There is exactly one row per company: saving
// replaces the previous snapshot, so no price history accumulates.
type PriceSnapshot struct {
	Company   string    `json:"company" gorm:"primaryKey;column:company"`
	Payload   []byte    `json:"payload" gorm:"column:payload"`
	FetchedAt time.Time `json:"fetched_at" gorm:"column:fetched_at"`
}

// Setting is a small key/value row used for runtime overrides such as the
// worker refresh interval.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// ScheduledJob records the outcome of the last run of a named background job.
type ScheduledJob struct {
	Name           string    `gorm:"primaryKey;column:name"`
	LastRunAt      time.Time `gorm:"column:last_run_at"`
	LastDurationMs int64     `gorm:"column:last_duration_ms"`
	LastSuccess    int       `gorm:"column:last_success"`
	LastError      string    `gorm:"column:last_error"`
}

// Storage abstracts persistence for price snapshots and worker bookkeeping.
type Storage interface {
	// Price snapshots (latest state only).
	GetPriceSnapshot(ctx context.Context, company string) (*PriceSnapshot, error)
	SavePriceSnapshot(ctx context.Context, snap PriceSnapshot) error
	ListPriceSnapshots(ctx context.Context) ([]PriceSnapshot, error)

	// Settings.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Worker bookkeeping.
	UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error

	Ping(ctx context.Context) error
	Close() error
}
