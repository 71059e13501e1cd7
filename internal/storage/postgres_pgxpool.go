package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPoolStorage backs the Storage interface with a pgx connection
// pool. It additionally exposes Postgres advisory locks so that in a
// multi-instance deployment only one worker runs the refresh job.
type PostgresPoolStorage struct {
	pool *pgxpool.Pool
}

func OpenPostgresPool(ctx context.Context, dsn string) (*PostgresPoolStorage, error) {
	if dsn == "" {
		dsn = "postgres://localhost:5432/fuelprices?sslmode=disable"
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &PostgresPoolStorage{pool: pool}, nil
}

func (s *PostgresPoolStorage) GetPriceSnapshot(ctx context.Context, company string) (*PriceSnapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT payload, fetched_at
		FROM price_snapshots
		WHERE company = $1
	`, company)

	var payload []byte
	var fetched time.Time
	if err := row.Scan(&payload, &fetched); err != nil {
		return nil, nil
	}
	return &PriceSnapshot{Company: company, Payload: payload, FetchedAt: fetched}, nil
}

func (s *PostgresPoolStorage) SavePriceSnapshot(ctx context.Context, snap PriceSnapshot) error {
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO price_snapshots (company, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (company) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at
	`, snap.Company, snap.Payload, snap.FetchedAt)
	return err
}

func (s *PostgresPoolStorage) ListPriceSnapshots(ctx context.Context) ([]PriceSnapshot, error) {
	rows, err := s.pool.Query(ctx, `SELECT company, payload, fetched_at FROM price_snapshots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PriceSnapshot
	for rows.Next() {
		var snap PriceSnapshot
		if err := rows.Scan(&snap.Company, &snap.Payload, &snap.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *PostgresPoolStorage) GetSetting(ctx context.Context, key string) (string, error) {
	row := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		return "", nil
	}
	return value, nil
}

func (s *PostgresPoolStorage) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}

func (s *PostgresPoolStorage) UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error {
	status := 0
	if success {
		status = 1
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scheduled_jobs (name, last_run_at, last_duration_ms, last_success, last_error)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at,
			last_duration_ms = EXCLUDED.last_duration_ms,
			last_success = EXCLUDED.last_success,
			last_error = EXCLUDED.last_error
	`, name, started, dur.Milliseconds(), status, errMsg)
	return err
}

// AcquireAdvisoryLock attempts a non-blocking session advisory lock.
func (s *PostgresPoolStorage) AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&ok)
	return ok, err
}

func (s *PostgresPoolStorage) ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT pg_advisory_unlock($1)`, key).Scan(&ok)
	return ok, err
}

func (s *PostgresPoolStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresPoolStorage) Close() error {
	s.pool.Close()
	return nil
}
