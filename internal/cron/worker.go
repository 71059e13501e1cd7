package cron

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tankstander/fuelprices/internal/fuel"
	"github.com/tankstander/fuelprices/internal/metrics"
	"github.com/tankstander/fuelprices/internal/storage"
)

// Options controls the refresh worker.
type Options struct {
	// Interval is the default refresh cadence. The storage setting
	// "refresh_interval" overrides it at runtime; the setting accepts
	// integer minutes or a cron expression.
	Interval time.Duration
	// Pacing is the delay inserted between successive company refreshes so
	// multiple external sites are not hit in a tight loop.
	Pacing time.Duration
	// Immediate triggers a refresh right at startup instead of waiting for
	// the first interval.
	Immediate bool
}

const (
	jobName            = "refresh_prices"
	intervalSettingKey = "refresh_interval"
	advisoryLockKey    = int64(7424)
)

// advisoryLocker is implemented by storage backends that can serialize the
// job across instances. Backends without locks run the job unconditionally.
type advisoryLocker interface {
	AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error)
	ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error)
}

// Run starts the refresh worker: the external caller that owns the "refresh
// every N minutes" cadence the core deliberately does not have. It blocks
// until the context is cancelled.
func Run(ctx context.Context, reg *fuel.Registry, st storage.Storage, opts Options) error {
	if opts.Interval <= 0 {
		opts.Interval = 180 * time.Minute
	}

	intervalSetting := ""
	if st != nil {
		if val, err := st.GetSetting(ctx, intervalSettingKey); err == nil {
			intervalSetting = val
		}
	}

	nextRun := time.Now().Add(nextDelay(intervalSetting, opts.Interval))
	if opts.Immediate {
		nextRun = time.Now()
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Printf("worker: starting, interval=%s setting=%q pacing=%s", opts.Interval, intervalSetting, opts.Pacing)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if st != nil {
				if val, err := st.GetSetting(ctx, intervalSettingKey); err == nil && val != intervalSetting {
					log.Printf("worker: interval setting changed from %q to %q", intervalSetting, val)
					intervalSetting = val
					nextRun = time.Now().Add(nextDelay(intervalSetting, opts.Interval))
				}
			}

			if time.Now().Before(nextRun) {
				continue
			}

			runOnce(ctx, reg, st, opts.Pacing)
			nextRun = time.Now().Add(nextDelay(intervalSetting, opts.Interval))
		}
	}
}

// runOnce executes one refresh cycle under the advisory lock when the
// storage backend provides one.
func runOnce(ctx context.Context, reg *fuel.Registry, st storage.Storage, pacing time.Duration) {
	started := time.Now()

	if locker, ok := st.(advisoryLocker); ok {
		gotLock, err := locker.AcquireAdvisoryLock(ctx, advisoryLockKey)
		if err != nil {
			log.Printf("worker: acquire advisory lock failed: %v", err)
			metrics.UpdateJobMetrics(jobName, started, err)
			return
		}
		if !gotLock {
			log.Printf("worker: advisory lock held by another instance, skipping run")
			return
		}
		defer func() {
			if _, err := locker.ReleaseAdvisoryLock(ctx, advisoryLockKey); err != nil {
				log.Printf("worker: release advisory lock failed: %v", err)
			}
		}()
	}

	var runErr error
	for i, c := range reg.Companies() {
		if i > 0 && pacing > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(pacing):
			}
		}

		err := c.RefreshPrices(ctx)
		metrics.UpdateRefreshMetrics(c.Key(), err)
		if err != nil {
			log.Printf("worker: refresh %s failed: %v", c.Key(), err)
			if runErr == nil {
				runErr = err
			}
			continue
		}
		publishCompany(ctx, st, c)
	}

	metrics.UpdateJobMetrics(jobName, started, runErr)
	dur := time.Since(started)

	if st != nil {
		errMsg := ""
		if runErr != nil {
			errMsg = runErr.Error()
		}
		if err := st.UpdateScheduledJob(ctx, jobName, started, dur, runErr == nil, errMsg); err != nil {
			log.Printf("worker: update scheduled_jobs failed: %v", err)
		}
	}

	if runErr != nil {
		log.Printf("worker: job %s completed with error: %v (duration=%s)", jobName, runErr, dur)
	} else {
		log.Printf("worker: job %s completed successfully (duration=%s)", jobName, dur)
	}
}

// publishCompany updates the price gauges and writes the company's
// latest-price snapshot. Best effort; a storage failure never fails the run.
func publishCompany(ctx context.Context, st storage.Storage, c *fuel.Company) {
	records := c.Records()
	for _, rec := range records {
		if rec.Price != nil {
			metrics.ProductPrice.WithLabelValues(rec.CompanyKey, rec.ProductKey).Set(*rec.Price)
		}
	}

	if st == nil {
		return
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	snap := storage.PriceSnapshot{Company: c.Key(), Payload: payload, FetchedAt: time.Now()}
	if err := st.SavePriceSnapshot(ctx, snap); err != nil {
		log.Printf("worker: save snapshot for %s failed: %v", c.Key(), err)
	}
}

// nextDelay resolves the interval setting: integer minutes, a cron
// expression, or the configured default when the setting is empty or
// invalid.
func nextDelay(setting string, fallback time.Duration) time.Duration {
	if setting == "" {
		return fallback
	}
	if v, err := strconv.Atoi(setting); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	if sched, err := cron.ParseStandard(setting); err == nil {
		return time.Until(sched.Next(time.Now()))
	}
	return fallback
}
