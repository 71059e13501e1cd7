package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelprices_requests_total",
			Help: "Total number of API requests per company",
		},
		[]string{"company"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fuelprices_request_duration_seconds",
			Help:    "API request duration in seconds per company and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"company", "path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelprices_request_errors_total",
			Help: "Total number of error responses per company, path and code",
		},
		[]string{"company", "path", "code"},
	)

	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelprices_refresh_total",
			Help: "Total number of refresh attempts per company",
		},
		[]string{"company"},
	)

	RefreshErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelprices_refresh_errors_total",
			Help: "Total number of failed refreshes per company",
		},
		[]string{"company"},
	)

	ProductPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fuelprices_product_price",
			Help: "Last successfully fetched price per company and product",
		},
		[]string{"company", "product"},
	)
)

var (
	ScheduledJobLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fuelprices_job_last_run_timestamp",
			Help: "Unix timestamp of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fuelprices_job_last_duration_seconds",
			Help: "Duration of the last completed run for a job",
		},
		[]string{"job"},
	)

	ScheduledJobFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelprices_job_failures_total",
			Help: "Total number of failed executions per job",
		},
		[]string{"job"},
	)
)

// UpdateRefreshMetrics records one company refresh attempt.
func UpdateRefreshMetrics(company string, err error) {
	RefreshTotal.WithLabelValues(company).Inc()
	if err != nil {
		RefreshErrorsTotal.WithLabelValues(company).Inc()
	}
}

// UpdateJobMetrics records the outcome of one background job run.
func UpdateJobMetrics(job string, startedAt time.Time, err error) {
	ScheduledJobLastDurationSeconds.WithLabelValues(job).Set(time.Since(startedAt).Seconds())
	ScheduledJobLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
	if err != nil {
		ScheduledJobFailuresTotal.WithLabelValues(job).Inc()
	}
}
