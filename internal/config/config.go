package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the host configuration for the fuel price service. The core
// engine itself takes no configuration beyond the subscription lists; the
// rest controls the surrounding daemon (API, worker, storage).
type Config struct {
	// Companies is the subscribed operator keys. Empty means all.
	Companies []string
	// Products is the subscribed product keys. Empty means all.
	Products []string

	// UpdateInterval is the refresh cadence owned by the worker, not the
	// core.
	UpdateInterval time.Duration
	// PacingDelay is the pause between successive company refreshes so the
	// external sites are not hammered in a tight loop.
	PacingDelay time.Duration
	// HTTPTimeout is the per-request timeout at the fetch boundary.
	HTTPTimeout time.Duration

	// ListenAddr is the HTTP API bind address.
	ListenAddr string

	// DBDriver selects the snapshot storage backend: memory, sqlite,
	// postgres or postgrespool.
	DBDriver string
	// DBDSN is the storage DSN or file path.
	DBDSN string

	// SSOCRBinary is the seven-segment OCR executable.
	SSOCRBinary string
	// DataDir is where downloaded price images are stored.
	DataDir string
}

// FromEnv builds a Config from environment variables, with sane defaults.
func FromEnv() Config {
	return Config{
		Companies:      splitList(os.Getenv("FUELPRICES_COMPANIES")),
		Products:       splitList(os.Getenv("FUELPRICES_PRODUCTS")),
		UpdateInterval: time.Duration(envInt("FUELPRICES_UPDATE_INTERVAL_MINUTES", 180)) * time.Minute,
		PacingDelay:    time.Duration(envInt("FUELPRICES_PACING_SECONDS", 3)) * time.Second,
		HTTPTimeout:    time.Duration(envInt("FUELPRICES_HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		ListenAddr:     envString("FUELPRICES_LISTEN", ":8000"),
		DBDriver:       envString("FUELPRICES_DB_DRIVER", "memory"),
		DBDSN:          envString("FUELPRICES_DB_DSN", "fuelprices.db"),
		SSOCRBinary:    envString("FUELPRICES_SSOCR_BIN", "ssocr"),
		DataDir:        envString("FUELPRICES_DATA_DIR", "/data"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

// splitList parses a comma-separated subscription list. An empty value means
// "all", represented as a nil slice.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
