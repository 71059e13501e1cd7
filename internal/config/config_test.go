package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"FUELPRICES_COMPANIES", "FUELPRICES_PRODUCTS",
		"FUELPRICES_UPDATE_INTERVAL_MINUTES", "FUELPRICES_PACING_SECONDS",
		"FUELPRICES_HTTP_TIMEOUT_SECONDS", "FUELPRICES_LISTEN",
		"FUELPRICES_DB_DRIVER", "FUELPRICES_DB_DSN",
		"FUELPRICES_SSOCR_BIN", "FUELPRICES_DATA_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.Companies != nil || cfg.Products != nil {
		t.Errorf("empty subscriptions should be nil, got %v / %v", cfg.Companies, cfg.Products)
	}
	if cfg.UpdateInterval != 180*time.Minute {
		t.Errorf("update interval = %s, want 180m", cfg.UpdateInterval)
	}
	if cfg.PacingDelay != 3*time.Second {
		t.Errorf("pacing = %s, want 3s", cfg.PacingDelay)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("http timeout = %s, want 10s", cfg.HTTPTimeout)
	}
	if cfg.ListenAddr != ":8000" {
		t.Errorf("listen = %q, want :8000", cfg.ListenAddr)
	}
	if cfg.DBDriver != "memory" {
		t.Errorf("db driver = %q, want memory", cfg.DBDriver)
	}
	if cfg.SSOCRBinary != "ssocr" {
		t.Errorf("ssocr binary = %q, want ssocr", cfg.SSOCRBinary)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FUELPRICES_COMPANIES", "ok, shell")
	t.Setenv("FUELPRICES_PRODUCTS", "diesel")
	t.Setenv("FUELPRICES_UPDATE_INTERVAL_MINUTES", "60")
	t.Setenv("FUELPRICES_DB_DRIVER", "sqlite")
	t.Setenv("FUELPRICES_DB_DSN", "/tmp/prices.db")

	cfg := FromEnv()
	if len(cfg.Companies) != 2 || cfg.Companies[0] != "ok" || cfg.Companies[1] != "shell" {
		t.Errorf("companies = %v, want [ok shell]", cfg.Companies)
	}
	if len(cfg.Products) != 1 || cfg.Products[0] != "diesel" {
		t.Errorf("products = %v, want [diesel]", cfg.Products)
	}
	if cfg.UpdateInterval != time.Hour {
		t.Errorf("update interval = %s, want 1h", cfg.UpdateInterval)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "/tmp/prices.db" {
		t.Errorf("db config = %q %q", cfg.DBDriver, cfg.DBDSN)
	}
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("FUELPRICES_UPDATE_INTERVAL_MINUTES", "not-a-number")
	t.Setenv("FUELPRICES_PACING_SECONDS", "-5")

	cfg := FromEnv()
	if cfg.UpdateInterval != 180*time.Minute {
		t.Errorf("update interval = %s, want default 180m", cfg.UpdateInterval)
	}
	if cfg.PacingDelay != 3*time.Second {
		t.Errorf("pacing = %s, want default 3s", cfg.PacingDelay)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"ok", []string{"ok"}},
		{"ok,shell", []string{"ok", "shell"}},
		{" ok , ,shell ", []string{"ok", "shell"}},
	}
	for _, tc := range cases {
		got := splitList(tc.raw)
		if len(got) != len(tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.raw, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("splitList(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		}
	}
}
