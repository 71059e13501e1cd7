package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tankstander/fuelprices/internal/fuel"
	"github.com/tankstander/fuelprices/internal/metrics"
	"github.com/tankstander/fuelprices/internal/storage"
)

// CompanySummary is the listing entry for one loaded company.
type CompanySummary struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	Source    string   `json:"source"`
	PriceType string   `json:"price_type"`
	Products  []string `json:"products"`
}

// NewMux constructs the HTTP mux, wiring in the price registry, snapshot
// storage, metrics and health endpoints.
func NewMux(reg *fuel.Registry, st storage.Storage) *http.ServeMux {
	mux := http.NewServeMux()

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if st != nil {
			if err := st.Ping(r.Context()); err != nil {
				log.Printf("readyz: storage ping failed: %v", err)
				http.Error(w, "storage not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	// Price API.
	mux.HandleFunc("/prices", handleAllPrices(reg))
	mux.HandleFunc("/companies", handleCompanies(reg))
	mux.HandleFunc("/companies/", handleCompany(reg))

	// Refresh endpoints for manual or cron-triggered refreshes.
	RegisterRefreshHandler(mux, reg, st)

	return mux
}

// handleAllPrices serves the flat per-(company, product) view.
func handleAllPrices(reg *fuel.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reg.Records())
	}
}

// handleCompanies lists the loaded companies.
func handleCompanies(reg *fuel.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies := reg.Companies()
		out := make([]CompanySummary, 0, len(companies))
		for _, c := range companies {
			out = append(out, CompanySummary{
				Key:       c.Key(),
				Name:      c.Name(),
				Source:    c.URL(),
				PriceType: string(c.PriceType()),
				Products:  c.ProductKeys(),
			})
		}
		writeJSON(w, out)
	}
}

// handleCompany serves /companies/{key} and /companies/{key}/products/{product}.
func handleCompany(reg *fuel.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		path := strings.TrimPrefix(r.URL.Path, "/companies/")
		parts := strings.Split(strings.Trim(path, "/"), "/")

		companyKey := strings.ToLower(parts[0])
		labelsPath := "/companies"
		defer func() {
			metrics.RequestDurationSeconds.WithLabelValues(companyKey, labelsPath).Observe(time.Since(start).Seconds())
		}()
		metrics.RequestsTotal.WithLabelValues(companyKey).Inc()

		c, err := reg.Company(companyKey)
		if err != nil {
			metrics.RequestErrorsTotal.WithLabelValues(companyKey, labelsPath, "404").Inc()
			http.NotFound(w, r)
			return
		}

		switch {
		case len(parts) == 1:
			writeJSON(w, c.Records())

		case len(parts) == 3 && parts[1] == "products":
			labelsPath = "/companies/products"
			record, ok := findRecord(c, parts[2])
			if !ok {
				metrics.RequestErrorsTotal.WithLabelValues(companyKey, labelsPath, "404").Inc()
				http.NotFound(w, r)
				return
			}
			writeJSON(w, record)

		default:
			metrics.RequestErrorsTotal.WithLabelValues(companyKey, labelsPath, "404").Inc()
			http.NotFound(w, r)
		}
	}
}

func findRecord(c *fuel.Company, productKey string) (fuel.PriceRecord, bool) {
	if _, err := c.Product(productKey); err != nil {
		if errors.Is(err, fuel.ErrProductNotFound) {
			return fuel.PriceRecord{}, false
		}
	}
	for _, rec := range c.Records() {
		if rec.ProductKey == productKey {
			return rec, true
		}
	}
	return fuel.PriceRecord{}, false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
