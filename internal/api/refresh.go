package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tankstander/fuelprices/internal/fuel"
	"github.com/tankstander/fuelprices/internal/metrics"
	"github.com/tankstander/fuelprices/internal/storage"
)

// RefreshResponse reports the outcome of a refresh run.
type RefreshResponse struct {
	RunID     string          `json:"run_id"`
	Companies []RefreshStatus `json:"companies"`
}

// RefreshStatus is the per-company outcome inside a RefreshResponse.
type RefreshStatus struct {
	Company string `json:"company"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// RegisterRefreshHandler wires POST /refresh and POST /refresh/{company}.
// A refresh here is sequential, like the worker's, but without the pacing
// delay: it is meant for manual or test-driven runs.
func RegisterRefreshHandler(mux *http.ServeMux, reg *fuel.Registry, st storage.Storage) {
	mux.HandleFunc("/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		resp := RefreshResponse{RunID: uuid.New().String()}
		for _, result := range reg.Refresh(r.Context()) {
			metrics.UpdateRefreshMetrics(result.CompanyKey, result.Err)
			resp.Companies = append(resp.Companies, refreshStatus(result))
		}
		publishPrices(r.Context(), reg, st)
		writeJSON(w, resp)
	})

	mux.HandleFunc("/refresh/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		key := strings.ToLower(strings.Trim(strings.TrimPrefix(r.URL.Path, "/refresh/"), "/"))
		c, err := reg.Company(key)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		refreshErr := c.RefreshPrices(r.Context())
		metrics.UpdateRefreshMetrics(key, refreshErr)
		if refreshErr != nil {
			log.Printf("api: refresh %s failed: %v", key, refreshErr)
		}
		publishPrices(r.Context(), reg, st)

		resp := RefreshResponse{RunID: uuid.New().String()}
		resp.Companies = append(resp.Companies, refreshStatus(fuel.RefreshResult{CompanyKey: key, Err: refreshErr}))
		writeJSON(w, resp)
	})
}

func refreshStatus(result fuel.RefreshResult) RefreshStatus {
	status := RefreshStatus{Company: result.CompanyKey, Status: "ok"}
	if result.Err != nil {
		status.Status = "failed"
		status.Error = result.Err.Error()
	}
	return status
}

// publishPrices updates the price gauges and writes one latest-price
// snapshot per company. Snapshot writes are best effort.
func publishPrices(ctx context.Context, reg *fuel.Registry, st storage.Storage) {
	for _, c := range reg.Companies() {
		for _, rec := range c.Records() {
			if rec.Price != nil {
				metrics.ProductPrice.WithLabelValues(rec.CompanyKey, rec.ProductKey).Set(*rec.Price)
			}
		}
		if st == nil {
			continue
		}
		payload, err := json.Marshal(c.Records())
		if err != nil {
			continue
		}
		snap := storage.PriceSnapshot{Company: c.Key(), Payload: payload, FetchedAt: time.Now()}
		if err := st.SavePriceSnapshot(ctx, snap); err != nil {
			log.Printf("api: save snapshot for %s failed: %v", c.Key(), err)
		}
	}
}
