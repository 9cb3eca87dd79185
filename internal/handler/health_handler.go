package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one backing dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Status pings every registered dependency and reports per-dependency
// state. Any failing check turns the whole response into a 503 so load
// balancers stop routing here.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	report := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			status = http.StatusServiceUnavailable
			report[name] = "down"
			continue
		}
		report[name] = "up"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: status == http.StatusOK,
		Data:    report,
	})
}
