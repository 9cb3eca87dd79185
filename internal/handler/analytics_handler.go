package handler

import (
	"net/http"
	"time"

	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/pkg/apierror"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, summary, nil)
}

// DailySales accepts optional from/to query params in YYYY-MM-DD form.
func (h *AnalyticsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	var err error

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, apierror.New("BAD_REQUEST", "invalid from date", raw, http.StatusBadRequest))
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, apierror.New("BAD_REQUEST", "invalid to date", raw, http.StatusBadRequest))
			return
		}
		// Include the whole end day.
		to = to.Add(24*time.Hour - time.Second)
	}

	sales, err := h.service.DailySales(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sales, nil)
}
