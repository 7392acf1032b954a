// Package webhookapi exposes the HTTP surface: webhook ingestion plus the
// incident listing and status read-back endpoints.
package webhookapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/statuswatch/internal/monitor"
	"github.com/linnemanlabs/statuswatch/internal/statuspage"
)

// MonitorService defines the business operations webhookapi needs.
type MonitorService interface {
	Submit(ctx context.Context, inc monitor.Incident) (*monitor.SubmitResult, error)
	List(ctx context.Context) ([]monitor.StoredIncident, error)
	Stats(ctx context.Context) (monitor.Stats, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger     log.Logger
	svc        MonitorService
	normalizer *statuspage.Normalizer
	now        func() time.Time
}

// New creates a new API handler.
func New(logger log.Logger, svc MonitorService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("monitor service is required"))
	}
	return &API{
		logger:     logger,
		svc:        svc,
		normalizer: statuspage.NewNormalizer(nil),
		now:        time.Now,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/statuspage", a.handleStatuspageWebhook)
	r.Post("/webhook/test", a.handleTestWebhook)
	r.Get("/incidents", a.handleListIncidents)
	r.Get("/status", a.handleStatus)
}

func (a *API) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := a.svc.List(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list incidents")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if incidents == nil {
		incidents = []monitor.StoredIncident{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(incidents),
		"incidents": incidents,
	})
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.Stats(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to read store stats")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":            "running",
		"mode":              "event-based (webhooks)",
		"incidents_tracked": stats.IncidentsTracked,
		"total_updates":     stats.TotalUpdates,
		"timestamp":         a.now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
