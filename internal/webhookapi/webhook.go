package webhookapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/statuswatch/internal/statuspage"
)

func (a *API) handleStatuspageWebhook(w http.ResponseWriter, r *http.Request) {
	deliveryID := ulid.Make().String()
	L := a.logger.With("delivery_id", deliveryID)

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "No payload"})
		return
	}

	var payload statuspage.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		L.Warn(r.Context(), "rejecting malformed webhook payload", "err", err.Error())
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
		return
	}

	a.processPayload(w, r, payload, L)
}

// handleTestWebhook synthesizes an incident and runs it through the same
// submit path, for local verification without a real provider.
func (a *API) handleTestWebhook(w http.ResponseWriter, r *http.Request) {
	deliveryID := ulid.Make().String()
	L := a.logger.With("delivery_id", deliveryID, "test", true)
	L.Info(r.Context(), "test webhook received")

	now := a.now()
	payload := statuspage.Payload{
		Incident: statuspage.IncidentPayload{
			ID:        "test_" + now.Format("20060102150405"),
			Name:      "Test Incident - System Check",
			Status:    "investigating",
			CreatedAt: now.Format(time.RFC3339),
			UpdatedAt: now.Format(time.RFC3339),
			Components: []statuspage.ComponentPayload{
				{Name: "Test Service"},
			},
			Updates: []statuspage.UpdatePayload{
				{Body: "This is a test webhook to verify the system is working"},
			},
		},
		Page: statuspage.PagePayload{Name: "OpenAI API"},
	}

	a.processPayload(w, r, payload, L)
}

// processPayload normalizes and submits one delivery, then writes the
// acknowledgment. Normalization cannot fail, so acceptance only ever runs on
// a well-formed incident.
func (a *API) processPayload(w http.ResponseWriter, r *http.Request, payload statuspage.Payload, L log.Logger) {
	inc := a.normalizer.Normalize(payload)

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("statuswatch.incident.id", inc.ID),
		attribute.String("statuswatch.incident.status", inc.Status),
		attribute.String("statuswatch.provider", inc.Provider),
	)

	res, err := a.svc.Submit(r.Context(), inc)
	if err != nil {
		L.Error(r.Context(), err, "failed to process webhook", "incident_id", inc.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	if res.Duplicate {
		span.SetAttributes(attribute.Bool("statuswatch.duplicate", true))
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "duplicate",
			"message": "Already processed this update",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"incident_id": res.Incident.ID,
		"message":     "Incident processed",
	})
}
