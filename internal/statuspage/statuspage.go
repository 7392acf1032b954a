// Package statuspage defines the Statuspage.io webhook payload shape and the
// normalizer that reduces it to a canonical monitor.Incident.
package statuspage

import (
	"time"

	"github.com/linnemanlabs/statuswatch/internal/monitor"
)

// Default values applied when a payload field is absent.
const (
	DefaultID       = "unknown"
	DefaultName     = "Unknown Incident"
	DefaultStatus   = "unknown"
	DefaultProvider = "OpenAI API"

	// DefaultComponentName fills in for a component with no name.
	DefaultComponentName = "Unknown"
)

// Payload is the decoded body of a Statuspage.io incident webhook.
// Every field is optional; providers routinely omit whole subtrees.
type Payload struct {
	Incident IncidentPayload `json:"incident"`
	Page     PagePayload     `json:"page"`
}

// IncidentPayload is the incident subtree of a webhook delivery.
type IncidentPayload struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
	Components []ComponentPayload `json:"components"`
	Updates    []UpdatePayload    `json:"incident_updates"`
}

// ComponentPayload is one affected component.
type ComponentPayload struct {
	Name string `json:"name"`
}

// UpdatePayload is one incident update entry.
type UpdatePayload struct {
	Body string `json:"body"`
}

// PagePayload identifies the status page that sent the webhook.
type PagePayload struct {
	Name string `json:"name"`
}

// Normalizer converts raw webhook payloads into canonical incidents.
// It is stateless; the clock is injected so callers can pin it in tests.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a Normalizer. A nil clock falls back to time.Now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize reduces a payload to a monitor.Incident. It is a total function:
// every missing field gets a default and no input can make it fail.
func (n *Normalizer) Normalize(p Payload) monitor.Incident {
	inc := p.Incident

	out := monitor.Incident{
		ID:        inc.ID,
		Name:      inc.Name,
		Status:    inc.Status,
		CreatedAt: inc.CreatedAt,
		UpdatedAt: inc.UpdatedAt,
		Provider:  p.Page.Name,
	}

	if out.ID == "" {
		out.ID = DefaultID
	}
	if out.Name == "" {
		out.Name = DefaultName
	}
	if out.Status == "" {
		out.Status = DefaultStatus
	}
	if out.UpdatedAt == "" {
		out.UpdatedAt = n.now().Format(time.RFC3339)
	}
	if out.Provider == "" {
		out.Provider = DefaultProvider
	}

	if len(inc.Components) > 0 {
		out.Components = make([]string, len(inc.Components))
		for i, c := range inc.Components {
			if c.Name == "" {
				out.Components[i] = DefaultComponentName
				continue
			}
			out.Components[i] = c.Name
		}
	}

	// Only the first update is ever consulted, even when later updates carry
	// newer text. An empty updates list behaves like an empty first body.
	// The fallback is the raw incident name, not the defaulted one.
	var body string
	if len(inc.Updates) > 0 {
		body = inc.Updates[0].Body
	}
	if body == "" {
		body = inc.Name
	}
	out.LatestMessage = body

	return out
}
