package monitor

import "time"

// Incident is a canonical, normalized record of a provider-reported service
// disruption. Immutable once built by the normalizer.
type Incident struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Components    []string `json:"components"`
	LatestMessage string   `json:"latest_message"`
	Provider      string   `json:"provider"`
}

// Identity is the deduplication key for this update: the incident ID and the
// update timestamp joined verbatim. No timestamp normalization happens here;
// two deliveries dedup only when both strings match exactly.
func (i *Incident) Identity() string {
	return i.ID + "_" + i.UpdatedAt
}

// StoredIncident is the latest accepted incident for an ID plus the wall
// clock captured at acceptance.
type StoredIncident struct {
	Incident
	ReceivedAt time.Time `json:"received_at"`
}

// Stats reports store occupancy for the status surface.
type Stats struct {
	// IncidentsTracked is the number of distinct incident IDs recorded.
	IncidentsTracked int `json:"incidents_tracked"`

	// TotalUpdates is the number of distinct identities ever accepted.
	TotalUpdates int `json:"total_updates"`
}
