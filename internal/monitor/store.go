package monitor

import "context"

// Store is the persistence interface for the dedup engine.
//
// Both the seen-identity set and the latest-by-id map grow without bound for
// the process lifetime: no eviction, no TTL. Deployments that need bounded
// memory should use the Postgres implementation.
type Store interface {
	// Accept decides novelty and records acceptance in one step. A duplicate
	// identity returns isNew=false with no other mutation: the incident is
	// not promoted into the latest-by-id map even when other fields differ.
	// Otherwise the identity is recorded, the latest-by-id entry for the
	// incident ID is overwritten, and isNew=true is returned. The check and
	// the inserts happen under a single mutual-exclusion domain.
	//
	// Latest-by-id is last-accepted-wins: when updates for one ID arrive out
	// of order, the entry reflects whichever was accepted last, not the
	// chronologically newest updated_at.
	Accept(ctx context.Context, inc *Incident) (isNew bool, err error)

	// List returns every stored incident, ordered by acceptance time.
	List(ctx context.Context) ([]StoredIncident, error)

	// Stats returns current store occupancy.
	Stats(ctx context.Context) (Stats, error)
}
