// Package memstore provides an in-memory implementation of monitor.Store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/linnemanlabs/statuswatch/internal/monitor"
)

// Store holds the seen-identity set and the latest-by-id map in memory.
// One mutex covers the check-then-insert across both maps; without it two
// concurrent deliveries of the same identity could both be accepted.
type Store struct {
	mu     sync.Mutex
	seen   map[string]struct{}               // identity -> accepted
	latest map[string]monitor.StoredIncident // incident ID -> latest accepted
	now    func() time.Time
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		seen:   make(map[string]struct{}),
		latest: make(map[string]monitor.StoredIncident),
		now:    time.Now,
	}
}

// Accept implements monitor.Store.
func (s *Store) Accept(_ context.Context, inc *monitor.Incident) (bool, error) {
	key := inc.Identity()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seen[key]; dup {
		return false, nil
	}

	s.seen[key] = struct{}{}

	cp := *inc
	cp.Components = append([]string(nil), inc.Components...)
	s.latest[inc.ID] = monitor.StoredIncident{
		Incident:   cp,
		ReceivedAt: s.now(),
	}

	return true, nil
}

// List implements monitor.Store. Entries come back in acceptance order.
func (s *Store) List(_ context.Context) ([]monitor.StoredIncident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]monitor.StoredIncident, 0, len(s.latest))
	for _, si := range s.latest {
		out = append(out, si)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Stats implements monitor.Store.
func (s *Store) Stats(_ context.Context) (monitor.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return monitor.Stats{
		IncidentsTracked: len(s.latest),
		TotalUpdates:     len(s.seen),
	}, nil
}
