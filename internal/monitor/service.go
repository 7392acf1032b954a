package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/linnemanlabs/go-core/log"
)

// SubmitResult is the outcome of submitting a normalized incident update.
type SubmitResult struct {
	Incident  *Incident
	Duplicate bool
}

// Service is the business boundary for incident processing: it accepts
// normalized incidents, asks the store whether they carry new information,
// and emits the formatted block for genuinely new updates.
type Service struct {
	store   Store
	out     io.Writer
	logger  log.Logger
	metrics *Metrics
}

// NewService creates a new monitor service. The writer receives one formatted
// block per accepted update; stdout in production, a buffer in tests.
func NewService(store Store, out io.Writer, logger log.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Service{
		store:   store,
		out:     out,
		logger:  logger,
		metrics: metrics,
	}
}

// Submit runs one incident update through acceptance. Duplicates are a normal
// outcome, not an error; nothing is emitted for them. Acceptance and emission
// happen synchronously so the caller's acknowledgment reflects reality.
func (s *Service) Submit(ctx context.Context, inc Incident) (*SubmitResult, error) {
	isNew, err := s.store.Accept(ctx, &inc)
	if err != nil {
		s.metrics.SubmitsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("accept incident %s: %w", inc.ID, err)
	}

	if !isNew {
		s.metrics.SubmitsTotal.WithLabelValues("duplicate").Inc()
		s.logger.Info(ctx, "duplicate webhook, skipping",
			"incident_id", inc.ID,
			"updated_at", inc.UpdatedAt,
		)
		return &SubmitResult{Incident: &inc, Duplicate: true}, nil
	}

	block := Format(&inc)
	n, werr := fmt.Fprintf(s.out, "\n%s\n\n", block)
	if werr != nil {
		// The update is already accepted; a broken output sink must not turn
		// the delivery into a failure the provider would redeliver.
		s.logger.Error(ctx, werr, "failed to emit incident block", "incident_id", inc.ID)
	}

	s.metrics.SubmitsTotal.WithLabelValues("accepted").Inc()
	s.metrics.EmitBytes.Observe(float64(n))
	if stats, serr := s.store.Stats(ctx); serr == nil {
		s.metrics.IncidentsTracked.Set(float64(stats.IncidentsTracked))
		s.metrics.UpdatesSeen.Set(float64(stats.TotalUpdates))
	}

	s.logger.Info(ctx, "new incident update",
		"provider", inc.Provider,
		"incident_id", inc.ID,
		"incident", inc.Name,
		"status", inc.Status,
	)

	return &SubmitResult{Incident: &inc}, nil
}

// List returns every stored incident with its acceptance timestamp.
func (s *Service) List(ctx context.Context) ([]StoredIncident, error) {
	return s.store.List(ctx)
}

// Stats returns store occupancy for the status surface.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}
