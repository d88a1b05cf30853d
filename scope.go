package conextaccess

import (
	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// Scoper applies authorization scoping to already-materialized response
// payloads. It is a pure post-processing stage: it annotates and filters,
// never feeds back into the business logic that produced the objects.
type Scoper struct {
	logger  *zap.Logger
	metrics ports.MetricsRecorder
}

// NewScoper creates a scoper. Logger and metrics may be nil.
func NewScoper(logger *zap.Logger, metrics ports.MetricsRecorder) *Scoper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scoper{logger: logger, metrics: metrics}
}

// ScopeOne computes visibility flags and redaction constraints for a single
// service from the principal's authority set, in place.
func (s *Scoper) ScopeOne(svc *domain.Service, authorities domain.Authorities) {
	domain.ScopeService(svc, authorities)
}

// ScopeMany first reduces the collection by the principal's authority set,
// then scopes each surviving service. The input slice is never mutated; the
// surviving elements keep their input order.
func (s *Scoper) ScopeMany(services []domain.Service, authorities domain.Authorities) []domain.Service {
	reduced := domain.ReduceServices(services, authorities)

	if len(reduced) != len(services) {
		s.logger.Debug("reduced service collection for requester",
			zap.Int("before", len(services)),
			zap.Int("after", len(reduced)))
	}
	if s.metrics != nil {
		s.metrics.RecordScopeReduction(len(services), len(reduced))
	}

	// Reduction may return the input slice on pass-through; copy before
	// annotating so the source collection stays untouched.
	out := make([]domain.Service, len(reduced))
	copy(out, reduced)
	for i := range out {
		domain.ScopeService(&out[i], authorities)
	}
	return out
}
