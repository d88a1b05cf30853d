package conextaccess

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

var (
	defaultRecorderOnce sync.Once
	defaultRecorder     *PrometheusMetricsRecorder
)

// defaultPrometheusRecorder returns a process-wide recorder registered on
// the default registry. Caddy re-provisions handlers on config reload, so
// registration must happen at most once.
func defaultPrometheusRecorder() *PrometheusMetricsRecorder {
	defaultRecorderOnce.Do(func() {
		defaultRecorder = NewPrometheusMetricsRecorder()
	})
	return defaultRecorder
}

// MetricsRecorder is re-exported from ports; implementations live here
// (PrometheusMetricsRecorder for production, NoopMetricsRecorder for
// disabled/testing).
type MetricsRecorder = ports.MetricsRecorder

// NoopMetricsRecorder is a no-op implementation for when metrics are
// disabled. All methods are safe to call and do nothing.
type NoopMetricsRecorder struct{}

// NewNoopMetricsRecorder creates a new no-op metrics recorder.
func NewNoopMetricsRecorder() *NoopMetricsRecorder {
	return &NoopMetricsRecorder{}
}

// RecordResolution is a no-op.
func (n *NoopMetricsRecorder) RecordResolution(idpEntityID string, success bool) {}

// RecordRegistryLookup is a no-op.
func (n *NoopMetricsRecorder) RecordRegistryLookup(registry string, found bool) {}

// RecordScopeReduction is a no-op.
func (n *NoopMetricsRecorder) RecordScopeReduction(before, after int) {}

// PrometheusMetricsRecorder records metrics using Prometheus.
type PrometheusMetricsRecorder struct {
	resolutionsTotal     *prometheus.CounterVec
	registryLookupsTotal *prometheus.CounterVec
	scopeReductionsTotal prometheus.Counter
	scopedOutTotal       prometheus.Counter
}

// NewPrometheusMetricsRecorder creates a new Prometheus metrics recorder
// using the default Prometheus registry.
func NewPrometheusMetricsRecorder() *PrometheusMetricsRecorder {
	return NewPrometheusMetricsRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsRecorderWithRegistry creates a new Prometheus metrics
// recorder with a custom registry. Use this for testing.
func NewPrometheusMetricsRecorderWithRegistry(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	resolutionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conext_access_resolutions_total",
		Help: "Total principal resolution attempts",
	}, []string{"idp_entity_id", "result"})

	registryLookupsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conext_access_registry_lookups_total",
		Help: "Total external registry lookups",
	}, []string{"registry", "result"})

	scopeReductionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conext_access_scope_reductions_total",
		Help: "Total collection scoping passes",
	})

	scopedOutTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conext_access_scoped_out_services_total",
		Help: "Total services removed by collection scoping",
	})

	reg.MustRegister(
		resolutionsTotal,
		registryLookupsTotal,
		scopeReductionsTotal,
		scopedOutTotal,
	)

	return &PrometheusMetricsRecorder{
		resolutionsTotal:     resolutionsTotal,
		registryLookupsTotal: registryLookupsTotal,
		scopeReductionsTotal: scopeReductionsTotal,
		scopedOutTotal:       scopedOutTotal,
	}
}

// RecordResolution records one principal resolution attempt.
func (p *PrometheusMetricsRecorder) RecordResolution(idpEntityID string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	p.resolutionsTotal.WithLabelValues(idpEntityID, result).Inc()
}

// RecordRegistryLookup records the outcome of one external registry lookup.
func (p *PrometheusMetricsRecorder) RecordRegistryLookup(registry string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	p.registryLookupsTotal.WithLabelValues(registry, result).Inc()
}

// RecordScopeReduction records a collection-scoping pass.
func (p *PrometheusMetricsRecorder) RecordScopeReduction(before, after int) {
	p.scopeReductionsTotal.Inc()
	if removed := before - after; removed > 0 {
		p.scopedOutTotal.Add(float64(removed))
	}
}
