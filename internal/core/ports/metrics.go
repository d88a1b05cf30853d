package ports

// MetricsRecorder is the port interface for recording metrics.
// Implementations are adapters (PrometheusMetricsRecorder for production,
// NoopMetricsRecorder for disabled/testing).
type MetricsRecorder interface {
	// RecordResolution records one principal resolution attempt.
	RecordResolution(idpEntityID string, success bool)

	// RecordRegistryLookup records the outcome of one external registry
	// lookup. Registry is "manage" or "sab".
	RecordRegistryLookup(registry string, found bool)

	// RecordScopeReduction records a collection-scoping pass.
	RecordScopeReduction(before, after int)
}
