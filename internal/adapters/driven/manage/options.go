package manage

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// Option is a functional option for configuring provider directories.
type Option func(*options)

// Clock provides time functionality for testing.
type Clock interface {
	Now() time.Time
}

// RealClock uses the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

type options struct {
	httpClient        *http.Client
	basicAuthUser     string
	basicAuthPassword string
	cacheTTL          time.Duration
	signatureVerifier ports.SignatureVerifier
	logger            *zap.Logger
	metricsRecorder   ports.MetricsRecorder
	clock             Clock
}

// WithHTTPClient returns an option that sets the HTTP client used for
// registry calls. A default client with a 10s timeout is used otherwise.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithBasicAuth returns an option that sets the basic-auth credentials sent
// on registry calls.
func WithBasicAuth(user, password string) Option {
	return func(o *options) {
		o.basicAuthUser = user
		o.basicAuthPassword = password
	}
}

// WithCacheTTL returns an option that sets how long lookup results are
// served from cache before the registry is queried again.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = ttl
	}
}

// WithSignatureVerifier returns an option that enables signature
// verification on metadata feeds. Only used by the metadata-backed directory.
func WithSignatureVerifier(verifier ports.SignatureVerifier) Option {
	return func(o *options) {
		o.signatureVerifier = verifier
	}
}

// WithLogger returns an option that sets the logger for the directory.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsRecorder returns an option that sets the metrics recorder for
// the directory.
func WithMetricsRecorder(recorder ports.MetricsRecorder) Option {
	return func(o *options) {
		o.metricsRecorder = recorder
	}
}

// WithClock returns an option that sets a custom clock for time operations.
// Used for testing cache TTL expiration without time.Sleep.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = RealClock{}
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return o
}
