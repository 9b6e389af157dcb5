package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	EndpointLatency *prometheus.HistogramVec

	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram

	// Pinning metrics
	PinsTotal     *prometheus.CounterVec
	UploadedBytes prometheus.Counter

	// Mint metrics
	MintsStarted   prometheus.Counter
	MintsSucceeded prometheus.Counter
	MintsFailed    *prometheus.CounterVec
	MintDuration   prometheus.Histogram

	// Verification metrics
	VerifyLookups   *prometheus.CounterVec
	VerifyFailures  *prometheus.CounterVec
	ChainCallsTotal *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minet_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RendersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_credential_renders_total",
			Help: "Total number of credential images rendered, labeled by template",
		}, []string{"template"}),
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "minet_credential_render_duration_seconds",
			Help:    "Duration of credential image rendering in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		PinsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_pins_total",
			Help: "Total number of pinning operations, labeled by kind (file, json)",
		}, []string{"kind"}),
		UploadedBytes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minet_uploaded_bytes_total",
			Help: "Total bytes uploaded to the pinning service",
		}),
		MintsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minet_mints_started_total",
			Help: "Total number of mint operations started",
		}),
		MintsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minet_mints_succeeded_total",
			Help: "Total number of mint operations completed successfully",
		}),
		MintsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_mints_failed_total",
			Help: "Total number of mint operations that failed, labeled by step",
		}, []string{"step"}),
		MintDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "minet_mint_duration_seconds",
			Help:    "End-to-end duration of mint operations in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		VerifyLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_verify_lookups_total",
			Help: "Total number of verification lookups, labeled by search type",
		}, []string{"search_type"}),
		VerifyFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_verify_failures_total",
			Help: "Total number of failed verification lookups, labeled by search type",
		}, []string{"search_type"}),
		ChainCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minet_chain_calls_total",
			Help: "Total number of contract read calls, labeled by method",
		}, []string{"method"}),
	}
}

// ObserveEndpointLatency records the latency for a given endpoint
func (m *Metrics) ObserveEndpointLatency(endpoint string, durationSeconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(durationSeconds)
}

// IncrementRenders increments the render counter for a template
func (m *Metrics) IncrementRenders(template string) {
	m.RendersTotal.WithLabelValues(template).Inc()
}

// ObserveRenderDuration records how long a render took
func (m *Metrics) ObserveRenderDuration(durationSeconds float64) {
	m.RenderDuration.Observe(durationSeconds)
}

// IncrementPins increments the pin counter for a kind
func (m *Metrics) IncrementPins(kind string) {
	m.PinsTotal.WithLabelValues(kind).Inc()
}

// AddUploadedBytes adds to the uploaded bytes counter
func (m *Metrics) AddUploadedBytes(n int64) {
	m.UploadedBytes.Add(float64(n))
}

func (m *Metrics) IncrementMintsStarted() {
	m.MintsStarted.Inc()
}

func (m *Metrics) IncrementMintsSucceeded() {
	m.MintsSucceeded.Inc()
}

// IncrementMintsFailed increments the failed mint counter with the step label
func (m *Metrics) IncrementMintsFailed(step string) {
	m.MintsFailed.WithLabelValues(step).Inc()
}

// ObserveMintDuration records the end-to-end mint latency
func (m *Metrics) ObserveMintDuration(durationSeconds float64) {
	m.MintDuration.Observe(durationSeconds)
}

// IncrementVerifyLookups increments the lookup counter with the search type label
func (m *Metrics) IncrementVerifyLookups(searchType string) {
	m.VerifyLookups.WithLabelValues(searchType).Inc()
}

// IncrementVerifyFailures increments the failure counter with the search type label
func (m *Metrics) IncrementVerifyFailures(searchType string) {
	m.VerifyFailures.WithLabelValues(searchType).Inc()
}

// IncrementChainCalls increments the contract call counter with the method label
func (m *Metrics) IncrementChainCalls(method string) {
	m.ChainCallsTotal.WithLabelValues(method).Inc()
}
