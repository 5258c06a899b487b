package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mafgems"

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing, so packages can be exercised without a registry.
type Metrics struct {
	Registry *prometheus.Registry

	generations      *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	pollAttempts     *prometheus.HistogramVec
	sideEffectErrors *prometheus.CounterVec
	videoJobs        *prometheus.CounterVec
	rateLimited      *prometheus.CounterVec
}

// New registers every collector on a fresh registry, together with the Go
// and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Presentation generations, partitioned by canonical method and outcome.",
		}, []string{"method", "outcome"}),
		providerRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Calls to The New Black AI, partitioned by endpoint and HTTP status (0 for network failures).",
		}, []string{"endpoint", "status"}),
		providerLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of calls to The New Black AI.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"endpoint"}),
		pollAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_attempts",
			Help:      "Poll attempts consumed per two-phase generation.",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}, []string{"resolved"}),
		sideEffectErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Best-effort writes that failed or panicked.",
		}, []string{"name"}),
		videoJobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jewelry_video_jobs_total",
			Help:      "Jewelry video jobs, partitioned by final status.",
		}, []string{"status"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"route"}),
	}
}

func (m *Metrics) ObserveGeneration(method, outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) ObserveProviderRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.providerLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObservePoll(attempts int, resolved bool) {
	if m == nil {
		return
	}
	m.pollAttempts.WithLabelValues(strconv.FormatBool(resolved)).Observe(float64(attempts))
}

func (m *Metrics) IncSideEffectFailure(name string) {
	if m == nil {
		return
	}
	m.sideEffectErrors.WithLabelValues(name).Inc()
}

func (m *Metrics) IncVideoJob(status string) {
	if m == nil {
		return
	}
	m.videoJobs.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
