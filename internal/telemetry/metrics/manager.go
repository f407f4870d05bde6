package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterGatewayCalls        *prometheus.CounterVec
	CounterEventsCommitted     *prometheus.CounterVec
	CounterResultsCacheHits    prometheus.Counter
	CounterResultsCacheMisses  prometheus.Counter

	// gauges
	GaugeRequests       prometheus.Gauge
	GaugeLifeSignal     prometheus.Gauge
	GaugeActiveSessions prometheus.Gauge

	// histograms
	HistogramRequestDuration     *prometheus.HistogramVec
	HistogramGatewayCallDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("workoutcal", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("workoutcal", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterGatewayCalls := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "gateway_calls",
		Help:      "The total number of persistence gateway calls",
	}, []string{"op", "status"})
	counterEventsCommitted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "events_committed",
		Help:      "Workout events committed to the remote store, by kind",
	}, []string{"kind"})
	counterResultsCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "previous_results_cache_hits",
		Help:      "Previous results served from the memo cache",
	})
	counterResultsCacheMisses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "previous_results_cache_misses",
		Help:      "Previous results recomputed from the events list",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeActiveSessions := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "active_sessions",
		Help:      "Number of user sessions held in memory",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramGatewayCallDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "gateway_call_duration_seconds",
		Help:      "Histogram of persistence gateway call duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"op"})

	return &Manager{
		CounterRequests:              counterRequests,
		CounterHandleRequestPanic:    counterHandleRequestPanic,
		CounterRateLimitedRequests:   counterRateLimitedRequests,
		CounterGatewayCalls:          counterGatewayCalls,
		CounterEventsCommitted:       counterEventsCommitted,
		CounterResultsCacheHits:      counterResultsCacheHits,
		CounterResultsCacheMisses:    counterResultsCacheMisses,
		GaugeRequests:                gaugeRequests,
		GaugeLifeSignal:              gaugeLifeSignal,
		GaugeActiveSessions:          gaugeActiveSessions,
		HistogramRequestDuration:     histogramRequestDuration,
		HistogramGatewayCallDuration: histogramGatewayCallDuration,
	}
}
