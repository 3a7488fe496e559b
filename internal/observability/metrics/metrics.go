package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (o Outcome) String() string {
	return string(o)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var defaultHistogramBucketsSeconds = []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

var (
	once sync.Once

	// client requests are the ones sent to the fund api
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	grpcRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_request_duration_seconds",
			Help:    "Histogram of served gRPC request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "code"},
	)

	snapshotEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_events_total",
			Help: "Number of snapshot events consumed, by kind and status",
		},
		[]string{"kind", "status"},
	)

	schedulerRunDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_run_duration_seconds",
			Help:    "Histogram of scheduled job durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"job", "status"},
	)

	upstreamHealthGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fund_api_healthy",
			Help: "1 when the last fund api health check succeeded, 0 otherwise",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init registers the collectors with the default prometheus registry.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			clientRequestDurationHistogram,
			grpcRequestDurationHistogram,
			snapshotEventCounter,
			schedulerRunDurationHistogram,
			upstreamHealthGauge,
			dbLatency,
		)
	})
}

// NewRouter returns the metrics router serving /metrics and /healthz.
// healthy may be nil, in which case /healthz always answers 200.
func NewRouter(healthy func() bool) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if healthy != nil && !healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unhealthy"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	return router
}

// NewServer creates the metrics HTTP server with timeout settings.
func NewServer(metricsPort int, healthy func() bool) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", metricsPort),
		Handler:      NewRouter(healthy),
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			strconv.Itoa(statusCode),
		).Observe(time.Since(startTime).Seconds())
	}
}

func RecordGRPCRequest(d time.Duration, method, code string) {
	grpcRequestDurationHistogram.WithLabelValues(method, code).Observe(d.Seconds())
}

func RecordSnapshotEvent(kind string, failure bool) {
	snapshotEventCounter.WithLabelValues(kind, outcome(failure).String()).Inc()
}

func RecordSchedulerRun(d time.Duration, job string, failure bool) {
	schedulerRunDurationHistogram.WithLabelValues(job, outcome(failure).String()).Observe(d.Seconds())
}

func RecordUpstreamHealth(healthy bool) {
	if healthy {
		upstreamHealthGauge.Set(1)
		return
	}
	upstreamHealthGauge.Set(0)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}
