package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aibekov/task-tracker/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tasktracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasktracker",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Notification dispatch metrics

	NotificationsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasktracker",
		Name:      "notifications_created_total",
		Help:      "Notifications persisted by the dispatcher.",
	})

	DispatchFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasktracker",
		Name:      "notification_dispatch_failures_total",
		Help:      "Best-effort dispatch steps that failed, by stage.",
	}, []string{"stage"})

	NotificationsPrunedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tasktracker",
		Name:      "notifications_pruned_total",
		Help:      "Read notifications removed by the retention pruner.",
	})

	// Realtime metrics

	RealtimePublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tasktracker",
		Name:      "realtime_published_total",
		Help:      "Realtime publish attempts, by outcome.",
	}, []string{"outcome"})

	RealtimeSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tasktracker",
		Name:      "realtime_subscribers",
		Help:      "Currently connected realtime subscriptions.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		NotificationsCreatedTotal,
		DispatchFailuresTotal,
		NotificationsPrunedTotal,
		RealtimePublishedTotal,
		RealtimeSubscribers,
	)
}

// HealthReporter is implemented by health.Checker.
type HealthReporter interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

// NewServer serves /metrics plus liveness/readiness probes on a port
// separate from the API.
func NewServer(addr string, checker HealthReporter) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
