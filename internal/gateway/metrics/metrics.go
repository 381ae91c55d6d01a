// Package metrics holds the gateway's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mudras"

var (
	// EdgeDecisions counts gate outcomes by action and reason.
	EdgeDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "edge",
		Name:      "decisions_total",
		Help:      "Edge gate decisions by action and reason.",
	}, []string{"action", "reason"})

	// BackendRequests counts relayed backend calls by route and status.
	// Status is "error" when the backend could not be reached.
	BackendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Relayed backend calls by route and status code.",
	}, []string{"route", "status"})

	BackendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of relayed backend calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// PermisosCache counts permission cache lookups: hit, miss or error.
	PermisosCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "permisos_cache",
		Name:      "lookups_total",
		Help:      "Permission cache lookups by backend and result.",
	}, []string{"cache", "result"})
)

var (
	registry     = prometheus.NewRegistry()
	registerOnce sync.Once
)

// MustRegister registers every collector with the gateway registry. Safe to
// call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			EdgeDecisions,
			BackendRequests,
			BackendDuration,
			PermisosCache,
		)
	})
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	MustRegister()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveBackend records one relayed call. A status of 0 means the backend
// was unreachable.
func ObserveBackend(route string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequests.WithLabelValues(route, label).Inc()
	BackendDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
