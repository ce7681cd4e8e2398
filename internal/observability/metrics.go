package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petty",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petty",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petty",
			Subsystem: "render",
			Name:      "filters_total",
			Help:      "Texts passed through a render hook.",
		},
		[]string{"hook", "skipped"},
	)
	substitutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petty",
			Subsystem: "render",
			Name:      "substitutions_total",
			Help:      "Term occurrences annotated, by stored symbol.",
		},
		[]string{"symbol", "decorated"},
	)
	storeOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petty",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Term store operations.",
		},
		[]string{"backend", "op", "success"},
	)
	storeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petty",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Term store operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, renders, substitutions, storeOps, storeDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordRender(hook string, skipped bool) {
	RegisterMetrics()
	renders.WithLabelValues(hook, strconv.FormatBool(skipped)).Inc()
}

func RecordSubstitution(symbol string, decorated bool) {
	RegisterMetrics()
	substitutions.WithLabelValues(symbol, strconv.FormatBool(decorated)).Inc()
}

func RecordStoreOp(backend, op string, duration time.Duration, success bool) {
	RegisterMetrics()
	successLabel := strconv.FormatBool(success)
	storeOps.WithLabelValues(backend, op, successLabel).Inc()
	storeDuration.WithLabelValues(backend, op, successLabel).Observe(duration.Seconds())
}
