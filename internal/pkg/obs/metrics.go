// Package obs wires Prometheus metrics for the HTTP surface and the
// payroll domain.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	payslipsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payslips_created_total",
		Help: "Payslips created since process start.",
	})

	payslipStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payslip_status_changes_total",
			Help: "Payslip status transitions by target status.",
		},
		[]string{"status"},
	)

	documentsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payslip_documents_rendered_total",
			Help: "Payslip documents rendered by format.",
		},
		[]string{"format"},
	)

	featureResyncs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "company_feature_resyncs_total",
		Help: "Company feature snapshot resyncs.",
	})

	notificationsQueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_queued_total",
			Help: "Notifications queued for delivery by type.",
		},
		[]string{"type"},
	)
)

// Init registers all metrics with the default registry. Call once at
// startup.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		payslipsCreated, payslipStatusChanges, documentsRendered,
		featureResyncs, notificationsQueued,
	)
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument measures request counts, latency and in-flight requests.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

func CountPayslipCreated()              { payslipsCreated.Inc() }
func CountStatusChange(status string)   { payslipStatusChanges.WithLabelValues(status).Inc() }
func CountDocumentRendered(fmt string)  { documentsRendered.WithLabelValues(fmt).Inc() }
func CountFeatureResync()               { featureResyncs.Inc() }
func CountNotificationQueued(nt string) { notificationsQueued.WithLabelValues(nt).Inc() }

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
