package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "drone_delivery"

// Metrics holds the prometheus collectors of the API.
type Metrics struct {
	httpDuration  *prometheus.HistogramVec
	totalRequests *prometheus.CounterVec
	lookups       *prometheus.CounterVec
	shipments     *prometheus.CounterVec
	sessions      prometheus.Gauge

	gatherer prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "path"}),
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "total_requests",
			Help:      "The total number of requests",
		}, []string{"path", "method", "status"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_lookups_total",
			Help:      "Location lookups by input method and outcome",
		}, []string{"method", "outcome"}),
		shipments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_total",
			Help:      "Shipment confirmations by outcome",
		}, []string{"outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "form_sessions",
			Help:      "Form sessions currently held in memory",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.httpDuration, m.totalRequests, m.lookups, m.shipments, m.sessions)
	return m
}

// Middleware records duration and status of every request, labelled by the
// matched route so path parameters do not blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		timer := prometheus.NewTimer(m.httpDuration.With(prometheus.Labels{"method": c.Request.Method, "path": path}))

		c.Next()

		timer.ObserveDuration()
		m.totalRequests.With(prometheus.Labels{
			"path":   path,
			"method": c.Request.Method,
			"status": strconv.Itoa(c.Writer.Status()),
		}).Inc()
	}
}

func (m *Metrics) ObserveLookup(method, outcome string) {
	m.lookups.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) ObserveShipment(outcome string) {
	m.shipments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetSessions(n int) {
	m.sessions.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
