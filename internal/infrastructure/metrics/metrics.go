// Package metrics expone métricas Prometheus del portal: peticiones HTTP,
// decisiones del guard y llamadas a la API upstream.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors, registrados en su propio registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	guardDecisions  *prometheus.CounterVec
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

// New registra todos los collectors en un registry nuevo.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simkah_http_requests_total",
				Help: "HTTP requests served by the portal",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simkah_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		guardDecisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simkah_guard_decisions_total",
				Help: "Route guard outcomes per guarded group",
			},
			[]string{"group", "decision"},
		),
		upstreamCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simkah_upstream_requests_total",
				Help: "Calls to the upstream REST API",
			},
			[]string{"operation", "status"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simkah_upstream_request_duration_seconds",
				Help:    "Upstream REST API latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// Registry devuelve el registry de los collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware registra conteo y latencia por patrón de ruta, así los
// parámetros no disparan la cardinalidad de labels.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler sirve el registry en formato de texto Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// GuardDecision cuenta una evaluación del guard.
func (m *Metrics) GuardDecision(group, decision string) {
	m.guardDecisions.WithLabelValues(group, decision).Inc()
}

// UpstreamCall registra una llamada upstream; status es el código HTTP, "error" o "canceled".
func (m *Metrics) UpstreamCall(operation, status string, d time.Duration) {
	m.upstreamCalls.WithLabelValues(operation, status).Inc()
	m.upstreamLatency.WithLabelValues(operation).Observe(d.Seconds())
}
