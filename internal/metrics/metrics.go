package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eshopadmin/internal/domain"
)

var (
	// Registry holds every collector of this process; tests read from it directly.
	Registry = prometheus.NewRegistry()

	// Operations counts controller operations by entity, operation and outcome.
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eshop_operations_total",
			Help: "Total number of browser operations",
		},
		[]string{"entity", "op", "outcome"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eshop_operation_duration_seconds",
			Help:    "Duration of browser operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "op"},
	)

	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	Registry.MustRegister(
		Operations, OperationDuration, RequestCounter, RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Outcome buckets an operation error into a low-cardinality label.
func Outcome(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNoSelection), errors.Is(err, domain.ErrNotDisplayed):
		return "no_selection"
	default:
		return "error"
	}
}

// Observe records one finished operation.
func Observe(entity, op string, start time.Time, err error) {
	Operations.WithLabelValues(entity, op, Outcome(err)).Inc()
	OperationDuration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// Middleware records request count and latency per route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		statusStr := strconv.Itoa(status)
		RequestCounter.WithLabelValues(c.Method(), path, statusStr).Inc()
		RequestDuration.WithLabelValues(c.Method(), path, statusStr).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
