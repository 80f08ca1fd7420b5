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

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rocdashboard_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rocdashboard_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ImportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rocdashboard_import_rows_total",
		Help: "Rows accepted by CSV imports, by target dataset.",
	}, []string{"target"})

	HistoryAppends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rocdashboard_stock_history_appends_total",
		Help: "Stock edit history entries recorded.",
	})
)

// Middleware counts every request against its registered route pattern, so
// /stock-parts/:part_number stays one series no matter the id.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus scrape endpoint through fiber's net/http adaptor.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
