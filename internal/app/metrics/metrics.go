// Package metrics содержит метрики Prometheus, доступные на /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuotesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiningstar_quotes_computed_total",
		Help: "Quotes returned to customers by calculation type.",
	}, []string{"calculation_type"})

	QuoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiningstar_quote_failures_total",
		Help: "Quote requests rejected, by reason.",
	}, []string{"reason"})

	DistanceFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shiningstar_distance_fallbacks_total",
		Help: "Quotes priced with zero distance because the resolver failed.",
	})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shiningstar_validation_failures_total",
		Help: "Catalog payloads rejected by validation.",
	}, []string{"entity"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shiningstar_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Instrument пишет время ответа с меткой маршрута, а не сырого пути
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
