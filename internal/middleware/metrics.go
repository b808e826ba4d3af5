package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "erp_http_requests_total",
		Help: "Total HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erp_http_request_duration_seconds",
		Help:    "HTTP request latency distribution.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	journalEntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "erp_journal_entries_posted_total",
		Help: "Journal entries transitioned to POSTED.",
	})
)

// MetricsMiddleware records request counts and latency per route. The route
// template (not the raw path) is the label to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CountJournalEntryPosted increments the posted-entries counter.
func CountJournalEntryPosted() {
	journalEntriesPosted.Inc()
}
