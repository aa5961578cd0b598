package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// JournalsPosted counts journals committed, by source module.
var JournalsPosted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "coop_ledger",
	Name:      "journals_posted_total",
	Help:      "Journals committed to the ledger.",
}, []string{"source_module"})

// PostingFailures counts automatic postings that rolled back, by event.
var PostingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "coop_ledger",
	Name:      "posting_failures_total",
	Help:      "Automatic postings that failed and were rolled back.",
}, []string{"event"})

// ReportDuration observes report generation latency.
var ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "coop_ledger",
	Name:      "report_duration_seconds",
	Help:      "Time spent building financial reports.",
	Buckets:   prometheus.DefBuckets,
}, []string{"report"})

// HTTPRequests counts handled requests by route and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "coop_ledger",
	Name:      "http_requests_total",
	Help:      "HTTP requests handled.",
}, []string{"method", "route", "status"})

// ObserveReport records how long a report took since start.
func ObserveReport(report string, start time.Time) {
	ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// Middleware counts requests by matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
