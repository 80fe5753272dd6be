package metrics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberesports/crewdesk/pkg/core/model"
	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	staffingOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffing_operations_total",
			Help: "Staffing operations by op and result (success, role_full, duplicate, locked, not_found, store_write, error).",
		},
		[]string{"op", "result"},
	)

	staffingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staffing_operation_duration_seconds",
			Help:    "Duration of staffing operations by op and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"},
	)

	eventCoverage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_coverage",
			Help: "Active events by derived coverage status, as of the last coverage read.",
		},
		[]string{"status"},
	)
)

func GinMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	code := strconv.Itoa(c.Writer.Status())
	path := c.FullPath()

	// unmatched routes have no full path
	if path == "" {
		path = c.Request.URL.Path
	}

	if path == "/metrics" || strings.HasPrefix(path, "/debug/pprof/") {
		return
	}

	method := c.Request.Method

	httpRequests.WithLabelValues(path, method, code).Inc()
	httpDuration.WithLabelValues(path, method, code).Observe(time.Since(start).Seconds())
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Result classifies an operation outcome into a bounded label value
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, staffing.ErrRoleFull):
		return "role_full"
	case errors.Is(err, staffing.ErrDuplicateAssignment):
		return "duplicate"
	case errors.Is(err, staffing.ErrLockedSignup):
		return "locked"
	case errors.Is(err, staffing.ErrNotFound):
		return "not_found"
	case errors.Is(err, staffing.ErrStoreWrite):
		return "store_write"
	default:
		return "error"
	}
}

func ObserveOp(op string, start time.Time, err error) {
	result := Result(err)
	staffingOps.WithLabelValues(op, result).Inc()
	staffingDuration.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

// SetCoverage replaces the coverage gauge with counts from the given working set
func SetCoverage(events []model.Event) {
	counts := map[model.CoverageStatus]float64{
		model.CoverageNone:    0,
		model.CoveragePartial: 0,
		model.CoverageFull:    0,
	}
	for i := range events {
		counts[staffing.Coverage(events[i].Workflow)]++
	}
	for status, n := range counts {
		eventCoverage.WithLabelValues(string(status)).Set(n)
	}
}

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		staffingOps,
		staffingDuration,
		eventCoverage,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}
