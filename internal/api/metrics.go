package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eugenenazirov/license-counter/internal/report"
)

var (
	// httpRequestsTotal counts requests by route and status code
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "license_counter_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// httpRequestDuration tracks request latency
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "license_counter_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"method", "route"})

	// reportLicenses tracks the license count of analysed reports
	reportLicenses = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "license_counter_report_licenses",
		Help:    "Licenses required per analysed report",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	// reportRowsSkipped counts malformed rows dropped from reports
	reportRowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_counter_report_rows_skipped_total",
		Help: "Total malformed report rows dropped",
	})
)

func observeReport(result report.Result) {
	reportLicenses.Observe(float64(result.Licenses))
	reportRowsSkipped.Add(float64(result.Skipped))
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
