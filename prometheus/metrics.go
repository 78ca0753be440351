package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Prashant-2024/Rental-App/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// HTTP request counter by route and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	// Favorite operations by outcome
	FavoriteOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_favorite_operations_total",
			Help: "Total number of favorite operations",
		},
		[]string{"outcome"}, // "added", "conflict", "removed"
	)

	// Profile operations by entity and operation
	ProfileOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_profile_operations_total",
			Help: "Total number of tenant and manager profile operations",
		},
		[]string{"entity", "operation"},
	)

	// Authorization failures by reason
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_auth_errors_total",
			Help: "Total number of rejected requests at the auth layer",
		},
		[]string{"reason"},
	)

	// Location geometry lookups that failed or timed out
	LocationLookupFailureCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_location_lookup_failures_total",
			Help: "Total number of failed location geometry lookups",
		},
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// InfoGauge reports the running service
var InfoGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "rental_info",
		Help: "Information about the rental service",
	},
	[]string{"service", "version"},
)

func init() {
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(FavoriteOperationCounter)
	prometheus.MustRegister(ProfileOperationCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(LocationLookupFailureCounter)

	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(InfoGauge)
	InfoGauge.With(prometheus.Labels{"service": config.ServiceName, "version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordFavoriteOperation increments the favorite counter for outcome
func RecordFavoriteOperation(outcome string) {
	FavoriteOperationCounter.WithLabelValues(outcome).Inc()
}

// RecordProfileOperation increments the profile counter
func RecordProfileOperation(entity, operation string) {
	ProfileOperationCounter.WithLabelValues(entity, operation).Inc()
}

// RecordAuthError increments the auth error counter for reason
func RecordAuthError(reason string) {
	AuthErrorCounter.WithLabelValues(reason).Inc()
}

// RecordLocationLookupFailure increments the location lookup failure counter
func RecordLocationLookupFailure() {
	LocationLookupFailureCounter.Inc()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			labels := prometheus.Labels{
				"route":  c.Path(),
				"method": c.Request().Method,
				"status": strconv.Itoa(c.Response().Status),
			}
			RequestDuration.With(labels).Observe(time.Since(start).Seconds())
			HTTPRequestCounter.With(labels).Inc()

			return err
		}
	}
}
