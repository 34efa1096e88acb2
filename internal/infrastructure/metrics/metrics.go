package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "swapdmarket/pkg/errors"
)

type Recorder interface {
	ObserveRequest(route, method string, status int, duration time.Duration)
	IncCatalogCacheHit()
	IncCatalogCacheMiss()
	IncContactOutcome(state string)
	IncFavoriteToggle(added bool)
	IncNotificationDelivered()
	IncNotificationDropped(reason string)
}

type prometheusRecorder struct {
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	catalogCache       *prometheus.CounterVec
	contactOutcomes    *prometheus.CounterVec
	favoriteToggles    *prometheus.CounterVec
	notifications      prometheus.Counter
	notificationsDrops *prometheus.CounterVec
}

// NewPrometheusRecorder registers the service metrics with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) Recorder {
	factory := promauto.With(reg)
	return &prometheusRecorder{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swapdmarket_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swapdmarket_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		catalogCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swapdmarket_catalog_cache_total",
			Help: "Catalog loads served from cache (hit) or the document store (miss)",
		}, []string{"result"}),
		contactOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swapdmarket_contact_outcomes_total",
			Help: "Contact seller flows by final state",
		}, []string{"state"}),
		favoriteToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swapdmarket_favorite_toggles_total",
			Help: "Favorite toggles by resulting membership",
		}, []string{"result"}),
		notifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "swapdmarket_notifications_delivered_total",
			Help: "Notifications pushed to connected clients",
		}),
		notificationsDrops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swapdmarket_notifications_dropped_total",
			Help: "Unread messages that did not become a notification",
		}, []string{"reason"}),
	}
}

func (m *prometheusRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, statusBucket(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *prometheusRecorder) IncCatalogCacheHit()  { m.catalogCache.WithLabelValues("hit").Inc() }
func (m *prometheusRecorder) IncCatalogCacheMiss() { m.catalogCache.WithLabelValues("miss").Inc() }

func (m *prometheusRecorder) IncContactOutcome(state string) {
	m.contactOutcomes.WithLabelValues(state).Inc()
}

func (m *prometheusRecorder) IncFavoriteToggle(added bool) {
	m.favoriteToggles.WithLabelValues(strconv.FormatBool(added)).Inc()
}

func (m *prometheusRecorder) IncNotificationDelivered() { m.notifications.Inc() }

func (m *prometheusRecorder) IncNotificationDropped(reason string) {
	m.notificationsDrops.WithLabelValues(reason).Inc()
}

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Middleware records every request under its route template.
func Middleware(rec Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var appErr *apperrors.AppError
			var httpErr *echo.HTTPError
			switch {
			case errors.As(err, &appErr):
				status = appErr.Status
			case errors.As(err, &httpErr):
				status = httpErr.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			rec.ObserveRequest(route, c.Request().Method, status, time.Since(start))
			return err
		}
	}
}

type noop struct{}

// Noop discards every observation.
func Noop() Recorder { return noop{} }

func (noop) ObserveRequest(string, string, int, time.Duration) {}
func (noop) IncCatalogCacheHit()                               {}
func (noop) IncCatalogCacheMiss()                              {}
func (noop) IncContactOutcome(string)                          {}
func (noop) IncFavoriteToggle(bool)                            {}
func (noop) IncNotificationDelivered()                         {}
func (noop) IncNotificationDropped(string)                     {}
