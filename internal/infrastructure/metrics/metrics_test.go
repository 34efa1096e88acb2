package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequestsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	e := echo.New()
	e.Use(Middleware(rec))
	e.GET("/v1/products/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/products/"+id, nil)
		rr := httptest.NewRecorder()
		e.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	counter := rec.(*prometheusRecorder).requestsTotal.WithLabelValues("/v1/products/:id", http.MethodGet, "2xx")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}

func TestRecorder_CatalogCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.IncCatalogCacheMiss()
	rec.IncCatalogCacheHit()
	rec.IncCatalogCacheHit()

	cache := rec.(*prometheusRecorder).catalogCache
	assert.Equal(t, 2.0, testutil.ToFloat64(cache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(cache.WithLabelValues("miss")))
}
