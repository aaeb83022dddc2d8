package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMetrics_Exposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	m.CacheHit()
	m.CacheMiss()
	m.EfficiencyFallback()
	m.ObserveReport("quality", 10*time.Millisecond, nil)
	m.ObserveReport("quality", time.Millisecond, errors.New("boom"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`http_requests_total{route="/ping",status="204"} 1`,
		`kpi_cache_hits_total 1`,
		`kpi_cache_misses_total 1`,
		`kpi_efficiency_fallback_total 1`,
		`kpi_report_errors_total{report="quality"} 1`,
		`kpi_report_duration_seconds_count{report="quality"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.CacheHit()
	m.CacheMiss()
	m.EfficiencyFallback()
	m.ObserveReport("quality", time.Second, nil)
}

func TestNewMetrics_Independent(t *testing.T) {
	// each instance registers on its own registry
	NewMetrics()
	NewMetrics()
}
