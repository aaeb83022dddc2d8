package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLimiter struct {
	hits map[string]int
	err  error
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.hits[key]++
	return f.hits[key] <= limit, nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, map[string]string{"X-Request-ID": "abc-123"})
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("caller id should be reused, got %q", w.Header().Get("X-Request-ID"))
	}

	w = get(r, map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("oversized id should be replaced by a uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}

func TestRateLimit(t *testing.T) {
	rl := &fakeLimiter{hits: map[string]int{}}
	r := newEngine(RateLimit(rl, 2, time.Minute))

	for i := 0; i < 2; i++ {
		if w := get(r, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i, w.Code)
		}
	}
	if w := get(r, nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %d", w.Code)
	}

	failing := newEngine(RateLimit(&fakeLimiter{err: errors.New("redis down")}, 1, time.Minute))
	if w := get(failing, nil); w.Code != http.StatusOK {
		t.Errorf("limiter errors should let requests through, got %d", w.Code)
	}

	open := newEngine(RateLimit(nil, 1, time.Minute))
	if w := get(open, nil); w.Code != http.StatusOK {
		t.Errorf("nil limiter should let requests through, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:5173/"}))

	w := get(r, map[string]string{"Origin": "http://localhost:5173"})
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("configured origin should be allowed")
	}
	w = get(r, map[string]string{"Origin": "http://evil.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin should not be allowed")
	}

	wildcard := newEngine(CORS([]string{"*"}))
	w = get(wildcard, map[string]string{"Origin": "http://any.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("wildcard should allow any origin")
	}
}

func TestSecurityHeadersAndLogger(t *testing.T) {
	r := newEngine(RequestID(), Logger(zap.NewNop()), SecurityHeaders())
	w := get(r, nil)
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("security headers missing: %v", w.Header())
	}
}
