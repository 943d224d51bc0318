package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterPerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newRouter(RateLimiter(ctx, 2, time.Hour))

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000", nil).Code)
	w := get(r, "10.0.0.1:1000", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2:1000", nil).Code)
}

func TestVisitorSweepEvictsIdleAndStops(t *testing.T) {
	store := &visitors{byKey: make(map[string]*visitor)}
	now := time.Now()
	store.get("idle", rate.Inf, 1, now.Add(-time.Hour))
	store.get("busy", rate.Inf, 1, now.Add(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.sweep(ctx, time.Millisecond, time.Minute)
		close(done)
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		_, idle := store.byKey["idle"]
		return !idle
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper still running after cancel")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Contains(t, store.byKey, "busy")
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	r := newRouter(RedisRateLimiter(rdb, 1, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000", nil).Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	w := get(newRouter(Secure()), "10.0.0.1:1000", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestCORS(t *testing.T) {
	open := newRouter(CORS(nil))
	w := get(open, "10.0.0.1:1000", http.Header{"Origin": {"https://anywhere.example"}})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	strict := newRouter(CORS([]string{"https://app.example.com"}))
	w = get(strict, "10.0.0.1:1000", http.Header{"Origin": {"https://app.example.com"}})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	w = get(strict, "10.0.0.1:1000", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
