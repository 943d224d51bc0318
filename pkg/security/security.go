package security

import (
	"context"
	"english_app_backend/internal/util"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS only admits whitelisted origins. An empty list allows any origin
// without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With", util.RequestIDKey},
		ExposeHeaders:    []string{util.RequestIDKey},
		AllowCredentials: len(allowedOrigins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

func tooManyRequests(c *gin.Context) {
	util.Error(c, http.StatusTooManyRequests, "Too many requests")
	c.Abort()
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu    sync.Mutex
	byKey map[string]*visitor
}

func (v *visitors) get(key string, limit rate.Limit, burst int, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	entry, ok := v.byKey[key]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(limit, burst)}
		v.byKey[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (v *visitors) evict(olderThan time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for key, entry := range v.byKey {
		if entry.lastSeen.Before(olderThan) {
			delete(v.byKey, key)
		}
	}
}

// sweep drops entries idle for longer than expiry every interval until ctx is done.
func (v *visitors) sweep(ctx context.Context, interval, expiry time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			v.evict(now.Add(-expiry))
		}
	}
}

// RateLimiter limits each client IP to maxRequests per window, in memory.
// Idle entries are swept once a minute until ctx is cancelled.
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	store := &visitors{byKey: make(map[string]*visitor)}

	expiry := window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	go store.sweep(ctx, time.Minute, expiry)

	limit := rate.Every(window / time.Duration(maxRequests))

	return func(c *gin.Context) {
		if !store.get(c.ClientIP(), limit, maxRequests, time.Now()).Allow() {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}
