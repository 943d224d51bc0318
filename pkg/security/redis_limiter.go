package security

import (
	"english_app_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisRateLimiter counts requests per client IP in fixed windows shared by
// every instance. When redis is unreachable requests are let through.
func RedisRateLimiter(rdb *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		slot := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), slot)

		ctx := c.Request.Context()
		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Log.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if incr.Val() > int64(maxRequests) {
			tooManyRequests(c)
			return
		}

		c.Next()
	}
}
