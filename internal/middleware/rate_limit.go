package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dstclan/internal/constants"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows limit requests per client IP per window, counted in Redis.
// Redis failures let the request through. A limit below 1 or a window under a
// second disables the check.
func RateLimit(rdb redis.Cmdable, scope string, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || window < time.Second {
			c.Next()
			return
		}

		bucket := time.Now().Unix() / int64(window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, c.ClientIP(), bucket)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": constants.ErrTooManyRequests})
			return
		}
		c.Next()
	}
}
