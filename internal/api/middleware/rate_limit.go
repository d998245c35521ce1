package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/pkg/redis"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// RateLimit is a Redis sliding-window rate limiter.
// limit: maximum requests allowed within the window.
// A nil rdb or a Redis error lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.TooManyRequests(c, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
