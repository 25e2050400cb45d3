package middleware

import (
	"net/http"
	"time"

	ecredis "github.com/bernaba123/E-Commerce-sub001/pkg/redis"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

// RateLimit throttles checkout per user (falling back to client IP) with a
// Redis sliding window. Redis being down fails open: losing the limiter is
// better than losing checkout.
func RateLimit(rdb *rd.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		if actor := ActorFrom(c); actor.UserID != "" {
			key = ecredis.RateLimitUserKey(actor.UserID)
		} else {
			key = ecredis.RateLimitIPKey(c.ClientIP())
		}

		allowed, err := ecredis.Allow(c.Request.Context(), rdb, key, limit, window)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code": 429,
				"msg":  "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
