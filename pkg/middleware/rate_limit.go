package middleware

import (
	"fmt"
	"net/http"
	"time"

	"share-platform/pkg/apperr"
	"share-platform/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware counts requests per path and caller in fixed windows.
// Without a redis client it lets everything through.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		var caller interface{} = c.ClientIP()
		if userID, exists := c.Get(ContextUserID); exists && userID != int64(0) {
			caller = userID
		}

		key := fmt.Sprintf("rate_limit:%s:%v", c.Request.URL.Path, caller)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.CommonResp{
				Code:    apperr.CodeInternal,
				Message: "rate limit check failed",
			})
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.CommonResp{
				Code:    "RATE_LIMITED",
				Message: "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
