package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/cache"
	"github.com/confetti-cuisine/confetti/web/entity"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig caps requests per client and path within a fixed window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(c *gin.Context) string
}

func DefaultRateLimitConfig(requests int) RateLimitConfig {
	return RateLimitConfig{
		Requests: requests,
		Window:   time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit counts requests in redis. Without redis, or with a non-positive
// limit, every request passes.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Requests <= 0 || !cache.Enabled() {
			c.Next()
			return
		}

		key := "confetti:ratelimit:" + config.KeyFunc(c) + ":" + c.Request.URL.Path
		count, err := cache.Incr(key, config.Window)
		if err != nil {
			logger.Warning("rate limit increment failed:", err)
			c.Next()
			return
		}
		if count > int64(config.Requests) {
			logger.Warningf("Rate limit exceeded for %s on %s (count: %d)", config.KeyFunc(c), c.Request.URL.Path, count)
			msg := "Too many attempts. Please try again later."
			if strings.HasPrefix(c.Request.URL.Path, "/api/") || wantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.LoginResult{Success: false, Message: msg})
				return
			}
			c.String(http.StatusTooManyRequests, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}
