package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextTimeout caps the handling time of a request by putting a
// deadline on its context. A non-positive timeout disables the cap;
// signing a large gallery can legitimately take a while.
// ContextTimeout 给请求上下文加截止时间来限制处理时长，非正值表示不限制
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
