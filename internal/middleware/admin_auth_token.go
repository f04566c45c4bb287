package middleware

import (
	"strings"

	"github.com/lumapix/photo-share-service/pkg/app"
	"github.com/lumapix/photo-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AdminAuthToken 管理端 Token 认证中间件（使用注入的 TokenManager）。
// 访客侧的分享访问不经过这里，凭 token 本身放行。
func AdminAuthToken(tm app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		response := app.NewResponse(c)

		if s := c.GetHeader("Authorization"); len(s) != 0 {
			token = strings.TrimPrefix(s, "Bearer ")
		} else if s, exist := c.GetQuery("authorization"); exist {
			token = s
		} else if s := c.GetHeader("Token"); len(s) != 0 {
			token = s
		} else if s, exist := c.GetQuery("token"); exist {
			token = s
		}

		if token == "" {
			response.ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}

		operator, err := tm.Parse(token)
		if err != nil {
			response.ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}
		c.Set("operator", operator.Operator)

		c.Next()
	}
}
