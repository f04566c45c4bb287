package routers

import (
	"time"

	"github.com/lumapix/photo-share-service/internal/app"
	"github.com/lumapix/photo-share-service/internal/middleware"
	"github.com/lumapix/photo-share-service/internal/routers/api_router"
	"github.com/lumapix/photo-share-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// 访客访问入口的令牌桶限流，审计层的滑动窗口在服务层另行执行
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/access",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 构建 gin 引擎并挂载全部路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.TracerWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		accessHandler := api_router.NewAccessHandler(appContainer)
		shareHandler := api_router.NewShareHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 访客侧接口（无需认证，凭 token 本身放行）
		api.POST("/access", accessHandler.Access)
		api.GET("/access", accessHandler.Access)

		api.GET("/health", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)

		// 管理端接口
		authToken := middleware.AdminAuthToken(appContainer.TokenManager)
		api.Use(authToken).POST("/shares", shareHandler.Create)
		api.Use(authToken).GET("/shares", shareHandler.List)
		api.Use(authToken).GET("/shares/detail", shareHandler.Get)
		api.Use(authToken).POST("/shares/revoke", shareHandler.Revoke)
		api.Use(authToken).POST("/shares/revoke-by-folder", shareHandler.RevokeByFolder)
		api.Use(authToken).POST("/shares/rotate", shareHandler.Rotate)
		api.Use(authToken).GET("/shares/stats", shareHandler.Stats)
		api.Use(authToken).GET("/shares/logs", shareHandler.AccessLogs)
		api.Use(authToken).GET("/shares/suspicious-ips", shareHandler.SuspiciousIPs)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
