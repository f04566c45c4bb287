// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lumapix/photo-share-service/internal/dao"
	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/service"
	pkgapp "github.com/lumapix/photo-share-service/pkg/app"
	"github.com/lumapix/photo-share-service/pkg/breaker"
	"github.com/lumapix/photo-share-service/pkg/storage"
	"github.com/lumapix/photo-share-service/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VersionInfo 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"git_tag"`
	BuildTime string `json:"build_time"`
}

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发与存储组件
	WorkerPool *workerpool.Pool
	Storage    storage.Storager
	Breaker    *breaker.Breaker

	// Repository 层
	EventRepo    domain.EventRepository
	FolderRepo   domain.FolderRepository
	AssetRepo    domain.AssetRepository
	ShareRepo    domain.ShareTokenRepository
	SnapshotRepo domain.ShareTokenAssetRepository
	AudienceRepo domain.ShareAudienceRepository
	AuditRepo    domain.ShareAccessLogRepository

	// Service 层
	ScopeResolver   service.ScopeResolver
	ShareService    service.ShareService
	AccessService   service.AccessService
	SecurityService service.SecurityService
	URLService      service.URLService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 启动时间与版本
	StartTime time.Time
	version   VersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, version VersionInfo) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
		version:   version,
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.WorkerPool = workerpool.New(&wpConfig, logger)

	// 初始化对象存储客户端
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.Storage = store

	// 初始化 DAO（使用依赖注入）
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(dbConfig),
		dao.WithLogger(logger),
	)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化访问计数熔断器
	a.Breaker = breaker.New(breaker.Config{
		FailureThreshold: cfg.Security.BreakerFailureThreshold,
		OpenTimeout:      cfg.GetBreakerOpenTimeout(),
	})

	// 初始化 Repository 层
	a.EventRepo = dao.NewEventRepository(a.Dao)
	a.FolderRepo = dao.NewFolderRepository(a.Dao)
	a.AssetRepo = dao.NewAssetRepository(a.Dao)
	a.ShareRepo = dao.NewShareTokenRepository(a.Dao)
	a.SnapshotRepo = dao.NewShareTokenAssetRepository(a.Dao)
	a.AudienceRepo = dao.NewShareAudienceRepository(a.Dao)
	a.AuditRepo = dao.NewShareAccessLogRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Share: service.ShareServiceConfig{
			PublicBaseURL:    cfg.Share.PublicBaseURL,
			DefaultExpiry:    cfg.Share.DefaultExpiry,
			MaxSelectionSize: cfg.Share.MaxSelectionSize,
			CleanupRetention: cfg.Share.CleanupRetention,
			AuditRetention:   cfg.Share.AuditRetention,
		},
		Security: service.SecurityServiceConfig{
			IPHourlyLimit:    cfg.Security.AccessIPHourlyLimit,
			TokenHourlyLimit: cfg.Security.AccessTokenHourlyLimit,
			FailedThreshold:  cfg.Security.AccessFailedThreshold,
			Window:           cfg.Security.AccessWindow,
		},
		URL: service.URLServiceConfig{
			Expiry:         cfg.Share.SignedURLExpiry,
			MaxConcurrency: cfg.Share.SignConcurrency,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.ScopeResolver = service.NewScopeResolver(a.FolderRepo, a.AssetRepo)
	a.SecurityService = service.NewSecurityService(a.AuditRepo, a.Breaker, logger, svcConfig)
	a.URLService = service.NewURLService(a.Storage, logger, svcConfig)
	a.ShareService = service.NewShareService(a.EventRepo, a.ShareRepo, a.SnapshotRepo,
		a.AudienceRepo, a.AuditRepo, a.ScopeResolver, logger, svcConfig)
	a.AccessService = service.NewAccessService(a.ShareRepo, a.SnapshotRepo, a.AssetRepo,
		a.EventRepo, a.SecurityService, a.URLService, a.WorkerPool, logger)

	logger.Info("App container initialized successfully",
		zap.String("storageType", string(cfg.Storage.Type)),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.WorkerPool != nil {
		a.WorkerPool.Shutdown()
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() VersionInfo {
	return a.version
}
