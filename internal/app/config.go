// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/lumapix/photo-share-service/pkg/storage"
	"github.com/lumapix/photo-share-service/pkg/util"
	"github.com/lumapix/photo-share-service/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Security SecurityConfig `yaml:"security"`
	Share    ShareConfig    `yaml:"share"`
	Storage  storage.Config `yaml:"storage"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，默认为 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	// AuthTokenKey 管理端 JWT 签名密钥
	AuthTokenKey string `yaml:"auth-token-key" default:"photo-share-Auth-Token"`
	// TokenExpiry 管理端 Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
	// AccessIPHourlyLimit 单 IP 窗口内访问上限，0 关闭
	AccessIPHourlyLimit int64 `yaml:"access-ip-hourly-limit" default:"50"`
	// AccessTokenHourlyLimit 单 token 窗口内访问上限，0 关闭
	AccessTokenHourlyLimit int64 `yaml:"access-token-hourly-limit" default:"100"`
	// AccessFailedThreshold 单 IP 失败次数封禁阈值，0 关闭
	AccessFailedThreshold int64 `yaml:"access-failed-threshold" default:"20"`
	// AccessWindow 滑动窗口大小
	AccessWindow string `yaml:"access-window" default:"1h"`
	// BreakerFailureThreshold 计数后端熔断的连续失败阈值
	BreakerFailureThreshold int `yaml:"breaker-failure-threshold" default:"3"`
	// BreakerOpenTimeout 熔断打开后的试探间隔
	BreakerOpenTimeout string `yaml:"breaker-open-timeout" default:"30s"`
}

// ShareConfig 分享配置
type ShareConfig struct {
	// PublicBaseURL 对外分享地址前缀
	PublicBaseURL string `yaml:"public-base-url"`
	// DefaultExpiry 默认有效期，空或 0 表示不过期
	DefaultExpiry string `yaml:"default-expiry" default:"30d"`
	// MaxSelectionSize selection 范围的照片数量上限
	MaxSelectionSize int `yaml:"max-selection-size" default:"5000"`
	// SignedURLExpiry 签名地址有效期
	SignedURLExpiry string `yaml:"signed-url-expiry" default:"60m"`
	// SignConcurrency 并行签名数
	SignConcurrency int `yaml:"sign-concurrency" default:"8"`
	// CleanupRetention 过期已撤销分享的保留时间，空或 0 表示不清理
	CleanupRetention string `yaml:"cleanup-retention" default:"30d"`
	// AuditRetention 审计日志保留时间，空或 0 表示不清理
	AuditRetention string `yaml:"audit-retention" default:"90d"`
	// CleanupInterval 后台清理任务间隔
	CleanupInterval string `yaml:"cleanup-interval" default:"1h"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"20"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"200"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"32"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"256"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// GetTokenExpiry 解析管理端 Token 过期时间，非法取 7 天
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if d, err := util.ParseDuration(c.Security.TokenExpiry); err == nil && d > 0 {
		return d
	}
	return 7 * 24 * time.Hour
}

// GetBreakerOpenTimeout 解析熔断试探间隔，非法取 30 秒
func (c *AppConfig) GetBreakerOpenTimeout() time.Duration {
	if d, err := util.ParseDuration(c.Security.BreakerOpenTimeout); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

// GetCleanupInterval 解析清理任务间隔，非法取 1 小时
func (c *AppConfig) GetCleanupInterval() time.Duration {
	if d, err := util.ParseDuration(c.Share.CleanupInterval); err == nil && d > 0 {
		return d
	}
	return time.Hour
}

// GetWorkerPoolConfig 提取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}
	return cfg
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	return c, realpath, nil
}

// SaveConfig 把当前配置写回文件
func (c *AppConfig) SaveConfig() error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	return os.WriteFile(c.File, out, 0644)
}
