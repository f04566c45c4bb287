// Package dao 提供数据访问层，基于 gorm 实现 domain 仓储接口
package dao

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/fileurl"
	"github.com/lumapix/photo-share-service/pkg/util"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型: sqlite / mysql / postgres
	Type string
	// Path SQLite 数据库文件路径
	Path string
	// UserName 用户名
	UserName string
	// Password 密码
	Password string
	// Host 主机 (host:port)
	Host string
	// Name 数据库名
	Name string
	// TablePrefix 表前缀
	TablePrefix string
	// AutoMigrate 是否启用惰性自动迁移
	AutoMigrate bool
	// Charset 字符集 (mysql)
	Charset string
	// ParseTime 是否解析时间 (mysql)
	ParseTime bool
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int
	// ConnMaxLifetime 连接最大生命周期，支持 30m / 1h / 1d 格式
	ConnMaxLifetime string
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string
	// RunMode 运行模式，debug 时开启 SQL 日志
	RunMode string
}

// Dao 数据访问对象，持有数据库连接并负责惰性迁移
type Dao struct {
	db       *gorm.DB
	ctx      context.Context
	config   *DatabaseConfig
	logger   *zap.Logger
	migrated sync.Map // model key -> *sync.Once
}

// Option Dao 配置选项
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = c
	}
}

// WithLogger 注入日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = l
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		db:  db,
		ctx: ctx,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB 获取底层数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// use 返回绑定上下文的会话，并对涉及的模型执行一次惰性迁移。
// 迁移失败只记录日志，由后续 SQL 的报错暴露真实问题。
func (d *Dao) use(ctx context.Context, models ...string) *gorm.DB {
	if d.config == nil || d.config.AutoMigrate {
		for _, name := range models {
			v, _ := d.migrated.LoadOrStore(name, &sync.Once{})
			v.(*sync.Once).Do(func() {
				if err := model.AutoMigrate(d.db, name); err != nil {
					d.logger.Warn("auto migrate failed",
						zap.String("model", name), zap.Error(err))
				}
			})
		}
	}
	return d.db.WithContext(ctx)
}

// NewDBEngine 创建 GORM 数据库引擎
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch c.Type {
	case "sqlite":
		if c.Path != "" && c.Path != ":memory:" {
			if err := fileurl.CreatePath(filepath.Dir(c.Path), 0755); err != nil {
				return nil, err
			}
		}
		dialector = sqlite.Open(c.Path)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.UserName, c.Password, c.Name)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if idleTime, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idleTime > 0 {
		sqlDB.SetConnMaxIdleTime(idleTime)
	} else {
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	return db, nil
}
