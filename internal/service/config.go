// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"time"

	"github.com/lumapix/photo-share-service/pkg/util"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Share    ShareServiceConfig    // Share issuance config // 分享签发配置
	Security SecurityServiceConfig // Access security config // 访问安全配置
	URL      URLServiceConfig      // Signed URL config // 签名地址配置
}

// ShareServiceConfig share issuance configuration
// ShareServiceConfig 分享签发配置
type ShareServiceConfig struct {
	PublicBaseURL    string // Public share URL prefix, e.g. https://photos.example.com/s // 对外分享地址前缀
	DefaultExpiry    string // Default share lifetime (e.g., 30d), empty for no expiry // 默认有效期，空表示不过期
	MaxSelectionSize int    // Max assets in a selection scope // selection 范围的照片数量上限
	CleanupRetention string // How long revoked expired shares are kept (e.g., 30d) // 过期已撤销分享的保留时间
	AuditRetention   string // How long access logs are kept (e.g., 90d) // 审计日志保留时间
}

// SecurityServiceConfig access security configuration
// SecurityServiceConfig 访问安全配置
type SecurityServiceConfig struct {
	IPHourlyLimit    int64  // Max attempts per IP per window // 单 IP 窗口内访问上限
	TokenHourlyLimit int64  // Max attempts per token per window // 单 token 窗口内访问上限
	FailedThreshold  int64  // Failed attempts per IP that trip the suspicious block // 单 IP 失败次数封禁阈值
	Window           string // Sliding window size (e.g., 1h) // 滑动窗口大小
}

// URLServiceConfig signed URL configuration
// URLServiceConfig 签名地址配置
type URLServiceConfig struct {
	Expiry         string // Signed URL lifetime (e.g., 60m) // 签名地址有效期
	MaxConcurrency int    // Parallel signing workers // 并行签名数
}

// GetWindow 解析滑动窗口大小，非法取 1h
func (c *SecurityServiceConfig) GetWindow() time.Duration {
	if d, err := util.ParseDuration(c.Window); err == nil && d > 0 {
		return d
	}
	return time.Hour
}

// GetExpiry 解析签名地址有效期，非法取 60m
func (c *URLServiceConfig) GetExpiry() time.Duration {
	if d, err := util.ParseDuration(c.Expiry); err == nil && d > 0 {
		return d
	}
	return 60 * time.Minute
}
