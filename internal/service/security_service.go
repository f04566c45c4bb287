package service

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	"github.com/lumapix/photo-share-service/pkg/breaker"
	"github.com/lumapix/photo-share-service/pkg/logger"

	"go.uber.org/zap"
)

// SecurityService defines the access throttling and audit interface
// SecurityService 定义访问限流与审计接口
type SecurityService interface {
	// CheckAccess enforces sliding-window limits for an attempt.
	// Counting failures fail open: a broken audit store must not
	// lock visitors out of their galleries.
	// CheckAccess 执行滑动窗口限流检查，计数故障时放行（fail-open）
	CheckAccess(ctx context.Context, token string, ip string) error

	// Record appends an audit entry, errors are logged not returned
	// Record 追加审计记录，失败只记日志不向上传播
	Record(ctx context.Context, entry *domain.ShareAccessLog)

	// ListSuspiciousIPs lists IPs over the failure threshold in the window
	// ListSuspiciousIPs 列出窗口内失败次数超阈值的 IP
	ListSuspiciousIPs(ctx context.Context) (*dto.SuspiciousIPResponse, error)
}

// securityService implementation of SecurityService interface
// securityService 实现 SecurityService 接口
type securityService struct {
	auditRepo domain.ShareAccessLogRepository
	breaker   *breaker.Breaker
	logger    *zap.Logger
	config    *ServiceConfig
}

// NewSecurityService creates SecurityService instance
// NewSecurityService 创建 SecurityService 实例
func NewSecurityService(auditRepo domain.ShareAccessLogRepository, b *breaker.Breaker, log *zap.Logger, config *ServiceConfig) SecurityService {
	return &securityService{
		auditRepo: auditRepo,
		breaker:   b,
		logger:    log,
		config:    config,
	}
}

func (s *securityService) CheckAccess(ctx context.Context, token string, ip string) error {
	if !s.breaker.Allow() {
		// 计数后端持续故障，熔断期间直接放行
		s.logger.Warn("access counting circuit open, failing open",
			zap.String("ip", ip), zap.String("token", logger.TokenPrefix(token)))
		return nil
	}

	cfg := &s.config.Security
	since := time.Now().Add(-cfg.GetWindow())

	failed, err := s.auditRepo.CountFailedByIPSince(ctx, ip, since)
	if err != nil {
		return s.failOpen(err, ip)
	}
	if cfg.FailedThreshold > 0 && failed >= cfg.FailedThreshold {
		s.breaker.MarkSuccess()
		return domain.ErrAccessSuspiciousIP
	}

	byIP, err := s.auditRepo.CountByIPSince(ctx, ip, since)
	if err != nil {
		return s.failOpen(err, ip)
	}
	if cfg.IPHourlyLimit > 0 && byIP >= cfg.IPHourlyLimit {
		s.breaker.MarkSuccess()
		return domain.ErrAccessRateLimited
	}

	byToken, err := s.auditRepo.CountByTokenSince(ctx, token, since)
	if err != nil {
		return s.failOpen(err, ip)
	}
	if cfg.TokenHourlyLimit > 0 && byToken >= cfg.TokenHourlyLimit {
		s.breaker.MarkSuccess()
		return domain.ErrAccessRateLimited
	}

	s.breaker.MarkSuccess()
	return nil
}

// failOpen 计数失败时记失败并放行
func (s *securityService) failOpen(err error, ip string) error {
	s.breaker.MarkFailure()
	s.logger.Warn("access counting failed, failing open",
		zap.String("ip", ip), zap.Error(err))
	return nil
}

func (s *securityService) Record(ctx context.Context, entry *domain.ShareAccessLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("append access log failed",
			zap.String("ip", entry.IP),
			zap.String("token", logger.TokenPrefix(entry.Token)),
			zap.Error(err))
	}
}

func (s *securityService) ListSuspiciousIPs(ctx context.Context) (*dto.SuspiciousIPResponse, error) {
	cfg := &s.config.Security
	now := time.Now()
	ips, err := s.auditRepo.ListSuspiciousIPs(ctx, now.Add(-cfg.GetWindow()), cfg.FailedThreshold)
	if err != nil {
		return nil, err
	}
	return &dto.SuspiciousIPResponse{
		IPs:       ips,
		Window:    cfg.GetWindow().String(),
		Threshold: cfg.FailedThreshold,
		CheckedAt: now,
	}, nil
}

var _ SecurityService = (*securityService)(nil)
