package service

import (
	"context"
	"strings"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	"github.com/lumapix/photo-share-service/pkg/logger"
	"github.com/lumapix/photo-share-service/pkg/util"
	"github.com/lumapix/photo-share-service/pkg/workerpool"

	"go.uber.org/zap"
)

// AccessService defines the visitor-side share access interface
// AccessService 定义访客侧分享访问接口
type AccessService interface {
	// Access validates an access attempt and returns the gallery payload.
	// The checks run in a fixed order: token format, throttling, lookup,
	// expiry, view limit, password, then grant.
	// Access 校验访问请求并返回相册内容，检查按固定顺序执行：
	// 格式 → 限流 → 查找 → 过期 → 次数 → 口令 → 放行
	Access(ctx context.Context, req *dto.AccessRequest, ip string, userAgent string) (*dto.AccessResponse, error)
}

// accessService implementation of AccessService interface
// accessService 实现 AccessService 接口
type accessService struct {
	shareRepo    domain.ShareTokenRepository
	snapshotRepo domain.ShareTokenAssetRepository
	assetRepo    domain.AssetRepository
	eventRepo    domain.EventRepository
	security     SecurityService
	urls         URLService
	pool         *workerpool.Pool
	logger       *zap.Logger
}

// NewAccessService creates AccessService instance
// NewAccessService 创建 AccessService 实例
func NewAccessService(
	shareRepo domain.ShareTokenRepository,
	snapshotRepo domain.ShareTokenAssetRepository,
	assetRepo domain.AssetRepository,
	eventRepo domain.EventRepository,
	security SecurityService,
	urls URLService,
	pool *workerpool.Pool,
	log *zap.Logger,
) AccessService {
	return &accessService{
		shareRepo:    shareRepo,
		snapshotRepo: snapshotRepo,
		assetRepo:    assetRepo,
		eventRepo:    eventRepo,
		security:     security,
		urls:         urls,
		pool:         pool,
		logger:       log,
	}
}

func (s *accessService) Access(ctx context.Context, req *dto.AccessRequest, ip string, userAgent string) (*dto.AccessResponse, error) {
	token := strings.ToLower(strings.TrimSpace(req.Token))

	// 1. 格式检查，不合法的 token 不触库
	if !util.IsValidShareToken(token) {
		s.record(ctx, token, ip, userAgent, false, domain.FailureInvalidFormat)
		return nil, domain.ErrShareNotFound
	}

	// 2. 滑动窗口限流，计数故障时放行
	if err := s.security.CheckAccess(ctx, token, ip); err != nil {
		reason := domain.FailureRateLimited
		if err == domain.ErrAccessSuspiciousIP {
			reason = domain.FailureSuspiciousIP
		}
		s.record(ctx, token, ip, userAgent, false, reason)
		return nil, err
	}

	// 3. 查找有效分享，不区分不存在与已撤销
	share, err := s.shareRepo.GetActiveByToken(ctx, token)
	if err != nil {
		s.record(ctx, token, ip, userAgent, false, domain.FailureNotFound)
		return nil, domain.ErrShareNotFound
	}

	now := time.Now()

	// 4. 过期检查
	if share.ExpiredAt(now) {
		s.record(ctx, token, ip, userAgent, false, domain.FailureExpired)
		return nil, domain.ErrShareExpired
	}

	// 5. 访问次数检查
	if share.ViewsExhausted() {
		s.record(ctx, token, ip, userAgent, false, domain.FailureMaxViews)
		return nil, domain.ErrShareMaxViews
	}

	// 6. 口令检查，缺口令与口令错误分开上报
	if share.HasPassword() {
		if req.Password == "" {
			s.record(ctx, token, ip, userAgent, false, domain.FailurePasswordRequired)
			return nil, domain.ErrSharePasswordNeeded
		}
		if !util.CheckPasswordHash(share.PasswordHash, req.Password) {
			s.record(ctx, token, ip, userAgent, false, domain.FailurePasswordWrong)
			return nil, domain.ErrSharePasswordWrong
		}
	}

	// 7. 放行：取照片集合并签地址
	assets, err := s.collectAssets(ctx, share)
	if err != nil {
		return nil, err
	}

	signed, urlExpiresAt, err := s.urls.SignAssets(ctx, assets)
	if err != nil {
		return nil, err
	}

	// 计数自增走后台，失败不阻断本次访问
	shareID := share.ID
	s.dispatch(func(bg context.Context) error {
		if err := s.shareRepo.IncrementViewCount(bg, shareID, now); err != nil {
			s.logger.Warn("increment view count failed",
				zap.Int64("shareID", shareID), zap.Error(err))
		}
		return nil
	})
	s.record(ctx, token, ip, userAgent, true, "")

	eventName := ""
	if event, err := s.eventRepo.GetByID(ctx, share.EventID); err == nil {
		eventName = event.Name
	}

	viewsLeft := int64(-1)
	if share.MaxViews > 0 {
		viewsLeft = share.MaxViews - share.ViewCount - 1
		if viewsLeft < 0 {
			viewsLeft = 0
		}
	}

	return &dto.AccessResponse{
		Title:         share.Title,
		Description:   share.Description,
		EventName:     eventName,
		AllowDownload: share.AllowDownload,
		AllowComments: share.AllowComments,
		ExpiresAt:     share.ExpiresAt,
		ViewsLeft:     viewsLeft,
		Assets:        signed,
		URLExpiresAt:  urlExpiresAt,
	}, nil
}

// collectAssets 快照范围按快照取，event 范围实时取。
// 快照里已被删除的照片静默跳过。
func (s *accessService) collectAssets(ctx context.Context, share *domain.ShareToken) ([]*domain.Asset, error) {
	if !share.Scope.Snapshotted() {
		return s.assetRepo.ListApprovedByEvent(ctx, share.EventID)
	}

	ids, err := s.snapshotRepo.ListAssetIDs(ctx, share.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.assetRepo.ListByIDs(ctx, share.EventID, ids)
}

// dispatch 将写操作交给 Worker Pool，池未配置或已满时就地执行。
// 后台任务不继承请求的 context，请求结束不取消写入。
func (s *accessService) dispatch(fn func(context.Context) error) {
	if s.pool == nil {
		_ = fn(context.Background())
		return
	}
	if err := s.pool.Submit(context.Background(), fn); err != nil {
		_ = fn(context.Background())
	}
}

func (s *accessService) record(ctx context.Context, token string, ip string, userAgent string, success bool, reason string) {
	s.security.Record(ctx, &domain.ShareAccessLog{
		Token:         token,
		IP:            ip,
		UserAgent:     userAgent,
		Success:       success,
		FailureReason: reason,
	})
	if !success {
		s.logger.Info("share access denied",
			zap.String("token", logger.TokenPrefix(token)),
			zap.String("ip", ip),
			zap.String("reason", reason))
	}
}

var _ AccessService = (*accessService)(nil)
