package service

import (
	"context"
	"strings"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	"github.com/lumapix/photo-share-service/pkg/logger"
	"github.com/lumapix/photo-share-service/pkg/util"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// token 碰撞时重新生成的次数上限，256 位随机值碰撞基本只存在于理论
const maxTokenAttempts = 3

// ShareService defines the share issuance business interface
// ShareService 定义分享签发业务接口
type ShareService interface {
	// CreateShare resolves the scope, snapshots it and issues a token
	// CreateShare 解析范围、建立快照并签发分享 Token
	CreateShare(ctx context.Context, req *dto.ShareCreateRequest) (*dto.ShareResponse, error)

	// GetShare retrieves a share by id
	// GetShare 根据 ID 获取分享详情
	GetShare(ctx context.Context, id int64) (*dto.ShareResponse, error)

	// ListShares lists shares of an event
	// ListShares 分页列出活动下的分享
	ListShares(ctx context.Context, eventID int64, page, pageSize int) (*dto.ShareListResponse, error)

	// RevokeShare revokes a share
	// RevokeShare 撤销分享
	RevokeShare(ctx context.Context, id int64) error

	// RevokeByFolder revokes all active shares anchored to a folder
	// RevokeByFolder 撤销锚定某目录的全部有效分享
	RevokeByFolder(ctx context.Context, eventID int64, folderID int64) (int64, error)

	// RotateToken replaces the token of a share, keeping its snapshot
	// RotateToken 轮换分享 Token，保留原快照
	RotateToken(ctx context.Context, id int64) (*dto.ShareResponse, error)

	// GetStats returns per-share access statistics
	// GetStats 获取分享的访问统计
	GetStats(ctx context.Context, id int64) (*dto.ShareStatsResponse, error)

	// ListAccessLogs lists audit records of a token
	// ListAccessLogs 分页列出某 token 的审计记录
	ListAccessLogs(ctx context.Context, token string, page, pageSize int) ([]*dto.AccessLogResponse, error)

	// Cleanup removes expired shares and stale audit records
	// Cleanup 清理过期分享与陈旧审计记录
	Cleanup(ctx context.Context) (shares int64, logs int64, err error)
}

// shareService implementation of ShareService interface
// shareService 实现 ShareService 接口
type shareService struct {
	eventRepo    domain.EventRepository
	shareRepo    domain.ShareTokenRepository
	snapshotRepo domain.ShareTokenAssetRepository
	audienceRepo domain.ShareAudienceRepository
	auditRepo    domain.ShareAccessLogRepository
	resolver     ScopeResolver
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewShareService creates ShareService instance
// NewShareService 创建 ShareService 实例
func NewShareService(
	eventRepo domain.EventRepository,
	shareRepo domain.ShareTokenRepository,
	snapshotRepo domain.ShareTokenAssetRepository,
	audienceRepo domain.ShareAudienceRepository,
	auditRepo domain.ShareAccessLogRepository,
	resolver ScopeResolver,
	log *zap.Logger,
	config *ServiceConfig,
) ShareService {
	return &shareService{
		eventRepo:    eventRepo,
		shareRepo:    shareRepo,
		snapshotRepo: snapshotRepo,
		audienceRepo: audienceRepo,
		auditRepo:    auditRepo,
		resolver:     resolver,
		logger:       log,
		config:       config,
	}
}

func (s *shareService) CreateShare(ctx context.Context, req *dto.ShareCreateRequest) (*dto.ShareResponse, error) {
	scope, err := normalizeScope(req)
	if err != nil {
		return nil, err
	}
	if max := s.config.Share.MaxSelectionSize; max > 0 && len(scope.Filters.AssetIDs) > max {
		return nil, domain.ErrScopeInvalid
	}

	// 请求未指明活动时从范围锚点推导
	eventID := req.EventID
	if eventID == 0 {
		eventID, err = s.resolver.OwnerEvent(ctx, scope)
		if err != nil {
			return nil, err
		}
	}

	event, err := s.eventRepo.GetActiveByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventUnresolvable
	}

	// 空结果集不是错误，空相册同样可以签发分享
	assets, err := s.resolver.Resolve(ctx, event.ID, scope)
	if err != nil {
		return nil, err
	}

	passwordHash := ""
	if req.Password != "" {
		passwordHash, err = util.GeneratePasswordHash(req.Password)
		if err != nil {
			return nil, errors.Wrap(err, "hash share password")
		}
	}

	expiresAt, err := s.resolveExpiry(req.ExpiresIn)
	if err != nil {
		return nil, domain.ErrScopeInvalid
	}

	allowDownload := true
	if req.AllowDownload != nil {
		allowDownload = *req.AllowDownload
	}

	share := &domain.ShareToken{
		EventID:       event.ID,
		Scope:         *scope,
		Title:         req.Title,
		Description:   req.Description,
		PasswordHash:  passwordHash,
		ExpiresAt:     expiresAt,
		MaxViews:      req.MaxViews,
		AllowDownload: allowDownload,
		AllowComments: req.AllowComments,
		IsActive:      true,
		Metadata:      req.Metadata,
	}

	created, outcome, err := s.persistWithFreshToken(ctx, share)
	if err != nil {
		return nil, err
	}

	assetCount := 0
	if scope.Snapshotted() {
		ids := make([]int64, 0, len(assets))
		for _, a := range assets {
			ids = append(ids, a.ID)
		}
		if err := s.snapshotRepo.ReplaceForToken(ctx, created.ID, ids); err != nil {
			// 快照失败的分享不可用，撤销后报错
			_ = s.shareRepo.Revoke(ctx, created.ID)
			return nil, errors.Wrap(err, "snapshot share scope")
		}
		assetCount = len(ids)
	}

	if len(req.Audience) > 0 {
		audiences := make([]*domain.ShareAudience, 0, len(req.Audience))
		for _, email := range req.Audience {
			audiences = append(audiences, &domain.ShareAudience{Identifier: email})
		}
		if err := s.audienceRepo.RegisterBatch(ctx, created.ID, audiences); err != nil {
			s.logger.Warn("register share audience failed",
				zap.Int64("shareID", created.ID), zap.Error(err))
		}
	}

	s.logger.Info("share issued",
		zap.String("token", logger.TokenPrefix(created.Token)),
		zap.Int64("eventID", event.ID),
		zap.String("scope", string(scope.Scope)),
		zap.Int("assetCount", assetCount),
		zap.Bool("degraded", outcome == domain.PersistDegraded))

	resp := s.toResponse(created, assetCount)
	resp.AudienceCount = s.audienceCount(ctx, created.ID)
	resp.Degraded = outcome == domain.PersistDegraded
	return resp, nil
}

// normalizeScope 旧式 share_type 请求合成等价的范围配置
func normalizeScope(req *dto.ShareCreateRequest) (*domain.ScopeConfig, error) {
	scopeType := req.Scope
	if scopeType == "" {
		switch req.ShareType {
		case "folder":
			scopeType = string(domain.ScopeFolder)
		case "photos":
			scopeType = string(domain.ScopeSelection)
		case "event":
			scopeType = string(domain.ScopeEvent)
		default:
			return nil, domain.ErrScopeInvalid
		}
	}
	return &domain.ScopeConfig{
		Scope:              domain.ScopeType(scopeType),
		AnchorID:           req.AnchorID,
		IncludeDescendants: req.IncludeDescendants,
		Filters:            domain.ScopeFilters{AssetIDs: util.RemoveDuplicate(req.AssetIDs)},
	}, nil
}

// persistWithFreshToken token 碰撞时换新 token 重试
func (s *shareService) persistWithFreshToken(ctx context.Context, share *domain.ShareToken) (*domain.ShareToken, domain.PersistOutcome, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := util.GenerateShareToken()
		if err != nil {
			return nil, domain.PersistFailed, errors.Wrap(err, "generate share token")
		}
		share.Token = token

		created, outcome, err := s.shareRepo.Create(ctx, share)
		if err == nil {
			return created, outcome, nil
		}
		if !errors.Is(err, domain.ErrPersistDuplicate) {
			return nil, outcome, err
		}
		s.logger.Warn("share token collision, regenerating",
			zap.String("token", logger.TokenPrefix(token)), zap.Int("attempt", attempt+1))
	}
	return nil, domain.PersistFailed, domain.ErrPersistDuplicate
}

func (s *shareService) resolveExpiry(expiresIn string) (*time.Time, error) {
	expiresIn = strings.TrimSpace(expiresIn)
	if expiresIn == "" {
		expiresIn = s.config.Share.DefaultExpiry
	}
	if expiresIn == "" || expiresIn == "0" {
		return nil, nil
	}
	d, err := util.ParseDuration(expiresIn)
	if err != nil || d <= 0 {
		return nil, errors.New("invalid expiry duration")
	}
	t := time.Now().Add(d)
	return &t, nil
}

func (s *shareService) GetShare(ctx context.Context, id int64) (*dto.ShareResponse, error) {
	share, err := s.shareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(share, s.snapshotCount(ctx, share))
	resp.AudienceCount = s.audienceCount(ctx, share.ID)
	return resp, nil
}

func (s *shareService) ListShares(ctx context.Context, eventID int64, page, pageSize int) (*dto.ShareListResponse, error) {
	total, err := s.shareRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	shares, err := s.shareRepo.ListByEvent(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ShareResponse, 0, len(shares))
	for _, share := range shares {
		resp := s.toResponse(share, s.snapshotCount(ctx, share))
		resp.AudienceCount = s.audienceCount(ctx, share.ID)
		list = append(list, resp)
	}
	return &dto.ShareListResponse{List: list, Total: total}, nil
}

func (s *shareService) RevokeShare(ctx context.Context, id int64) error {
	if err := s.shareRepo.Revoke(ctx, id); err != nil {
		return err
	}
	s.logger.Info("share revoked", zap.Int64("shareID", id))
	return nil
}

func (s *shareService) RevokeByFolder(ctx context.Context, eventID int64, folderID int64) (int64, error) {
	n, err := s.shareRepo.DeactivateByAnchor(ctx, eventID, domain.ScopeFolder, folderID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("shares revoked by folder",
			zap.Int64("eventID", eventID), zap.Int64("folderID", folderID), zap.Int64("count", n))
	}
	return n, nil
}

// RotateToken 新 token 新行、旧行撤销，历史审计仍指向旧 token
func (s *shareService) RotateToken(ctx context.Context, id int64) (*dto.ShareResponse, error) {
	old, err := s.shareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !old.IsActive {
		return nil, domain.ErrShareInactive
	}

	var next domain.ShareToken
	if err := copier.Copy(&next, old); err != nil {
		return nil, errors.Wrap(err, "copy share for rotation")
	}
	next.ID = 0
	next.ViewCount = 0
	next.LastViewedAt = nil
	next.CreatedAt = time.Time{}

	created, _, err := s.persistWithFreshToken(ctx, &next)
	if err != nil {
		return nil, err
	}

	assetCount := 0
	if old.Scope.Snapshotted() {
		ids, err := s.snapshotRepo.ListAssetIDs(ctx, old.ID)
		if err != nil {
			return nil, err
		}
		if err := s.snapshotRepo.ReplaceForToken(ctx, created.ID, ids); err != nil {
			_ = s.shareRepo.Revoke(ctx, created.ID)
			return nil, errors.Wrap(err, "copy share snapshot")
		}
		assetCount = len(ids)
	}

	// 受众名单随轮换迁移到新行
	if audiences, err := s.audienceRepo.ListByToken(ctx, old.ID); err == nil && len(audiences) > 0 {
		if err := s.audienceRepo.RegisterBatch(ctx, created.ID, audiences); err != nil {
			s.logger.Warn("copy share audience failed",
				zap.Int64("shareID", created.ID), zap.Error(err))
		}
	}

	if err := s.shareRepo.Revoke(ctx, old.ID); err != nil {
		return nil, err
	}

	s.logger.Info("share token rotated",
		zap.Int64("oldShareID", old.ID),
		zap.Int64("newShareID", created.ID),
		zap.String("token", logger.TokenPrefix(created.Token)))
	resp := s.toResponse(created, assetCount)
	resp.AudienceCount = s.audienceCount(ctx, created.ID)
	return resp, nil
}

func (s *shareService) GetStats(ctx context.Context, id int64) (*dto.ShareStatsResponse, error) {
	share, err := s.shareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	window := s.config.Security.GetWindow()
	since := time.Now().Add(-window)
	total, err := s.auditRepo.CountByTokenSince(ctx, share.Token, since)
	if err != nil {
		return nil, err
	}

	return &dto.ShareStatsResponse{
		ShareID:      share.ID,
		ViewCount:    share.ViewCount,
		MaxViews:     share.MaxViews,
		WindowTotal:  total,
		LastViewedAt: share.LastViewedAt,
		IsActive:     share.IsActive,
		ExpiresAt:    share.ExpiresAt,
	}, nil
}

func (s *shareService) ListAccessLogs(ctx context.Context, token string, page, pageSize int) ([]*dto.AccessLogResponse, error) {
	logs, err := s.auditRepo.ListByToken(ctx, token, page, pageSize)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.AccessLogResponse, 0, len(logs))
	for _, l := range logs {
		list = append(list, &dto.AccessLogResponse{
			ID:            l.ID,
			IP:            l.IP,
			UserAgent:     l.UserAgent,
			Success:       l.Success,
			FailureReason: l.FailureReason,
			CreatedAt:     l.CreatedAt,
		})
	}
	return list, nil
}

func (s *shareService) Cleanup(ctx context.Context) (int64, int64, error) {
	now := time.Now()

	var shares int64
	if d, err := util.ParseDuration(s.config.Share.CleanupRetention); err == nil && d > 0 {
		n, err := s.shareRepo.DeleteExpiredBefore(ctx, now.Add(-d))
		if err != nil {
			return 0, 0, err
		}
		shares = n
	}

	var logs int64
	if d, err := util.ParseDuration(s.config.Share.AuditRetention); err == nil && d > 0 {
		n, err := s.auditRepo.DeleteOlderThan(ctx, now.Add(-d))
		if err != nil {
			return shares, 0, err
		}
		logs = n
	}

	if shares > 0 || logs > 0 {
		s.logger.Info("share cleanup finished",
			zap.Int64("shares", shares), zap.Int64("logs", logs))
	}
	return shares, logs, nil
}

func (s *shareService) snapshotCount(ctx context.Context, share *domain.ShareToken) int {
	if !share.Scope.Snapshotted() {
		return 0
	}
	ids, err := s.snapshotRepo.ListAssetIDs(ctx, share.ID)
	if err != nil {
		return 0
	}
	return len(ids)
}

func (s *shareService) audienceCount(ctx context.Context, shareID int64) int {
	n, err := s.audienceRepo.CountByToken(ctx, shareID)
	if err != nil {
		return 0
	}
	return int(n)
}

func (s *shareService) toResponse(share *domain.ShareToken, assetCount int) *dto.ShareResponse {
	url := share.Token
	if base := strings.TrimRight(s.config.Share.PublicBaseURL, "/"); base != "" {
		url = base + "/" + share.Token
	}
	return &dto.ShareResponse{
		ID:                 share.ID,
		Token:              share.Token,
		URL:                url,
		EventID:            share.EventID,
		Scope:              string(share.Scope.Scope),
		AnchorID:           share.Scope.AnchorID,
		IncludeDescendants: share.Scope.IncludeDescendants,
		Title:              share.Title,
		Description:        share.Description,
		HasPassword:        share.HasPassword(),
		ExpiresAt:          share.ExpiresAt,
		MaxViews:           share.MaxViews,
		ViewCount:          share.ViewCount,
		AllowDownload:      share.AllowDownload,
		AllowComments:      share.AllowComments,
		IsActive:           share.IsActive,
		AssetCount:         assetCount,
		LastViewedAt:       share.LastViewedAt,
		CreatedAt:          share.CreatedAt,
	}
}

var _ ShareService = (*shareService)(nil)
