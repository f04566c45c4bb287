package service

import (
	"context"

	"github.com/lumapix/photo-share-service/internal/domain"
)

// ScopeResolver resolves a scope config into the concrete asset set
// ScopeResolver 把范围配置解析为具体的照片集合
type ScopeResolver interface {
	// Resolve validates the scope against the event and returns the
	// approved assets it covers, ordered by folder then id.
	// Resolve 校验范围归属并返回其覆盖的已审核照片
	Resolve(ctx context.Context, eventID int64, scope *domain.ScopeConfig) ([]*domain.Asset, error)

	// OwnerEvent derives the owning event from the scope anchor when
	// the request does not name one.
	// OwnerEvent 请求未指明活动时，从范围锚点推导所属活动
	OwnerEvent(ctx context.Context, scope *domain.ScopeConfig) (int64, error)
}

// scopeResolver implementation of ScopeResolver interface
// scopeResolver 实现 ScopeResolver 接口
type scopeResolver struct {
	folderRepo domain.FolderRepository
	assetRepo  domain.AssetRepository
}

// NewScopeResolver creates ScopeResolver instance
// NewScopeResolver 创建 ScopeResolver 实例
func NewScopeResolver(folderRepo domain.FolderRepository, assetRepo domain.AssetRepository) ScopeResolver {
	return &scopeResolver{
		folderRepo: folderRepo,
		assetRepo:  assetRepo,
	}
}

func (s *scopeResolver) Resolve(ctx context.Context, eventID int64, scope *domain.ScopeConfig) ([]*domain.Asset, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	switch scope.Scope {
	case domain.ScopeEvent:
		return s.assetRepo.ListApprovedByEvent(ctx, eventID)

	case domain.ScopeFolder:
		return s.resolveFolder(ctx, eventID, scope)

	case domain.ScopeSelection:
		return s.resolveSelection(ctx, eventID, scope)
	}
	return nil, domain.ErrScopeInvalid
}

func (s *scopeResolver) OwnerEvent(ctx context.Context, scope *domain.ScopeConfig) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	switch scope.Scope {
	case domain.ScopeFolder:
		folder, err := s.folderRepo.GetAnyByID(ctx, scope.AnchorID)
		if err != nil {
			return 0, domain.ErrEventUnresolvable
		}
		return folder.EventID, nil

	case domain.ScopeSelection:
		asset, err := s.assetRepo.GetByID(ctx, scope.Filters.AssetIDs[0])
		if err != nil {
			return 0, domain.ErrEventUnresolvable
		}
		return asset.EventID, nil
	}

	// event 范围没有可推导的锚点
	return 0, domain.ErrEventUnresolvable
}

func (s *scopeResolver) resolveFolder(ctx context.Context, eventID int64, scope *domain.ScopeConfig) ([]*domain.Asset, error) {
	// 锚点目录必须存在且属于该活动
	if _, err := s.folderRepo.GetByID(ctx, scope.AnchorID, eventID); err != nil {
		return nil, domain.ErrScopeInvalid
	}

	folderIDs := []int64{scope.AnchorID}
	if scope.IncludeDescendants {
		ids, err := s.folderRepo.ListDescendantIDs(ctx, scope.AnchorID, eventID)
		if err != nil {
			return nil, err
		}
		folderIDs = ids
	}
	return s.assetRepo.ListApprovedByFolders(ctx, eventID, folderIDs)
}

// resolveSelection 清单内照片必须全部存在、属于该活动且已审核，
// 否则整体拒绝，不做静默裁剪。
func (s *scopeResolver) resolveSelection(ctx context.Context, eventID int64, scope *domain.ScopeConfig) ([]*domain.Asset, error) {
	assets, err := s.assetRepo.ListByIDs(ctx, eventID, scope.Filters.AssetIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]bool, len(assets))
	for _, a := range assets {
		if !a.IsApproved() {
			return nil, domain.ErrScopeInvalid
		}
		found[a.ID] = true
	}
	for _, id := range scope.Filters.AssetIDs {
		if !found[id] {
			return nil, domain.ErrScopeInvalid
		}
	}
	return assets, nil
}

var _ ScopeResolver = (*scopeResolver)(nil)
