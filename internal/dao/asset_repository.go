package dao

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/util"
)

// IN 查询的分批大小，避免 SQL 变量数超限
const assetQueryChunkSize = 500

// assetRepository 实现 domain.AssetRepository 接口
type assetRepository struct {
	dao *Dao
}

// NewAssetRepository 创建 AssetRepository 实例
func NewAssetRepository(dao *Dao) domain.AssetRepository {
	return &assetRepository{dao: dao}
}

func (r *assetRepository) toDomain(m *model.Asset) *domain.Asset {
	if m == nil {
		return nil
	}
	return &domain.Asset{
		ID:            m.ID,
		EventID:       m.EventID,
		FolderID:      m.FolderID,
		FileName:      m.FileName,
		OriginalPath:  m.OriginalPath,
		PreviewPath:   m.PreviewPath,
		WatermarkPath: m.WatermarkPath,
		Status:        m.Status,
		SizeBytes:     m.SizeBytes,
		MimeType:      m.MimeType,
		CreatedAt:     time.Time(m.CreatedAt),
		UpdatedAt:     time.Time(m.UpdatedAt),
	}
}

func (r *assetRepository) toDomainList(ms []*model.Asset) []*domain.Asset {
	ds := make([]*domain.Asset, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, r.toDomain(m))
	}
	return ds
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	var m model.Asset
	if err := r.dao.use(ctx, "Asset").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByIDs 分批查询，结果顺序不保证与传入一致
func (r *assetRepository) ListByIDs(ctx context.Context, eventID int64, ids []int64) ([]*domain.Asset, error) {
	var ds []*domain.Asset
	for _, chunk := range util.ChunkSlice(ids, assetQueryChunkSize) {
		var ms []*model.Asset
		err := r.dao.use(ctx, "Asset").
			Where("event_id = ? AND id IN ?", eventID, chunk).
			Find(&ms).Error
		if err != nil {
			return nil, err
		}
		ds = append(ds, r.toDomainList(ms)...)
	}
	return ds, nil
}

func (r *assetRepository) ListApprovedByEvent(ctx context.Context, eventID int64) ([]*domain.Asset, error) {
	var ms []*model.Asset
	err := r.dao.use(ctx, "Asset").
		Where("event_id = ? AND status = ?", eventID, domain.AssetStatusApproved).
		Order("folder_id ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *assetRepository) ListApprovedByFolders(ctx context.Context, eventID int64, folderIDs []int64) ([]*domain.Asset, error) {
	var ds []*domain.Asset
	for _, chunk := range util.ChunkSlice(folderIDs, assetQueryChunkSize) {
		var ms []*model.Asset
		err := r.dao.use(ctx, "Asset").
			Where("event_id = ? AND status = ? AND folder_id IN ?", eventID, domain.AssetStatusApproved, chunk).
			Order("folder_id ASC, id ASC").
			Find(&ms).Error
		if err != nil {
			return nil, err
		}
		ds = append(ds, r.toDomainList(ms)...)
	}
	return ds, nil
}

var _ domain.AssetRepository = (*assetRepository)(nil)
