package dao

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/timex"
	"github.com/lumapix/photo-share-service/pkg/util"

	"gorm.io/gorm/clause"
)

// 快照写入的分批大小
const snapshotBatchSize = 500

// shareTokenAssetRepository 实现 domain.ShareTokenAssetRepository 接口
type shareTokenAssetRepository struct {
	dao *Dao
}

// NewShareTokenAssetRepository 创建 ShareTokenAssetRepository 实例
func NewShareTokenAssetRepository(dao *Dao) domain.ShareTokenAssetRepository {
	return &shareTokenAssetRepository{dao: dao}
}

// ReplaceForToken 先清空再分批写入，唯一索引冲突忽略，重放安全
func (r *shareTokenAssetRepository) ReplaceForToken(ctx context.Context, shareTokenID int64, assetIDs []int64) error {
	db := r.dao.use(ctx, "ShareTokenAsset")

	err := db.Where("share_token_id = ?", shareTokenID).
		Delete(&model.ShareTokenAsset{}).Error
	if err != nil {
		return err
	}

	now := timex.Time(time.Now())
	for _, chunk := range util.ChunkSlice(assetIDs, snapshotBatchSize) {
		rows := make([]*model.ShareTokenAsset, 0, len(chunk))
		for _, assetID := range chunk {
			rows = append(rows, &model.ShareTokenAsset{
				ShareTokenID: shareTokenID,
				AssetID:      assetID,
				CreatedAt:    now,
			})
		}
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(rows).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *shareTokenAssetRepository) ListAssetIDs(ctx context.Context, shareTokenID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.use(ctx, "ShareTokenAsset").Model(&model.ShareTokenAsset{}).
		Where("share_token_id = ?", shareTokenID).
		Order("asset_id ASC").
		Pluck("asset_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *shareTokenAssetRepository) DeleteForToken(ctx context.Context, shareTokenID int64) error {
	return r.dao.use(ctx, "ShareTokenAsset").
		Where("share_token_id = ?", shareTokenID).
		Delete(&model.ShareTokenAsset{}).Error
}

var _ domain.ShareTokenAssetRepository = (*shareTokenAssetRepository)(nil)
