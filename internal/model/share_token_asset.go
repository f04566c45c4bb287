package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// ShareTokenAsset 快照行，固定某个分享在签发时刻可见的照片集合。
// 与 share_token 解耦后，目录内后续增删照片不会影响已签发的分享。
type ShareTokenAsset struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ShareTokenID int64      `gorm:"column:share_token_id;uniqueIndex:idx_token_asset;not null"`
	AssetID      int64      `gorm:"column:asset_id;uniqueIndex:idx_token_asset;not null"`
	CreatedAt    timex.Time `gorm:"column:created_at"`
}

func (ShareTokenAsset) TableName() string {
	return "share_token_asset"
}
