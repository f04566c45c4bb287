package model

import (
	"time"

	"github.com/lumapix/photo-share-service/pkg/timex"
)

// ShareToken 分享 Token 持久化模型。
// AssetIDs 为 legacy 显式照片清单（JSON 数组），结构化 scope 字段
// 存在时以 scope 为准。
type ShareToken struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Token              string     `gorm:"column:token;size:64;uniqueIndex;not null"`
	EventID            int64      `gorm:"column:event_id;index;not null"`
	FolderID           int64      `gorm:"column:folder_id;index;default:0"`
	AssetIDs           string     `gorm:"column:asset_ids;type:text"`
	ScopeType          string     `gorm:"column:scope_type;size:32;not null"`
	ScopeAnchorID      int64      `gorm:"column:scope_anchor_id;default:0"`
	IncludeDescendants int64      `gorm:"column:include_descendants;default:0"`
	Title              string     `gorm:"column:title;size:255"`
	Description        string     `gorm:"column:description;type:text"`
	PasswordHash       string     `gorm:"column:password_hash;size:255"`
	ExpiresAt          *time.Time `gorm:"column:expires_at;index"`
	MaxViews           int64      `gorm:"column:max_views;default:0"`
	ViewCount          int64      `gorm:"column:view_count;default:0"`
	AllowDownload      int64      `gorm:"column:allow_download;default:1"`
	AllowComments      int64      `gorm:"column:allow_comments;default:0"`
	IsActive           int64      `gorm:"column:is_active;index;default:1"`
	Metadata           string     `gorm:"column:metadata;type:text"`
	LastViewedAt       *time.Time `gorm:"column:last_viewed_at"`
	CreatedAt          timex.Time `gorm:"column:created_at"`
	UpdatedAt          timex.Time `gorm:"column:updated_at"`
}

func (ShareToken) TableName() string {
	return "share_token"
}
