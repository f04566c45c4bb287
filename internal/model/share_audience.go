package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// ShareAudience 分享的受众登记（可选的邮箱 / 标签名单）。
// 同一分享下 identifier 去重。
type ShareAudience struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ShareTokenID int64      `gorm:"column:share_token_id;uniqueIndex:idx_audience;not null"`
	Identifier   string     `gorm:"column:identifier;size:255;uniqueIndex:idx_audience;not null"`
	Kind         string     `gorm:"column:kind;size:32;default:email"`
	Label        string     `gorm:"column:label;size:255"`
	CreatedAt    timex.Time `gorm:"column:created_at"`
}

func (ShareAudience) TableName() string {
	return "share_audience"
}
