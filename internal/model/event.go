package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// Event 活动（照片目录的顶层集合）
type Event struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name;size:255;not null"`
	Slug      string     `gorm:"column:slug;size:255;uniqueIndex"`
	Status    string     `gorm:"column:status;size:32;index;default:active"`
	CreatedAt timex.Time `gorm:"column:created_at"`
	UpdatedAt timex.Time `gorm:"column:updated_at"`
}

func (Event) TableName() string {
	return "event"
}
