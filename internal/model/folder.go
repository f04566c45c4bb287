package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// Folder 活动内的文件夹，ParentID 为 0 表示活动根层级
type Folder struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	EventID   int64      `gorm:"column:event_id;index;not null"`
	ParentID  int64      `gorm:"column:parent_id;index;default:0"`
	Name      string     `gorm:"column:name;size:255;not null"`
	CreatedAt timex.Time `gorm:"column:created_at"`
	UpdatedAt timex.Time `gorm:"column:updated_at"`
}

func (Folder) TableName() string {
	return "folder"
}
