package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// Asset 照片资产。三个存储路径分别指向原图、预览图与水印图，
// 后两者可为空。
type Asset struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	EventID       int64      `gorm:"column:event_id;index;not null"`
	FolderID      int64      `gorm:"column:folder_id;index;default:0"`
	FileName      string     `gorm:"column:file_name;size:512;not null"`
	OriginalPath  string     `gorm:"column:original_path;size:1024;not null"`
	PreviewPath   string     `gorm:"column:preview_path;size:1024"`
	WatermarkPath string     `gorm:"column:watermark_path;size:1024"`
	Status        string     `gorm:"column:status;size:32;index;default:pending"`
	SizeBytes     int64      `gorm:"column:size_bytes;default:0"`
	MimeType      string     `gorm:"column:mime_type;size:128"`
	CreatedAt     timex.Time `gorm:"column:created_at"`
	UpdatedAt     timex.Time `gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "asset"
}
