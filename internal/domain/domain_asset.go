package domain

import (
	"time"
)

// 照片审核状态
const (
	AssetStatusPending  = "pending"
	AssetStatusApproved = "approved"
	AssetStatusRejected = "rejected"
)

// Asset 照片领域模型。
// 三个路径分别指向原图、预览图、水印图（后两者可能为空，
// 签 URL 时按 水印 > 预览 > 原图 的优先级回退）。
type Asset struct {
	ID            int64     `json:"id"`
	EventID       int64     `json:"event_id"`
	FolderID      int64     `json:"folder_id"`
	FileName      string    `json:"file_name"`
	OriginalPath  string    `json:"original_path"`
	PreviewPath   string    `json:"preview_path"`
	WatermarkPath string    `json:"watermark_path"`
	Status        string    `json:"status"`
	SizeBytes     int64     `json:"size_bytes"`
	MimeType      string    `json:"mime_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsApproved 照片是否已通过审核
func (a *Asset) IsApproved() bool {
	return a.Status == AssetStatusApproved
}

// DeliveryKey 返回对外交付使用的存储 key，带水印版本优先。
func (a *Asset) DeliveryKey() string {
	if a.WatermarkPath != "" {
		return a.WatermarkPath
	}
	if a.PreviewPath != "" {
		return a.PreviewPath
	}
	return a.OriginalPath
}
