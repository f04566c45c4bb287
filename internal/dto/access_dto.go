package dto

import (
	"time"
)

// AccessRequest 访客打开分享请求
type AccessRequest struct {
	Token    string `json:"token" form:"token" binding:"required"` // 分享 Token，格式在服务层校验
	Password string `json:"password" binding:"omitempty,max=64"`   // 访问口令（分享设置了口令时必填）
}

// AccessAssetResponse 访客视角的单张照片
type AccessAssetResponse struct {
	ID        int64  `json:"id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"` // 带签名的临时访问地址，可能为空（签名失败时跳过）
}

// AccessResponse 访客打开分享响应
type AccessResponse struct {
	Title         string                 `json:"title"`
	Description   string                 `json:"description,omitempty"`
	EventName     string                 `json:"event_name"`
	AllowDownload bool                   `json:"allow_download"`
	AllowComments bool                   `json:"allow_comments"`
	ExpiresAt     *time.Time             `json:"expires_at"`
	ViewsLeft     int64                  `json:"views_left"` // -1 表示不限
	Assets        []*AccessAssetResponse `json:"assets"`
	URLExpiresAt  time.Time              `json:"url_expires_at"` // 签名地址过期时间
}
