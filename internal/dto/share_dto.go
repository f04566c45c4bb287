// Package dto 定义 HTTP 层的请求与响应结构
package dto

import (
	"time"
)

// ShareCreateRequest 创建分享请求
type ShareCreateRequest struct {
	EventID            int64    `json:"event_id" binding:"omitempty,gt=0"`                         // 活动 ID，缺省时由范围锚点推导
	Scope              string   `json:"scope" binding:"omitempty,oneof=event folder selection"`    // 范围类型
	ShareType          string   `json:"share_type" binding:"omitempty,oneof=folder photos event"`  // 旧式分享类型，scope 缺省时生效
	AnchorID           int64    `json:"anchor_id" binding:"omitempty,gt=0"`                        // folder 范围的目录 ID
	IncludeDescendants bool     `json:"include_descendants"`                                       // folder 范围是否递归子目录
	AssetIDs           []int64  `json:"asset_ids" binding:"omitempty,max=5000,dive,gt=0"`          // selection 范围的照片清单
	Title              string   `json:"title" binding:"omitempty,max=255"`                         // 标题
	Description        string   `json:"description" binding:"omitempty,max=2000"`                  // 描述
	Password           string   `json:"password" binding:"omitempty,min=4,max=64"`                 // 可选访问口令
	ExpiresIn          string   `json:"expires_in" binding:"omitempty"`                            // 有效期，如 7d / 24h，空为不过期
	MaxViews           int64    `json:"max_views" binding:"omitempty,gte=0"`                       // 访问次数上限，0 不限
	AllowDownload      *bool    `json:"allow_download"`                                            // 是否允许下载，默认 true
	AllowComments      bool     `json:"allow_comments"`                                            // 是否允许评论
	Audience           []string `json:"audience" binding:"omitempty,max=500,dive,email"`           // 受众邮箱名单
	Metadata           string   `json:"metadata" binding:"omitempty,max=4000"`                     // 自定义元数据 (JSON 串)
}

// ShareResponse 分享详情响应
type ShareResponse struct {
	ID                 int64      `json:"id"`
	Token              string     `json:"token"`
	URL                string     `json:"url"` // 对外访问地址
	EventID            int64      `json:"event_id"`
	Scope              string     `json:"scope"`
	AnchorID           int64      `json:"anchor_id,omitempty"`
	IncludeDescendants bool       `json:"include_descendants"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	HasPassword        bool       `json:"has_password"`
	ExpiresAt          *time.Time `json:"expires_at"`
	MaxViews           int64      `json:"max_views"`
	ViewCount          int64      `json:"view_count"`
	AllowDownload      bool       `json:"allow_download"`
	AllowComments      bool       `json:"allow_comments"`
	IsActive           bool       `json:"is_active"`
	AssetCount         int        `json:"asset_count"`    // 签发时快照的照片数，event 范围为 0
	AudienceCount      int        `json:"audience_count"` // 已登记的受众数量
	Degraded           bool       `json:"degraded"`       // 持久化是否降级（表结构落后）
	LastViewedAt       *time.Time `json:"last_viewed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ShareListRequest 分享列表请求
type ShareListRequest struct {
	EventID int64 `json:"event_id" form:"event_id" binding:"required,gt=0"` // 活动 ID
}

// ShareListResponse 分享列表响应
type ShareListResponse struct {
	List  []*ShareResponse `json:"list"`
	Total int64            `json:"total"`
}

// ShareRevokeRequest 撤销分享请求
type ShareRevokeRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"` // 分享 ID
}

// ShareRevokeByFolderRequest 按目录撤销分享请求
type ShareRevokeByFolderRequest struct {
	EventID  int64 `json:"event_id" form:"event_id" binding:"required,gt=0"`   // 活动 ID
	FolderID int64 `json:"folder_id" form:"folder_id" binding:"required,gt=0"` // 目录 ID
}

// ShareRevokeByFolderResponse 按目录撤销分享响应
type ShareRevokeByFolderResponse struct {
	Revoked int64 `json:"revoked"` // 被撤销的分享数量
}

// ShareRotateRequest 轮换分享 Token 请求
type ShareRotateRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"` // 分享 ID
}

// ShareStatsResponse 分享统计响应
type ShareStatsResponse struct {
	ShareID       int64      `json:"share_id"`
	ViewCount     int64      `json:"view_count"`
	MaxViews      int64      `json:"max_views"`
	WindowTotal   int64      `json:"window_total"`   // 最近窗口内的访问次数
	WindowFailed  int64      `json:"window_failed"`  // 最近窗口内的失败次数
	LastViewedAt  *time.Time `json:"last_viewed_at"`
	IsActive      bool       `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// AccessLogListRequest 访问审计列表请求
type AccessLogListRequest struct {
	Token string `json:"token" form:"token" binding:"required,len=64,hexadecimal"` // 分享 Token
}

// AccessLogResponse 访问审计行
type AccessLogResponse struct {
	ID            int64     `json:"id"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	Success       bool      `json:"success"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SuspiciousIPResponse 可疑 IP 列表响应
type SuspiciousIPResponse struct {
	IPs       []string  `json:"ips"`
	Window    string    `json:"window"`    // 统计窗口
	Threshold int64     `json:"threshold"` // 判定阈值
	CheckedAt time.Time `json:"checked_at"`
}
