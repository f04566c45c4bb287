package domain

import (
	"errors"
	"time"
)

// 分享范围类型
type ScopeType string

const (
	ScopeEvent     ScopeType = "event"     // 整个活动（动态，不做快照）
	ScopeFolder    ScopeType = "folder"    // 某个目录（可选包含子目录），签发时快照
	ScopeSelection ScopeType = "selection" // 显式照片清单，签发时快照
)

// 分享领域错误
var (
	ErrShareNotFound       = errors.New("share not found")
	ErrShareInactive       = errors.New("share has been revoked")
	ErrShareExpired        = errors.New("share has expired")
	ErrShareMaxViews       = errors.New("share view limit reached")
	ErrSharePasswordNeeded = errors.New("share password required")
	ErrSharePasswordWrong  = errors.New("share password incorrect")
	ErrEventUnresolvable   = errors.New("event not found or archived")
	ErrScopeInvalid        = errors.New("share scope validation failed")
	ErrPersistReference    = errors.New("share references missing event or folder")
	ErrPersistDuplicate    = errors.New("share token collision")
	ErrPersistUnavailable  = errors.New("share persistence unavailable")
	ErrAccessRateLimited   = errors.New("too many access attempts")
	ErrAccessSuspiciousIP  = errors.New("ip blocked for repeated failures")
)

// ScopeFilters 选择范围的附加过滤条件
type ScopeFilters struct {
	AssetIDs []int64 `json:"asset_ids"`
}

// ScopeConfig 分享范围配置。
// Scope 决定 AnchorID / Filters 哪个生效：
//
//	event:     AnchorID 忽略，范围为整个活动
//	folder:    AnchorID 为目录 ID，IncludeDescendants 控制是否递归
//	selection: Filters.AssetIDs 为显式清单
type ScopeConfig struct {
	Scope              ScopeType    `json:"scope"`
	AnchorID           int64        `json:"anchor_id"`
	IncludeDescendants bool         `json:"include_descendants"`
	Filters            ScopeFilters `json:"filters"`
}

// Validate 校验范围配置自身的一致性（不触库）
func (c *ScopeConfig) Validate() error {
	switch c.Scope {
	case ScopeEvent:
		return nil
	case ScopeFolder:
		if c.AnchorID <= 0 {
			return ErrScopeInvalid
		}
		return nil
	case ScopeSelection:
		if len(c.Filters.AssetIDs) == 0 {
			return ErrScopeInvalid
		}
		return nil
	default:
		return ErrScopeInvalid
	}
}

// Snapshotted 该范围是否在签发时固化照片集合
func (c *ScopeConfig) Snapshotted() bool {
	return c.Scope == ScopeFolder || c.Scope == ScopeSelection
}

// ShareToken 分享领域模型
type ShareToken struct {
	ID            int64       `json:"id"`
	Token         string      `json:"token"`
	EventID       int64       `json:"event_id"`
	Scope         ScopeConfig `json:"scope"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	PasswordHash  string      `json:"-"`
	ExpiresAt     *time.Time  `json:"expires_at"`
	MaxViews      int64       `json:"max_views"` // 0 表示不限
	ViewCount     int64       `json:"view_count"`
	AllowDownload bool        `json:"allow_download"`
	AllowComments bool        `json:"allow_comments"`
	IsActive      bool        `json:"is_active"`
	Metadata      string      `json:"metadata"`
	LastViewedAt  *time.Time  `json:"last_viewed_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// HasPassword 分享是否设置了访问口令
func (s *ShareToken) HasPassword() bool {
	return s.PasswordHash != ""
}

// ExpiredAt 在给定时刻分享是否已过期
func (s *ShareToken) ExpiredAt(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}

// ViewsExhausted 访问次数是否已达上限
func (s *ShareToken) ViewsExhausted() bool {
	return s.MaxViews > 0 && s.ViewCount >= s.MaxViews
}

// ShareAudience 分享受众登记项
type ShareAudience struct {
	ID           int64     `json:"id"`
	ShareTokenID int64     `json:"share_token_id"`
	Identifier   string    `json:"identifier"`
	Kind         string    `json:"kind"`
	Label        string    `json:"label"`
	CreatedAt    time.Time `json:"created_at"`
}
