// Package domain 定义领域模型和仓储接口
package domain

import (
	"context"
	"time"
)

// PersistOutcome 创建分享时的持久化结果。
// Degraded 表示核心列写入成功但部分可选列被跳过（表结构落后）。
type PersistOutcome int

const (
	PersistInserted PersistOutcome = iota
	PersistDegraded
	PersistFailed
)

// EventRepository 活动仓储接口
type EventRepository interface {
	// GetByID 根据ID获取活动
	GetByID(ctx context.Context, id int64) (*Event, error)

	// GetBySlug 根据 slug 获取活动
	GetBySlug(ctx context.Context, slug string) (*Event, error)

	// GetActiveByID 获取未归档的活动
	GetActiveByID(ctx context.Context, id int64) (*Event, error)
}

// FolderRepository 目录仓储接口
type FolderRepository interface {
	// GetByID 根据ID获取目录
	GetByID(ctx context.Context, id int64, eventID int64) (*Folder, error)

	// GetAnyByID 不限定活动的目录查询，用于推导分享的所属活动
	GetAnyByID(ctx context.Context, id int64) (*Folder, error)

	// ListChildIDs 获取直接子目录 ID
	ListChildIDs(ctx context.Context, parentID int64, eventID int64) ([]int64, error)

	// ListDescendantIDs 获取目录及其全部后代目录 ID（含自身）
	ListDescendantIDs(ctx context.Context, rootID int64, eventID int64) ([]int64, error)
}

// AssetRepository 照片仓储接口
type AssetRepository interface {
	// GetByID 根据ID获取照片
	GetByID(ctx context.Context, id int64) (*Asset, error)

	// ListByIDs 批量获取照片，只返回存在且属于该活动的
	ListByIDs(ctx context.Context, eventID int64, ids []int64) ([]*Asset, error)

	// ListApprovedByEvent 获取活动下全部已审核照片
	ListApprovedByEvent(ctx context.Context, eventID int64) ([]*Asset, error)

	// ListApprovedByFolders 获取指定目录集合下的已审核照片
	ListApprovedByFolders(ctx context.Context, eventID int64, folderIDs []int64) ([]*Asset, error)
}

// ShareTokenRepository 分享仓储接口
type ShareTokenRepository interface {
	// Create 创建分享，对表结构缺列降级重试
	Create(ctx context.Context, share *ShareToken) (*ShareToken, PersistOutcome, error)

	// GetByToken 根据 token 获取分享（不论状态）
	GetByToken(ctx context.Context, token string) (*ShareToken, error)

	// GetActiveByToken 根据 token 获取有效分享
	GetActiveByToken(ctx context.Context, token string) (*ShareToken, error)

	// GetByID 根据ID获取分享
	GetByID(ctx context.Context, id int64) (*ShareToken, error)

	// ListByEvent 分页获取活动下的分享
	ListByEvent(ctx context.Context, eventID int64, page, pageSize int) ([]*ShareToken, error)

	// CountByEvent 获取活动下的分享数量
	CountByEvent(ctx context.Context, eventID int64) (int64, error)

	// Revoke 撤销分享
	Revoke(ctx context.Context, id int64) error

	// DeactivateByAnchor 撤销锚定某目录的全部有效分享
	DeactivateByAnchor(ctx context.Context, eventID int64, scope ScopeType, anchorID int64) (int64, error)

	// IncrementViewCount 原子自增访问计数并更新最后访问时间
	IncrementViewCount(ctx context.Context, id int64, viewedAt time.Time) error

	// DeleteExpiredBefore 物理删除在指定时刻前过期且已撤销的分享
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}

// ShareTokenAssetRepository 分享快照仓储接口
type ShareTokenAssetRepository interface {
	// ReplaceForToken 重建某分享的快照（分批写入，幂等）
	ReplaceForToken(ctx context.Context, shareTokenID int64, assetIDs []int64) error

	// ListAssetIDs 获取快照内的照片 ID
	ListAssetIDs(ctx context.Context, shareTokenID int64) ([]int64, error)

	// DeleteForToken 删除某分享的快照
	DeleteForToken(ctx context.Context, shareTokenID int64) error
}

// ShareAudienceRepository 分享受众仓储接口
type ShareAudienceRepository interface {
	// RegisterBatch 批量登记受众，重复 identifier 忽略
	RegisterBatch(ctx context.Context, shareTokenID int64, audiences []*ShareAudience) error

	// ListByToken 获取某分享的受众名单
	ListByToken(ctx context.Context, shareTokenID int64) ([]*ShareAudience, error)

	// CountByToken 统计某分享已登记的受众数量
	CountByToken(ctx context.Context, shareTokenID int64) (int64, error)
}

// ShareAccessLogRepository 访问审计仓储接口
type ShareAccessLogRepository interface {
	// Append 追加一条审计记录
	Append(ctx context.Context, log *ShareAccessLog) error

	// CountByIPSince 统计某 IP 在窗口内的访问次数
	CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)

	// CountByTokenSince 统计某 token 在窗口内的访问次数
	CountByTokenSince(ctx context.Context, token string, since time.Time) (int64, error)

	// CountFailedByIPSince 统计某 IP 在窗口内的失败次数
	CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)

	// ListByToken 分页获取某 token 的审计记录
	ListByToken(ctx context.Context, token string, page, pageSize int) ([]*ShareAccessLog, error)

	// ListSuspiciousIPs 列出窗口内失败次数达到阈值的 IP
	ListSuspiciousIPs(ctx context.Context, since time.Time, threshold int64) ([]string, error)

	// DeleteOlderThan 清理过期审计记录
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}
