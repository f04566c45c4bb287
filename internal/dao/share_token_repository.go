package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/convert"
	"github.com/lumapix/photo-share-service/pkg/timex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 缺列降级重试的上限，可选列数量之内防御死循环
const maxInsertAttempts = 8

// shareTokenRepository 实现 domain.ShareTokenRepository 接口
type shareTokenRepository struct {
	dao *Dao
}

// NewShareTokenRepository 创建 ShareTokenRepository 实例
func NewShareTokenRepository(dao *Dao) domain.ShareTokenRepository {
	return &shareTokenRepository{dao: dao}
}

func (r *shareTokenRepository) toDomain(m *model.ShareToken) *domain.ShareToken {
	if m == nil {
		return nil
	}
	var assetIDs []int64
	if m.AssetIDs != "" {
		_ = json.Unmarshal([]byte(m.AssetIDs), &assetIDs)
	}

	return &domain.ShareToken{
		ID:      m.ID,
		Token:   m.Token,
		EventID: m.EventID,
		Scope: domain.ScopeConfig{
			Scope:              domain.ScopeType(m.ScopeType),
			AnchorID:           m.ScopeAnchorID,
			IncludeDescendants: convert.Int2Bool(m.IncludeDescendants),
			Filters:            domain.ScopeFilters{AssetIDs: assetIDs},
		},
		Title:         m.Title,
		Description:   m.Description,
		PasswordHash:  m.PasswordHash,
		ExpiresAt:     m.ExpiresAt,
		MaxViews:      m.MaxViews,
		ViewCount:     m.ViewCount,
		AllowDownload: convert.Int2Bool(m.AllowDownload),
		AllowComments: convert.Int2Bool(m.AllowComments),
		IsActive:      convert.Int2Bool(m.IsActive),
		Metadata:      m.Metadata,
		LastViewedAt:  m.LastViewedAt,
		CreatedAt:     time.Time(m.CreatedAt),
		UpdatedAt:     time.Time(m.UpdatedAt),
	}
}

func (r *shareTokenRepository) toModel(d *domain.ShareToken) *model.ShareToken {
	if d == nil {
		return nil
	}
	assetIDs := "[]"
	if len(d.Scope.Filters.AssetIDs) > 0 {
		b, _ := json.Marshal(d.Scope.Filters.AssetIDs)
		assetIDs = string(b)
	}

	return &model.ShareToken{
		ID:                 d.ID,
		Token:              d.Token,
		EventID:            d.EventID,
		FolderID:           d.Scope.AnchorID,
		AssetIDs:           assetIDs,
		ScopeType:          string(d.Scope.Scope),
		ScopeAnchorID:      d.Scope.AnchorID,
		IncludeDescendants: convert.Bool2Int(d.Scope.IncludeDescendants),
		Title:              d.Title,
		Description:        d.Description,
		PasswordHash:       d.PasswordHash,
		ExpiresAt:          d.ExpiresAt,
		MaxViews:           d.MaxViews,
		ViewCount:          d.ViewCount,
		AllowDownload:      convert.Bool2Int(d.AllowDownload),
		AllowComments:      convert.Bool2Int(d.AllowComments),
		IsActive:           convert.Bool2Int(d.IsActive),
		Metadata:           d.Metadata,
		LastViewedAt:       d.LastViewedAt,
		CreatedAt:          timex.Time(d.CreatedAt),
		UpdatedAt:          timex.Time(d.UpdatedAt),
	}
}

// insertColumns 展开为列计划，供缺列降级重试逐列剔除
func (r *shareTokenRepository) insertColumns(m *model.ShareToken) map[string]interface{} {
	return map[string]interface{}{
		"token":               m.Token,
		"event_id":            m.EventID,
		"folder_id":           m.FolderID,
		"asset_ids":           m.AssetIDs,
		"scope_type":          m.ScopeType,
		"scope_anchor_id":     m.ScopeAnchorID,
		"include_descendants": m.IncludeDescendants,
		"title":               m.Title,
		"description":         m.Description,
		"password_hash":       m.PasswordHash,
		"expires_at":          m.ExpiresAt,
		"max_views":           m.MaxViews,
		"view_count":          m.ViewCount,
		"allow_download":      m.AllowDownload,
		"allow_comments":      m.AllowComments,
		"is_active":           m.IsActive,
		"metadata":            m.Metadata,
		"last_viewed_at":      m.LastViewedAt,
		"created_at":          m.CreatedAt,
		"updated_at":          m.UpdatedAt,
	}
}

// Create 创建分享。遇到缺列报错时剔除该可选列重试，
// 核心列缺失或重试耗尽则失败；成功后按 token 回读完整行。
func (r *shareTokenRepository) Create(ctx context.Context, share *domain.ShareToken) (*domain.ShareToken, domain.PersistOutcome, error) {
	now := time.Now()
	if share.CreatedAt.IsZero() {
		share.CreatedAt = now
	}
	share.UpdatedAt = now

	m := r.toModel(share)
	cols := r.insertColumns(m)
	dropped := map[string]bool{}
	degraded := false

	db := r.dao.use(ctx, "ShareToken")
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		plan := pruneColumns(cols, dropped)
		err := db.Model(&model.ShareToken{}).Create(plan).Error
		if err == nil {
			created, gerr := r.GetByToken(ctx, share.Token)
			if gerr != nil {
				return nil, domain.PersistFailed, gerr
			}
			if degraded {
				return created, domain.PersistDegraded, nil
			}
			return created, domain.PersistInserted, nil
		}

		if isDuplicateErr(err) {
			return nil, domain.PersistFailed, domain.ErrPersistDuplicate
		}

		col, ok := missingColumn(err)
		if !ok {
			return nil, domain.PersistFailed, err
		}
		if shareTokenCoreColumns[col] {
			return nil, domain.PersistFailed, errors.Wrapf(err, "share_token core column %q missing", col)
		}
		if dropped[col] {
			// 同一列反复报缺，说明报错解析和实际表结构对不上
			break
		}
		dropped[col] = true
		degraded = true
		r.dao.logger.Warn("share insert degraded, dropping column",
			zap.String("column", col), zap.Int("attempt", attempt+1))
	}
	return nil, domain.PersistFailed, domain.ErrPersistUnavailable
}

func (r *shareTokenRepository) GetByToken(ctx context.Context, token string) (*domain.ShareToken, error) {
	var m model.ShareToken
	err := r.dao.use(ctx, "ShareToken").Where("token = ?", token).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *shareTokenRepository) GetActiveByToken(ctx context.Context, token string) (*domain.ShareToken, error) {
	var m model.ShareToken
	err := r.dao.use(ctx, "ShareToken").
		Where("token = ? AND is_active = 1", token).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *shareTokenRepository) GetByID(ctx context.Context, id int64) (*domain.ShareToken, error) {
	var m model.ShareToken
	err := r.dao.use(ctx, "ShareToken").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *shareTokenRepository) ListByEvent(ctx context.Context, eventID int64, page, pageSize int) ([]*domain.ShareToken, error) {
	var ms []*model.ShareToken
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	err := r.dao.use(ctx, "ShareToken").
		Where("event_id = ?", eventID).
		Order("id DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	ds := make([]*domain.ShareToken, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, r.toDomain(m))
	}
	return ds, nil
}

func (r *shareTokenRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.dao.use(ctx, "ShareToken").Model(&model.ShareToken{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// Revoke 幂等：重复撤销已失效的分享不算错误，只有行不存在才报 not found
func (r *shareTokenRepository) Revoke(ctx context.Context, id int64) error {
	res := r.dao.use(ctx, "ShareToken").Model(&model.ShareToken{}).
		Where("id = ? AND is_active = 1", id).
		Updates(map[string]interface{}{
			"is_active":  0,
			"updated_at": timex.Time(time.Now()),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.dao.use(ctx, "ShareToken").Model(&model.ShareToken{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrShareNotFound
		}
	}
	return nil
}

func (r *shareTokenRepository) DeactivateByAnchor(ctx context.Context, eventID int64, scope domain.ScopeType, anchorID int64) (int64, error) {
	res := r.dao.use(ctx, "ShareToken").Model(&model.ShareToken{}).
		Where("event_id = ? AND scope_type = ? AND scope_anchor_id = ? AND is_active = 1",
			eventID, string(scope), anchorID).
		Updates(map[string]interface{}{
			"is_active":  0,
			"updated_at": timex.Time(time.Now()),
		})
	return res.RowsAffected, res.Error
}

// IncrementViewCount 数据库侧原子自增，并发访问不丢计数
func (r *shareTokenRepository) IncrementViewCount(ctx context.Context, id int64, viewedAt time.Time) error {
	return r.dao.use(ctx, "ShareToken").Model(&model.ShareToken{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + ?", 1),
			"last_viewed_at": viewedAt,
			"updated_at":     timex.Time(viewedAt),
		}).Error
}

// DeleteExpiredBefore 自然过期的分享不需要先撤销，过期即满足清理条件
func (r *shareTokenRepository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.dao.use(ctx, "ShareToken").
		Where("expires_at IS NOT NULL AND expires_at < ?", before).
		Delete(&model.ShareToken{})
	return res.RowsAffected, res.Error
}

var _ domain.ShareTokenRepository = (*shareTokenRepository)(nil)
