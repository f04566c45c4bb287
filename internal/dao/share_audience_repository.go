package dao

import (
	"context"
	"strings"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/timex"

	"gorm.io/gorm/clause"
)

// shareAudienceRepository 实现 domain.ShareAudienceRepository 接口
type shareAudienceRepository struct {
	dao *Dao
}

// NewShareAudienceRepository 创建 ShareAudienceRepository 实例
func NewShareAudienceRepository(dao *Dao) domain.ShareAudienceRepository {
	return &shareAudienceRepository{dao: dao}
}

func (r *shareAudienceRepository) toDomain(m *model.ShareAudience) *domain.ShareAudience {
	if m == nil {
		return nil
	}
	return &domain.ShareAudience{
		ID:           m.ID,
		ShareTokenID: m.ShareTokenID,
		Identifier:   m.Identifier,
		Kind:         m.Kind,
		Label:        m.Label,
		CreatedAt:    time.Time(m.CreatedAt),
	}
}

// RegisterBatch 批量登记，入参内和库内的重复 identifier 都被静默忽略
func (r *shareAudienceRepository) RegisterBatch(ctx context.Context, shareTokenID int64, audiences []*domain.ShareAudience) error {
	if len(audiences) == 0 {
		return nil
	}

	now := timex.Time(time.Now())
	seen := map[string]bool{}
	rows := make([]*model.ShareAudience, 0, len(audiences))
	for _, a := range audiences {
		identifier := strings.TrimSpace(strings.ToLower(a.Identifier))
		if identifier == "" || seen[identifier] {
			continue
		}
		seen[identifier] = true
		kind := a.Kind
		if kind == "" {
			kind = "email"
		}
		rows = append(rows, &model.ShareAudience{
			ShareTokenID: shareTokenID,
			Identifier:   identifier,
			Kind:         kind,
			Label:        a.Label,
			CreatedAt:    now,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return r.dao.use(ctx, "ShareAudience").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error
}

func (r *shareAudienceRepository) ListByToken(ctx context.Context, shareTokenID int64) ([]*domain.ShareAudience, error) {
	var ms []*model.ShareAudience
	err := r.dao.use(ctx, "ShareAudience").
		Where("share_token_id = ?", shareTokenID).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	ds := make([]*domain.ShareAudience, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, r.toDomain(m))
	}
	return ds, nil
}

func (r *shareAudienceRepository) CountByToken(ctx context.Context, shareTokenID int64) (int64, error) {
	var count int64
	err := r.dao.use(ctx, "ShareAudience").Model(&model.ShareAudience{}).
		Where("share_token_id = ?", shareTokenID).
		Count(&count).Error
	return count, err
}

var _ domain.ShareAudienceRepository = (*shareAudienceRepository)(nil)
