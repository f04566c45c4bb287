package dao

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/convert"
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// shareAccessLogRepository 实现 domain.ShareAccessLogRepository 接口
type shareAccessLogRepository struct {
	dao *Dao
}

// NewShareAccessLogRepository 创建 ShareAccessLogRepository 实例
func NewShareAccessLogRepository(dao *Dao) domain.ShareAccessLogRepository {
	return &shareAccessLogRepository{dao: dao}
}

func (r *shareAccessLogRepository) toDomain(m *model.ShareAccessLog) *domain.ShareAccessLog {
	if m == nil {
		return nil
	}
	return &domain.ShareAccessLog{
		ID:            m.ID,
		Token:         m.Token,
		IP:            m.IP,
		UserAgent:     m.UserAgent,
		Success:       convert.Int2Bool(m.Success),
		FailureReason: m.FailureReason,
		CreatedAt:     time.Time(m.CreatedAt),
	}
}

func (r *shareAccessLogRepository) Append(ctx context.Context, log *domain.ShareAccessLog) error {
	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	m := &model.ShareAccessLog{
		Token:         log.Token,
		IP:            log.IP,
		UserAgent:     log.UserAgent,
		Success:       convert.Bool2Int(log.Success),
		FailureReason: log.FailureReason,
		CreatedAt:     timex.Time(createdAt),
	}
	if err := r.dao.use(ctx, "ShareAccessLog").Create(m).Error; err != nil {
		return err
	}
	log.ID = m.ID // 回填生成的 ID
	return nil
}

func (r *shareAccessLogRepository) CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.dao.use(ctx, "ShareAccessLog").Model(&model.ShareAccessLog{}).
		Where("ip = ? AND created_at >= ?", ip, timex.Time(since)).
		Count(&count).Error
	return count, err
}

func (r *shareAccessLogRepository) CountByTokenSince(ctx context.Context, token string, since time.Time) (int64, error) {
	var count int64
	err := r.dao.use(ctx, "ShareAccessLog").Model(&model.ShareAccessLog{}).
		Where("token = ? AND created_at >= ?", token, timex.Time(since)).
		Count(&count).Error
	return count, err
}

func (r *shareAccessLogRepository) CountFailedByIPSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.dao.use(ctx, "ShareAccessLog").Model(&model.ShareAccessLog{}).
		Where("ip = ? AND success = 0 AND created_at >= ?", ip, timex.Time(since)).
		Count(&count).Error
	return count, err
}

func (r *shareAccessLogRepository) ListByToken(ctx context.Context, token string, page, pageSize int) ([]*domain.ShareAccessLog, error) {
	var ms []*model.ShareAccessLog
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	err := r.dao.use(ctx, "ShareAccessLog").
		Where("token = ?", token).
		Order("id DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	ds := make([]*domain.ShareAccessLog, 0, len(ms))
	for _, m := range ms {
		ds = append(ds, r.toDomain(m))
	}
	return ds, nil
}

func (r *shareAccessLogRepository) ListSuspiciousIPs(ctx context.Context, since time.Time, threshold int64) ([]string, error) {
	var ips []string
	err := r.dao.use(ctx, "ShareAccessLog").Model(&model.ShareAccessLog{}).
		Where("success = 0 AND created_at >= ?", timex.Time(since)).
		Group("ip").
		Having("COUNT(*) >= ?", threshold).
		Pluck("ip", &ips).Error
	if err != nil {
		return nil, err
	}
	return ips, nil
}

func (r *shareAccessLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	res := r.dao.use(ctx, "ShareAccessLog").
		Where("created_at < ?", timex.Time(before)).
		Delete(&model.ShareAccessLog{})
	return res.RowsAffected, res.Error
}

var _ domain.ShareAccessLogRepository = (*shareAccessLogRepository)(nil)
