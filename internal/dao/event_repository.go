package dao

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
)

// eventRepository 实现 domain.EventRepository 接口
type eventRepository struct {
	dao *Dao
}

// NewEventRepository 创建 EventRepository 实例
func NewEventRepository(dao *Dao) domain.EventRepository {
	return &eventRepository{dao: dao}
}

func (r *eventRepository) toDomain(m *model.Event) *domain.Event {
	if m == nil {
		return nil
	}
	return &domain.Event{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Status:    m.Status,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m model.Event
	if err := r.dao.use(ctx, "Event").Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	var m model.Event
	if err := r.dao.use(ctx, "Event").Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *eventRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m model.Event
	err := r.dao.use(ctx, "Event").
		Where("id = ? AND status = ?", id, domain.EventStatusActive).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

var _ domain.EventRepository = (*eventRepository)(nil)
