package domain

import (
	"time"
)

// 事件状态
const (
	EventStatusActive   = "active"
	EventStatusArchived = "archived"
)

// Event 活动领域模型（一次拍摄 / 一场活动的照片集合）
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`   // URL 友好的唯一标识
	Status    string    `json:"status"` // active / archived
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsArchived 活动是否已归档
func (e *Event) IsArchived() bool {
	return e.Status == EventStatusArchived
}
