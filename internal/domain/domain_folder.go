package domain

import (
	"time"
)

// Folder 活动内的目录节点，ParentID=0 表示顶层目录。
// 目录树按 ParentID 组成，深度不限。
type Folder struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	ParentID  int64     `json:"parent_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
