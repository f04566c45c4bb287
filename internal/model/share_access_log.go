package model

import (
	"github.com/lumapix/photo-share-service/pkg/timex"
)

// ShareAccessLog 访问审计行，同时作为滑动窗口限流的计数来源。
// Token 记录原始提交值（可能不对应任何有效分享），便于追踪探测行为。
type ShareAccessLog struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Token         string     `gorm:"column:token;size:128;index"`
	IP            string     `gorm:"column:ip;size:64;index"`
	UserAgent     string     `gorm:"column:user_agent;size:512"`
	Success       int64      `gorm:"column:success;default:0"`
	FailureReason string     `gorm:"column:failure_reason;size:64"`
	CreatedAt     timex.Time `gorm:"column:created_at;index"`
}

func (ShareAccessLog) TableName() string {
	return "share_access_log"
}
