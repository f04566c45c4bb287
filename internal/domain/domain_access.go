package domain

import (
	"time"
)

// 访问失败原因，写入审计日志的 failure_reason 列
const (
	FailureInvalidFormat    = "invalid_format"
	FailureRateLimited      = "rate_limited"
	FailureSuspiciousIP     = "suspicious_ip"
	FailureNotFound         = "not_found"
	FailureExpired          = "expired"
	FailureMaxViews         = "max_views"
	FailurePasswordRequired = "password_required"
	FailurePasswordWrong    = "password_wrong"
)

// ShareAccessLog 访问审计领域模型。
// 成功与失败都会记录；限流计数直接查询该表的滑动窗口。
type ShareAccessLog struct {
	ID            int64     `json:"id"`
	Token         string    `json:"token"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	Success       bool      `json:"success"`
	FailureReason string    `json:"failure_reason"`
	CreatedAt     time.Time `json:"created_at"`
}
