package task

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/internal/app"
	"github.com/lumapix/photo-share-service/pkg/util"

	"go.uber.org/zap"
)

// ShareCleanupTask 分享清理任务
// Removes revoked expired shares and prunes old audit records.
type ShareCleanupTask struct {
	app      *app.App
	interval time.Duration
}

// Name 返回任务名称
func (t *ShareCleanupTask) Name() string {
	return "ShareCleanup"
}

// LoopInterval 返回执行间隔
func (t *ShareCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *ShareCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *ShareCleanupTask) Run(ctx context.Context) error {
	shares, logs, err := t.app.ShareService.Cleanup(ctx)
	if err != nil {
		t.app.Logger().Error("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"),
		zap.Int64("shares_removed", shares),
		zap.Int64("logs_removed", logs))
	return nil
}

// NewShareCleanupTask 创建分享清理任务
// 未配置保留期时返回 nil 表示任务停用。
func NewShareCleanupTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()

	retention := cfg.Share.CleanupRetention
	if retention == "" && cfg.Share.AuditRetention == "" {
		return nil, nil
	}
	if retention != "" {
		if d, err := util.ParseDuration(retention); err != nil || d <= 0 {
			return nil, err
		}
	}

	return &ShareCleanupTask{
		app:      appContainer,
		interval: cfg.GetCleanupInterval(),
	}, nil
}
