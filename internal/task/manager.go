package task

import (
	"github.com/lumapix/photo-share-service/internal/app"
	"github.com/lumapix/photo-share-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(appContainer *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		app:       appContainer,
		logger:    logger,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	cleanupTask, err := NewShareCleanupTask(m.app)
	if err != nil {
		m.logger.Warn("failed to create share cleanup task", zap.Error(err))
		return err
	}

	if cleanupTask != nil {
		m.scheduler.AddTask(cleanupTask)
	} else {
		m.logger.Info("share cleanup task is disabled (retention not configured)")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
