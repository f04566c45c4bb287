package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/timex"
	"github.com/lumapix/photo-share-service/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDao 创建基于临时 sqlite 文件的 Dao 实例
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	c := &DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "test.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	}
	db, err := NewDBEngine(c)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))

	return New(db, context.Background(), WithConfig(c))
}

func newTestShare(token string) *domain.ShareToken {
	return &domain.ShareToken{
		Token:   token,
		EventID: 1,
		Scope: domain.ScopeConfig{
			Scope:              domain.ScopeFolder,
			AnchorID:           10,
			IncludeDescendants: true,
		},
		Title:         "Family Session",
		MaxViews:      5,
		AllowDownload: true,
		IsActive:      true,
	}
}

func TestShareTokenCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	token, err := util.GenerateShareToken()
	require.NoError(t, err)

	created, outcome, err := repo.Create(ctx, newTestShare(token))
	require.NoError(t, err)
	assert.Equal(t, domain.PersistInserted, outcome)
	assert.NotZero(t, created.ID)
	assert.Equal(t, token, created.Token)
	assert.Equal(t, domain.ScopeFolder, created.Scope.Scope)
	assert.Equal(t, int64(10), created.Scope.AnchorID)
	assert.True(t, created.Scope.IncludeDescendants)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetActiveByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Family Session", got.Title)
}

func TestShareTokenCreateDuplicate(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	token, err := util.GenerateShareToken()
	require.NoError(t, err)

	_, _, err = repo.Create(ctx, newTestShare(token))
	require.NoError(t, err)

	_, outcome, err := repo.Create(ctx, newTestShare(token))
	assert.Equal(t, domain.PersistFailed, outcome)
	assert.ErrorIs(t, err, domain.ErrPersistDuplicate)
}

// 表结构缺少可选列时应降级写入核心数据
func TestShareTokenCreateDegraded(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	// 先正常写一条，让懒迁移完成，之后删列才不会被补回来
	seed, err := util.GenerateShareToken()
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, newTestShare(seed))
	require.NoError(t, err)

	require.NoError(t, d.DB().Exec("ALTER TABLE share_token DROP COLUMN metadata").Error)
	require.NoError(t, d.DB().Exec("ALTER TABLE share_token DROP COLUMN allow_comments").Error)

	token, err := util.GenerateShareToken()
	require.NoError(t, err)

	created, outcome, err := repo.Create(ctx, newTestShare(token))
	require.NoError(t, err)
	assert.Equal(t, domain.PersistDegraded, outcome)
	assert.Equal(t, token, created.Token)
	assert.True(t, created.IsActive)
}

func TestShareTokenRevoke(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	token, _ := util.GenerateShareToken()
	created, _, err := repo.Create(ctx, newTestShare(token))
	require.NoError(t, err)

	require.NoError(t, repo.Revoke(ctx, created.ID))

	_, err = repo.GetActiveByToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrShareNotFound)

	// 重复撤销是幂等操作
	assert.NoError(t, repo.Revoke(ctx, created.ID))

	// 不存在的行才报 not found
	assert.ErrorIs(t, repo.Revoke(ctx, 9999), domain.ErrShareNotFound)

	// 原始行仍在，可以审计
	got, err := repo.GetByToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestShareTokenDeactivateByAnchor(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		token, _ := util.GenerateShareToken()
		_, _, err := repo.Create(ctx, newTestShare(token))
		require.NoError(t, err)
	}
	other := newTestShare("")
	other.Token, _ = util.GenerateShareToken()
	other.Scope.AnchorID = 99
	_, _, err := repo.Create(ctx, other)
	require.NoError(t, err)

	n, err := repo.DeactivateByAnchor(ctx, 1, domain.ScopeFolder, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// 其他锚点的分享不受影响
	got, err := repo.GetActiveByToken(ctx, other.Token)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestShareTokenIncrementViewCount(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenRepository(d)
	ctx := context.Background()

	token, _ := util.GenerateShareToken()
	created, _, err := repo.Create(ctx, newTestShare(token))
	require.NoError(t, err)

	viewedAt := time.Now()
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.IncrementViewCount(ctx, created.ID, viewedAt))
	}

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ViewCount)
	require.NotNil(t, got.LastViewedAt)
}

func TestSnapshotReplaceIdempotent(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareTokenAssetRepository(d)
	ctx := context.Background()

	ids := []int64{3, 1, 2}
	require.NoError(t, repo.ReplaceForToken(ctx, 7, ids))
	require.NoError(t, repo.ReplaceForToken(ctx, 7, ids))

	got, err := repo.ListAssetIDs(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)

	// 重建为子集
	require.NoError(t, repo.ReplaceForToken(ctx, 7, []int64{2}))
	got, err = repo.ListAssetIDs(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, got)

	require.NoError(t, repo.DeleteForToken(ctx, 7))
	got, err = repo.ListAssetIDs(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFolderListDescendantIDs(t *testing.T) {
	d := newTestDao(t)
	repo := NewFolderRepository(d)
	ctx := context.Background()

	//  1
	//  ├── 2
	//  │   └── 4
	//  └── 3
	now := timex.Time(time.Now())
	folders := []*model.Folder{
		{ID: 1, EventID: 1, ParentID: 0, Name: "root", CreatedAt: now, UpdatedAt: now},
		{ID: 2, EventID: 1, ParentID: 1, Name: "a", CreatedAt: now, UpdatedAt: now},
		{ID: 3, EventID: 1, ParentID: 1, Name: "b", CreatedAt: now, UpdatedAt: now},
		{ID: 4, EventID: 1, ParentID: 2, Name: "a1", CreatedAt: now, UpdatedAt: now},
		{ID: 5, EventID: 2, ParentID: 1, Name: "other-event", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, d.DB().Create(folders).Error)

	ids, err := repo.ListDescendantIDs(ctx, 1, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, ids)

	ids, err = repo.ListDescendantIDs(ctx, 2, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 4}, ids)

	children, err := repo.ListChildIDs(ctx, 1, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 3}, children)
}

func TestAccessLogCounts(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareAccessLogRepository(d)
	ctx := context.Background()

	now := time.Now()
	logs := []*domain.ShareAccessLog{
		{Token: "t1", IP: "10.0.0.1", Success: true, CreatedAt: now.Add(-10 * time.Minute)},
		{Token: "t1", IP: "10.0.0.1", Success: false, FailureReason: domain.FailureExpired, CreatedAt: now.Add(-5 * time.Minute)},
		{Token: "t2", IP: "10.0.0.1", Success: false, FailureReason: domain.FailureNotFound, CreatedAt: now.Add(-1 * time.Minute)},
		// 窗口之外
		{Token: "t1", IP: "10.0.0.1", Success: false, FailureReason: domain.FailureNotFound, CreatedAt: now.Add(-2 * time.Hour)},
		{Token: "t1", IP: "10.0.0.2", Success: true, CreatedAt: now.Add(-1 * time.Minute)},
	}
	for _, l := range logs {
		require.NoError(t, repo.Append(ctx, l))
		assert.NotZero(t, l.ID)
	}

	since := now.Add(-time.Hour)

	n, err := repo.CountByIPSince(ctx, "10.0.0.1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// 窗口内 t1 共三条，第二个 IP 的那条也计入
	n, err = repo.CountByTokenSince(ctx, "t1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.CountFailedByIPSince(ctx, "10.0.0.1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ips, err := repo.ListSuspiciousIPs(ctx, since, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, ips)

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestShareAudienceRegisterBatch(t *testing.T) {
	d := newTestDao(t)
	repo := NewShareAudienceRepository(d)
	ctx := context.Background()

	audiences := []*domain.ShareAudience{
		{Identifier: "Alice@Example.com", Label: "Alice"},
		{Identifier: "alice@example.com", Label: "dup"},
		{Identifier: "bob@example.com", Kind: "email"},
		{Identifier: "  "},
	}
	require.NoError(t, repo.RegisterBatch(ctx, 5, audiences))
	// 重复登记应被忽略
	require.NoError(t, repo.RegisterBatch(ctx, 5, audiences))

	got, err := repo.ListByToken(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice@example.com", got[0].Identifier)
	assert.Equal(t, "bob@example.com", got[1].Identifier)
	assert.Equal(t, "email", got[0].Kind)
}
