package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumapix/photo-share-service/internal/dao"
	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/model"
	"github.com/lumapix/photo-share-service/pkg/breaker"
	"github.com/lumapix/photo-share-service/pkg/storage"
	"github.com/lumapix/photo-share-service/pkg/timex"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSigner 内存签名器，指定 key 可注入失败
type fakeSigner struct {
	fail map[string]bool
}

func (f *fakeSigner) SignedURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	if f.fail[fileKey] {
		return "", context.DeadlineExceeded
	}
	return "https://cdn.test/" + fileKey + "?sig=ok", nil
}

var _ storage.Storager = (*fakeSigner)(nil)

// testEnv 服务层测试环境，仓储层走真实 sqlite
type testEnv struct {
	dao      *dao.Dao
	signer   *fakeSigner
	config   *ServiceConfig
	breaker  *breaker.Breaker
	resolver ScopeResolver
	share    ShareService
	access   AccessService
	security SecurityService
	urls     URLService

	eventRepo    domain.EventRepository
	folderRepo   domain.FolderRepository
	assetRepo    domain.AssetRepository
	shareRepo    domain.ShareTokenRepository
	snapshotRepo domain.ShareTokenAssetRepository
	audienceRepo domain.ShareAudienceRepository
	auditRepo    domain.ShareAccessLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	c := &dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "test.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	}
	db, err := dao.NewDBEngine(c)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	d := dao.New(db, context.Background(), dao.WithConfig(c))

	env := &testEnv{
		dao:    d,
		signer: &fakeSigner{fail: map[string]bool{}},
		config: &ServiceConfig{
			Share: ShareServiceConfig{
				PublicBaseURL:    "https://photos.test/s",
				MaxSelectionSize: 100,
				CleanupRetention: "30d",
				AuditRetention:   "90d",
			},
			Security: SecurityServiceConfig{
				IPHourlyLimit:    50,
				TokenHourlyLimit: 100,
				FailedThreshold:  20,
				Window:           "1h",
			},
			URL: URLServiceConfig{
				Expiry:         "60m",
				MaxConcurrency: 4,
			},
		},
		breaker: breaker.New(breaker.Config{FailureThreshold: 3, OpenTimeout: 30 * time.Second}),
	}

	log := zap.NewNop()
	env.eventRepo = dao.NewEventRepository(d)
	env.folderRepo = dao.NewFolderRepository(d)
	env.assetRepo = dao.NewAssetRepository(d)
	env.shareRepo = dao.NewShareTokenRepository(d)
	env.snapshotRepo = dao.NewShareTokenAssetRepository(d)
	env.audienceRepo = dao.NewShareAudienceRepository(d)
	env.auditRepo = dao.NewShareAccessLogRepository(d)

	env.resolver = NewScopeResolver(env.folderRepo, env.assetRepo)
	env.security = NewSecurityService(env.auditRepo, env.breaker, log, env.config)
	env.urls = NewURLService(env.signer, log, env.config)
	env.share = NewShareService(env.eventRepo, env.shareRepo, env.snapshotRepo,
		env.audienceRepo, env.auditRepo, env.resolver, log, env.config)
	env.access = NewAccessService(env.shareRepo, env.snapshotRepo, env.assetRepo,
		env.eventRepo, env.security, env.urls, nil, log)
	return env
}

// seedCatalog 造一个带目录树和照片的活动：
//
//	event 1 "Wedding"
//	├── folder 1
//	│   ├── asset 1 (approved)
//	│   ├── asset 2 (approved)
//	│   └── folder 2
//	│       └── asset 3 (approved)
//	└── folder 3
//	    ├── asset 4 (approved)
//	    └── asset 5 (pending)
func (env *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	now := timex.Time(time.Now())

	require.NoError(t, env.dao.DB().Create(&model.Event{
		ID: 1, Name: "Wedding", Slug: "wedding", Status: domain.EventStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, env.dao.DB().Create(&model.Event{
		ID: 2, Name: "Old Event", Slug: "old", Status: domain.EventStatusArchived,
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	folders := []*model.Folder{
		{ID: 1, EventID: 1, ParentID: 0, Name: "ceremony", CreatedAt: now, UpdatedAt: now},
		{ID: 2, EventID: 1, ParentID: 1, Name: "vows", CreatedAt: now, UpdatedAt: now},
		{ID: 3, EventID: 1, ParentID: 0, Name: "reception", CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, env.dao.DB().Create(folders).Error)

	assets := []*model.Asset{
		{ID: 1, EventID: 1, FolderID: 1, FileName: "a1.jpg", OriginalPath: "orig/a1.jpg", PreviewPath: "prev/a1.jpg", Status: domain.AssetStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: 2, EventID: 1, FolderID: 1, FileName: "a2.jpg", OriginalPath: "orig/a2.jpg", WatermarkPath: "wm/a2.jpg", Status: domain.AssetStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: 3, EventID: 1, FolderID: 2, FileName: "a3.jpg", OriginalPath: "orig/a3.jpg", Status: domain.AssetStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: 4, EventID: 1, FolderID: 3, FileName: "a4.jpg", OriginalPath: "orig/a4.jpg", Status: domain.AssetStatusApproved, CreatedAt: now, UpdatedAt: now},
		{ID: 5, EventID: 1, FolderID: 3, FileName: "a5.jpg", OriginalPath: "orig/a5.jpg", Status: domain.AssetStatusPending, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, env.dao.DB().Create(assets).Error)
}
