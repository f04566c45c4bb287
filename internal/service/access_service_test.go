package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	"github.com/lumapix/photo-share-service/pkg/util"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueShare 造一个 folder 1 范围的分享
func issueShare(t *testing.T, env *testEnv, mutate func(req *dto.ShareCreateRequest)) *dto.ShareResponse {
	t.Helper()
	req := &dto.ShareCreateRequest{
		EventID:            1,
		Scope:              "folder",
		AnchorID:           1,
		IncludeDescendants: true,
		Title:              "Ceremony",
	}
	if mutate != nil {
		mutate(req)
	}
	resp, err := env.share.CreateShare(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func lastAccessLog(t *testing.T, env *testEnv, token string) *domain.ShareAccessLog {
	t.Helper()
	logs, err := env.auditRepo.ListByToken(context.Background(), token, 1, 1)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	return logs[0]
}

func TestAccessGrant(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.MaxViews = 3
	})

	resp, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	assert.Equal(t, "Ceremony", resp.Title)
	assert.Equal(t, "Wedding", resp.EventName)
	assert.Equal(t, int64(2), resp.ViewsLeft)
	require.Len(t, resp.Assets, 3)

	// 水印 > 预览 > 原图 的交付优先级
	byID := map[int64]string{}
	for _, a := range resp.Assets {
		byID[a.ID] = a.URL
	}
	assert.Contains(t, byID[1], "prev/a1.jpg")
	assert.Contains(t, byID[2], "wm/a2.jpg")
	assert.Contains(t, byID[3], "orig/a3.jpg")

	// 访问计数自增，审计记录成功
	got, err := env.shareRepo.GetByID(ctx, share.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ViewCount)
	require.NotNil(t, got.LastViewedAt)

	entry := lastAccessLog(t, env, share.Token)
	assert.True(t, entry.Success)
	assert.Equal(t, "test-agent", entry.UserAgent)
}

func TestAccessInvalidFormat(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	for _, token := range []string{"", "short", strings.Repeat("g", 64), strings.Repeat("A", 64)} {
		_, err := env.access.Access(ctx, &dto.AccessRequest{Token: token}, "10.0.0.1", "")
		assert.ErrorIs(t, err, domain.ErrShareNotFound)
	}
}

// 任何非 64 位小写十六进制串都在格式检查处被拒
func TestAccessTokenFormatProperty(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("malformed tokens are rejected", prop.ForAll(
		func(token string) bool {
			if util.IsValidShareToken(strings.ToLower(strings.TrimSpace(token))) {
				return true // 碰巧合法的串不在本性质范围内
			}
			_, err := env.access.Access(ctx, &dto.AccessRequest{Token: token}, "10.0.0.9", "")
			return err == domain.ErrShareNotFound
		},
		gen.AnyString(),
	))
	properties.TestingRun(t)
}

func TestAccessUnknownAndRevoked(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	unknown, _ := util.GenerateShareToken()
	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: unknown}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareNotFound)
	assert.Equal(t, domain.FailureNotFound, lastAccessLog(t, env, unknown).FailureReason)

	share := issueShare(t, env, nil)
	require.NoError(t, env.share.RevokeShare(ctx, share.ID))

	// 已撤销与不存在表现一致
	_, err = env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareNotFound)
}

func TestAccessExpired(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.ExpiresIn = "1h"
	})
	past := time.Now().Add(-time.Minute)
	require.NoError(t, env.dao.DB().Exec(
		"UPDATE share_token SET expires_at = ? WHERE id = ?", past, share.ID).Error)

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareExpired)
	assert.Equal(t, domain.FailureExpired, lastAccessLog(t, env, share.Token).FailureReason)
}

func TestAccessViewLimit(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.MaxViews = 2
	})

	for i := 0; i < 2; i++ {
		_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
		require.NoError(t, err)
	}

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareMaxViews)
	assert.Equal(t, domain.FailureMaxViews, lastAccessLog(t, env, share.Token).FailureReason)
}

func TestAccessPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.Password = "sunset42"
	})

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrSharePasswordNeeded)
	assert.Equal(t, domain.FailurePasswordRequired, lastAccessLog(t, env, share.Token).FailureReason)

	_, err = env.access.Access(ctx, &dto.AccessRequest{Token: share.Token, Password: "wrong"}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrSharePasswordWrong)
	assert.Equal(t, domain.FailurePasswordWrong, lastAccessLog(t, env, share.Token).FailureReason)

	resp, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token, Password: "sunset42"}, "10.0.0.1", "")
	require.NoError(t, err)
	assert.Len(t, resp.Assets, 3)
}

// 过期检查先于口令，正确口令也不放行
func TestAccessExpiredBeforePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.Password = "sunset42"
		req.ExpiresIn = "1h"
	})
	past := time.Now().Add(-time.Minute)
	require.NoError(t, env.dao.DB().Exec(
		"UPDATE share_token SET expires_at = ? WHERE id = ?", past, share.ID).Error)

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token, Password: "sunset42"}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareExpired)
	assert.Equal(t, domain.FailureExpired, lastAccessLog(t, env, share.Token).FailureReason)
}

// 次数检查先于口令，用尽后正确口令同样拒绝
func TestAccessViewLimitBeforePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, func(req *dto.ShareCreateRequest) {
		req.Password = "sunset42"
		req.MaxViews = 1
	})

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token, Password: "sunset42"}, "10.0.0.1", "")
	require.NoError(t, err)

	_, err = env.access.Access(ctx, &dto.AccessRequest{Token: share.Token, Password: "sunset42"}, "10.0.0.1", "")
	assert.ErrorIs(t, err, domain.ErrShareMaxViews)
	assert.Equal(t, domain.FailureMaxViews, lastAccessLog(t, env, share.Token).FailureReason)
}

func TestAccessRateLimitByIP(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	env.config.Security.IPHourlyLimit = 3
	ctx := context.Background()

	share := issueShare(t, env, nil)

	for i := 0; i < 3; i++ {
		_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.1.1.1", "")
		require.NoError(t, err)
	}

	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.1.1.1", "")
	assert.ErrorIs(t, err, domain.ErrAccessRateLimited)
	assert.Equal(t, domain.FailureRateLimited, lastAccessLog(t, env, share.Token).FailureReason)

	// 其他 IP 不受影响
	_, err = env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.1.1.2", "")
	assert.NoError(t, err)
}

func TestAccessSuspiciousIPBlocked(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	env.config.Security.FailedThreshold = 5
	ctx := context.Background()

	// 连续探测不存在的 token
	for i := 0; i < 5; i++ {
		token, _ := util.GenerateShareToken()
		_, err := env.access.Access(ctx, &dto.AccessRequest{Token: token}, "10.2.2.2", "")
		assert.ErrorIs(t, err, domain.ErrShareNotFound)
	}

	// 之后即便拿着有效 token 也会被封
	share := issueShare(t, env, nil)
	_, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.2.2.2", "")
	assert.ErrorIs(t, err, domain.ErrAccessSuspiciousIP)

	suspicious, err := env.security.ListSuspiciousIPs(ctx)
	require.NoError(t, err)
	assert.Contains(t, suspicious.IPs, "10.2.2.2")
}

// 快照里被删除的照片在访问时静默跳过
func TestAccessSkipsDeletedSnapshotAssets(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	share := issueShare(t, env, nil)
	require.NoError(t, env.dao.DB().Exec("DELETE FROM asset WHERE id = 2").Error)

	resp, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	require.NoError(t, err)
	assert.Len(t, resp.Assets, 2)
}

// 单张签名失败置空 URL，不影响其余照片
func TestAccessPartialSigningFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	env.signer.fail["prev/a1.jpg"] = true
	ctx := context.Background()

	share := issueShare(t, env, nil)
	resp, err := env.access.Access(ctx, &dto.AccessRequest{Token: share.Token}, "10.0.0.1", "")
	require.NoError(t, err)

	var empty, ok int
	for _, a := range resp.Assets {
		if a.URL == "" {
			empty++
		} else {
			ok++
		}
	}
	assert.Equal(t, 1, empty)
	assert.Equal(t, 2, ok)
}
