package service

import (
	"context"
	"testing"

	"github.com/lumapix/photo-share-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assetIDs(assets []*domain.Asset) []int64 {
	ids := make([]int64, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestResolveEventScope(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	assets, err := env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{Scope: domain.ScopeEvent})
	require.NoError(t, err)
	// 未审核的照片不包含在内
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, assetIDs(assets))
}

func TestResolveFolderScope(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	// 不递归：只有目录自身的照片
	assets, err := env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:    domain.ScopeFolder,
		AnchorID: 1,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, assetIDs(assets))

	// 递归：含子目录照片
	assets, err = env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:              domain.ScopeFolder,
		AnchorID:           1,
		IncludeDescendants: true,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, assetIDs(assets))

	// 目录不属于该活动
	_, err = env.resolver.Resolve(ctx, 2, &domain.ScopeConfig{
		Scope:    domain.ScopeFolder,
		AnchorID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrScopeInvalid)

	// 目录不存在
	_, err = env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:    domain.ScopeFolder,
		AnchorID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrScopeInvalid)
}

func TestResolveSelectionScope(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	assets, err := env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:   domain.ScopeSelection,
		Filters: domain.ScopeFilters{AssetIDs: []int64{1, 4}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 4}, assetIDs(assets))

	// 清单含不存在的照片，整体拒绝
	_, err = env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:   domain.ScopeSelection,
		Filters: domain.ScopeFilters{AssetIDs: []int64{1, 999}},
	})
	assert.ErrorIs(t, err, domain.ErrScopeInvalid)

	// 清单含未审核的照片，整体拒绝
	_, err = env.resolver.Resolve(ctx, 1, &domain.ScopeConfig{
		Scope:   domain.ScopeSelection,
		Filters: domain.ScopeFilters{AssetIDs: []int64{1, 5}},
	})
	assert.ErrorIs(t, err, domain.ErrScopeInvalid)
}

func TestOwnerEvent(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)
	ctx := context.Background()

	id, err := env.resolver.OwnerEvent(ctx, &domain.ScopeConfig{
		Scope: domain.ScopeFolder, AnchorID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = env.resolver.OwnerEvent(ctx, &domain.ScopeConfig{
		Scope:   domain.ScopeSelection,
		Filters: domain.ScopeFilters{AssetIDs: []int64{4}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// event 范围没有可推导的锚点
	_, err = env.resolver.OwnerEvent(ctx, &domain.ScopeConfig{Scope: domain.ScopeEvent})
	assert.ErrorIs(t, err, domain.ErrEventUnresolvable)

	// 锚点不存在
	_, err = env.resolver.OwnerEvent(ctx, &domain.ScopeConfig{
		Scope: domain.ScopeFolder, AnchorID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrEventUnresolvable)
}

func TestScopeConfigValidate(t *testing.T) {
	cases := []struct {
		name  string
		scope domain.ScopeConfig
		valid bool
	}{
		{"event", domain.ScopeConfig{Scope: domain.ScopeEvent}, true},
		{"folder with anchor", domain.ScopeConfig{Scope: domain.ScopeFolder, AnchorID: 1}, true},
		{"folder without anchor", domain.ScopeConfig{Scope: domain.ScopeFolder}, false},
		{"selection with ids", domain.ScopeConfig{Scope: domain.ScopeSelection, Filters: domain.ScopeFilters{AssetIDs: []int64{1}}}, true},
		{"selection empty", domain.ScopeConfig{Scope: domain.ScopeSelection}, false},
		{"unknown", domain.ScopeConfig{Scope: "banana"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.scope.Validate()
			if c.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrScopeInvalid)
			}
		})
	}
}
