package service

import (
	"context"
	"testing"

	"github.com/lumapix/photo-share-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAssets() []*domain.Asset {
	return []*domain.Asset{
		{ID: 1, FileName: "a1.jpg", OriginalPath: "orig/a1.jpg", PreviewPath: "prev/a1.jpg"},
		{ID: 2, FileName: "a2.jpg", OriginalPath: "orig/a2.jpg", WatermarkPath: "wm/a2.jpg"},
		{ID: 3, FileName: "a3.jpg", OriginalPath: "orig/a3.jpg"},
	}
}

func TestSignAssets(t *testing.T) {
	signer := &fakeSigner{fail: map[string]bool{}}
	svc := NewURLService(signer, zap.NewNop(), &ServiceConfig{
		URL: URLServiceConfig{Expiry: "60m", MaxConcurrency: 2},
	})

	list, expiresAt, err := svc.SignAssets(context.Background(), testAssets())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.False(t, expiresAt.IsZero())

	// 顺序与入参一致，优先级 水印 > 预览 > 原图
	assert.Equal(t, int64(1), list[0].ID)
	assert.Contains(t, list[0].URL, "prev/a1.jpg")
	assert.Contains(t, list[1].URL, "wm/a2.jpg")
	assert.Contains(t, list[2].URL, "orig/a3.jpg")
}

func TestSignAssetsAllFail(t *testing.T) {
	signer := &fakeSigner{fail: map[string]bool{
		"prev/a1.jpg": true,
		"wm/a2.jpg":   true,
		"orig/a3.jpg": true,
	}}
	svc := NewURLService(signer, zap.NewNop(), &ServiceConfig{
		URL: URLServiceConfig{Expiry: "60m"},
	})

	_, _, err := svc.SignAssets(context.Background(), testAssets())
	assert.Error(t, err)
}

func TestSignAssetsEmpty(t *testing.T) {
	svc := NewURLService(&fakeSigner{}, zap.NewNop(), &ServiceConfig{
		URL: URLServiceConfig{Expiry: "60m"},
	})

	list, _, err := svc.SignAssets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
