package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lumapix/photo-share-service/internal/domain"
	"github.com/lumapix/photo-share-service/internal/dto"
	"github.com/lumapix/photo-share-service/pkg/storage"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// URLService defines the signed URL generation interface
// URLService 定义签名地址生成接口
type URLService interface {
	// SignAssets generates signed URLs for assets in parallel.
	// Individual failures leave the URL empty, all failing is an error.
	// SignAssets 并行为照片生成签名地址，单张失败置空，全部失败报错
	SignAssets(ctx context.Context, assets []*domain.Asset) ([]*dto.AccessAssetResponse, time.Time, error)
}

// urlService implementation of URLService interface
// urlService 实现 URLService 接口
type urlService struct {
	store  storage.Storager
	logger *zap.Logger
	config *ServiceConfig
}

// NewURLService creates URLService instance
// NewURLService 创建 URLService 实例
func NewURLService(store storage.Storager, log *zap.Logger, config *ServiceConfig) URLService {
	return &urlService{
		store:  store,
		logger: log,
		config: config,
	}
}

func (s *urlService) SignAssets(ctx context.Context, assets []*domain.Asset) ([]*dto.AccessAssetResponse, time.Time, error) {
	expiry := s.config.URL.GetExpiry()
	expiresAt := time.Now().Add(expiry)

	list := make([]*dto.AccessAssetResponse, len(assets))
	var failed int64

	g := errgroup.Group{}
	limit := s.config.URL.MaxConcurrency
	if limit <= 0 {
		limit = 8
	}
	g.SetLimit(limit)

	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			item := &dto.AccessAssetResponse{
				ID:        asset.ID,
				FileName:  asset.FileName,
				MimeType:  asset.MimeType,
				SizeBytes: asset.SizeBytes,
			}
			url, err := s.store.SignedURL(ctx, asset.DeliveryKey(), expiry)
			if err != nil {
				atomic.AddInt64(&failed, 1)
				s.logger.Warn("sign asset url failed",
					zap.Int64("assetID", asset.ID),
					zap.String("fileKey", asset.DeliveryKey()),
					zap.Error(err))
			} else {
				item.URL = url
			}
			list[i] = item
			return nil
		})
	}
	_ = g.Wait()

	if n := atomic.LoadInt64(&failed); len(assets) > 0 && n == int64(len(assets)) {
		return nil, time.Time{}, errors.New("signing failed for all assets")
	}
	return list, expiresAt, nil
}

var _ URLService = (*urlService)(nil)
