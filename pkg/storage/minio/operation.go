package minio

import (
	"context"
	"net/url"
	"time"

	"github.com/lumapix/photo-share-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// SignedURL 为对象生成限时的 GET 预签名 URL
func (p *MinIO) SignedURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileurl.PathPrefixTrim(fileKey)

	u, err := p.Client.PresignedGetObject(ctx, p.Config.BucketName, fileKey, expiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "minio")
	}

	return u.String(), nil
}
