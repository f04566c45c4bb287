// Package storage 统一封装对象存储的限时签名 URL 能力
// 上层只依赖 Storager 接口，具体驱动由配置选择
package storage

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/pkg/code"
	"github.com/lumapix/photo-share-service/pkg/storage/aws_s3"
	"github.com/lumapix/photo-share-service/pkg/storage/cloudflare_r2"
	"github.com/lumapix/photo-share-service/pkg/storage/local_fs"
	"github.com/lumapix/photo-share-service/pkg/storage/minio"
)

type Type = string

const S3 Type = "s3"
const R2 Type = "r2"
const MinIO Type = "minio"
const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	S3:    true,
	R2:    true,
	MinIO: true,
	LOCAL: true,
}

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	UseSSL          bool   `yaml:"use-ssl" default:"true"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/assets"`
	BaseURL  string `yaml:"base-url"`
}

// Storager is the blob-URL-signing capability the share service consumes.
// Storager 是分享服务消费的 blob 限时签名能力。
type Storager interface {
	// SignedURL returns a time-limited URL for the stored object at fileKey
	// SignedURL 返回 fileKey 对应对象的限时访问 URL
	SignedURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error)
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath: config.SavePath,
			BaseURL:  config.BaseURL,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case MinIO:
		return minio.NewClient(&minio.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			UseSSL:          config.UseSSL,
			CustomPath:      config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
