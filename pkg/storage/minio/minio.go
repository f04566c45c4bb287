package minio

import (
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	UseSSL          bool   `yaml:"use-ssl"`
	CustomPath      string `yaml:"custom-path"`
}

type MinIO struct {
	Client *minioSDK.Client
	Config *Config
}

// NewClient 创建 MinIO 存储实例
func NewClient(conf *Config) (*MinIO, error) {
	client, err := minioSDK.New(conf.Endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.AccessKeySecret, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	return &MinIO{
		Client: client,
		Config: conf,
	}, nil
}
