package local_fs

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/lumapix/photo-share-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath string `yaml:"save-path"`
	BaseURL  string `yaml:"base-url"`
}

// LocalFS serves assets straight from the local http file server.
// URLs carry an expiry hint but the local server does not enforce it;
// this driver exists for development and single-node deployments.
// LocalFS 直接通过本地 http 文件服务提供资产。URL 携带过期提示
// 但本地服务不强制校验，该驱动面向开发与单机部署。
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.BaseURL == "" {
		return nil, errors.New("local_fs: base-url is required")
	}
	return &LocalFS{Config: conf}, nil
}

// SignedURL 拼接本地直链，附带过期参数
func (p *LocalFS) SignedURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	base, err := url.Parse(p.Config.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	base.Path = fileurl.PathSuffixCheckAdd(base.Path, "/") + fileurl.PathPrefixTrim(fileKey)

	q := base.Query()
	q.Set("expires", strconv.FormatInt(time.Now().Add(expiry).Unix(), 10))
	base.RawQuery = q.Encode()

	return base.String(), nil
}
