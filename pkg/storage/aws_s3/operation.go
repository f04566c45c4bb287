package aws_s3

import (
	"context"
	"time"

	"github.com/lumapix/photo-share-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// SignedURL 为对象生成限时的 GET 预签名 URL
func (p *S3) SignedURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileurl.PathPrefixTrim(fileKey)

	req, err := p.PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}

	return req.URL, nil
}
