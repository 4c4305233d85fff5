// internal/app/system/objstore/s3.go
package objstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store writes objects to an S3 bucket under an optional key prefix.
type S3Store struct {
	client    *s3.Client
	bucket    string
	prefix    string
	region    string
	publicURL string // optional CDN/CloudFront base; falls back to the bucket URL
}

// NewS3 builds an S3-backed store using the default AWS credential
// chain. publicURL may be empty, in which case object URLs point at the
// bucket's virtual-hosted endpoint.
func NewS3(ctx context.Context, region, bucket, prefix, publicURL string) (*S3Store, error) {
	if region == "" || bucket == "" {
		return nil, fmt.Errorf("objstore: s3 region and bucket are required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("objstore: load aws config: %w", err)
	}

	return &S3Store{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		prefix:    strings.TrimPrefix(prefix, "/"),
		region:    region,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
		Body:   r,
	}
	if opts != nil && opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("objstore: put %q: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + s.objectKey(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.objectKey(key))
}

func (s *S3Store) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.prefix == "" {
		return key
	}
	return strings.TrimSuffix(s.prefix, "/") + "/" + key
}
