package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"DocRegistry/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Archiver keeps exported workbooks in an S3 bucket.
type Archiver struct {
	bucket   string
	uploader uploader
}

// NewS3Archiver builds an archiver from the default credential chain (env
// locally, IAM role in production). It returns nil when no bucket is set.
func NewS3Archiver(ctx context.Context, cfg config.StorageConfig) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	opts := []func(*aws_config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, aws_config.WithRegion(cfg.Region))
	}

	awsCfg, err := aws_config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	slog.Info("S3 export archive enabled", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return &Archiver{bucket: cfg.Bucket, uploader: manager.NewUploader(client)}, nil
}

// Put uploads body under key. Archived exports are private.
func (a *Archiver) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("upload %s to S3: %w", key, err)
	}
	return nil
}
