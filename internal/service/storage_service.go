package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	config "github.com/maheshrc27/cominiti-api/configs"
	"go.uber.org/zap"
)

var ErrStorageDisabled = errors.New("object storage is not configured")

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, file []byte, contentType string) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Storage struct {
	client    objectPutter
	bucket    string
	publicURL string
}

// NewR2Storage builds an S3 client against the Cloudflare R2 endpoint of the
// configured account. It returns a storage that always fails with
// ErrStorageDisabled when R2 is not configured.
func NewR2Storage(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	if !cfg.R2Enabled() {
		return disabledStorage{}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID))
	})
	return &R2Storage{client: client, bucket: cfg.R2.BucketName, publicURL: cfg.R2.PublicURL}, nil
}

func (r *R2Storage) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}
	if _, err := r.client.PutObject(ctx, input); err != nil {
		zap.L().Info("r2 upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("%s/%s", r.publicURL, key), nil
}

type disabledStorage struct{}

func (disabledStorage) Upload(context.Context, string, []byte, string) (string, error) {
	return "", ErrStorageDisabled
}
