package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// S3Uploader はS3互換ストレージ（AWS S3 / Cloudflare R2 など）にファイルをアップロードします。
type S3Uploader struct {
	uploader s3manageriface.UploaderAPI
	bucket   string
	baseURL  string
}

// NewS3Uploader は設定からS3Uploaderを生成します。
// Endpoint が指定された場合はパススタイルでアクセスします。
func NewS3Uploader(cfg Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required for s3 storage")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsConfig := &aws.Config{Region: aws.String(region)}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return newS3Uploader(s3manager.NewUploader(sess), cfg.Bucket, baseURL), nil
}

func newS3Uploader(u s3manageriface.UploaderAPI, bucket, baseURL string) *S3Uploader {
	return &S3Uploader{uploader: u, bucket: bucket, baseURL: baseURL}
}

// Upload はrの内容をkeyにアップロードし、公開URLを返します。
func (s *S3Uploader) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return joinURL(s.baseURL, key), nil
}
