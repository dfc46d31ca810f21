package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cliper/internal/config"
)

// S3Service stores post images in Amazon S3 (or a compatible API).
type S3Service struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

func NewS3Service(client *s3.Client, bucket, publicURL string) *S3Service {
	return &S3Service{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: publicURL,
	}
}

func NewS3FromConfig(ctx context.Context, cfg config.Storage) (*S3Service, error) {
	if cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.S3.Profile))
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3Service(client, cfg.S3.Bucket, s3PublicURL(cfg)), nil
}

func s3PublicURL(cfg config.Storage) string {
	switch {
	case cfg.PublicURL != "":
		return cfg.PublicURL
	case cfg.S3.Endpoint != "":
		return joinURL(cfg.S3.Endpoint, cfg.S3.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3.Bucket, cfg.S3.Region)
	}
}

func (s *S3Service) UploadImage(ctx context.Context, ownerID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	key := objectName(ownerID, fileName, time.Now())

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(resolveContentType(contentType, fileName)),
		ContentLength: aws.Int64(size),
		Metadata: map[string]string{
			"original-filename": fileName,
			"owner-id":          ownerID,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("upload %s: %w", key, err)
	}

	return key, joinURL(s.publicURL, key), nil
}

func (s *S3Service) DeleteImage(ctx context.Context, objectName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

func (s *S3Service) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

var _ Storage = (*S3Service)(nil)
