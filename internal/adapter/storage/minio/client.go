// internal/adapter/storage/minio/client.go
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

// Options — параметры подключения к MinIO / S3
type Options struct {
	Endpoint        string // host:port без схемы
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Region          string
}

func (o Options) validate() error {
	if o.Endpoint == "" || o.AccessKeyID == "" || o.SecretAccessKey == "" || o.Bucket == "" || o.Region == "" {
		return errors.New("MinIO credentials (MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_ENDPOINT, MINIO_REGION) must be set")
	}
	return nil
}

// endpointURL — адрес MinIO со схемой
func (o Options) endpointURL() string {
	if o.UseSSL {
		return "https://" + o.Endpoint
	}
	return "http://" + o.Endpoint
}

// Client представляет собой клиент для взаимодействия с MinIO (S3-совместимым хранилищем).
type Client struct {
	s3Client    *s3.Client
	uploader    *manager.Uploader
	bucketName  string
	endpointURL string
	logger      *slog.Logger
}

// NewMinioClient создает клиент и при необходимости создаёт бакет.
func NewMinioClient(ctx context.Context, opts Options, logger *slog.Logger) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cfgAws, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(cfgAws, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.endpointURL())
		o.UsePathStyle = true
	})

	c := &Client{
		s3Client:    s3Client,
		uploader:    manager.NewUploader(s3Client),
		bucketName:  opts.Bucket,
		endpointURL: opts.endpointURL(),
		logger:      logger,
	}

	if err := c.ensureBucket(ctx, opts.Region); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context, region string) error {
	headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.s3Client.HeadBucket(headCtx, &s3.HeadBucketInput{Bucket: aws.String(c.bucketName)})
	if err == nil {
		c.logger.Info("bucket already exists", "bucket", c.bucketName)
		return nil
	}

	c.logger.Info("bucket not found, creating", "bucket", c.bucketName)

	_, err = c.s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucketName),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.bucketName, err)
	}

	waiter := s3.NewBucketExistsWaiter(c.s3Client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucketName)}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s' to be created: %w", c.bucketName, err)
	}

	c.logger.Info("bucket created", "bucket", c.bucketName)
	return nil
}

// UploadFile загружает объект и возвращает его URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	start := time.Now()

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        fileContent,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", objectKey, c.bucketName, err)
	}

	location := objectURL(c.endpointURL, c.bucketName, objectKey)
	c.logger.Info("file uploaded",
		"key", objectKey,
		"location", location,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return location, nil
}

// objectURL — path-style адрес объекта
func objectURL(endpointURL, bucket, key string) string {
	u, err := url.JoinPath(endpointURL, bucket, key)
	if err != nil {
		return fmt.Sprintf("%s/%s/%s", endpointURL, bucket, key)
	}
	return u
}
