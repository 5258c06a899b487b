package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mafgems/api/internal/config"
)

// StorageClient defines the interface for object storage operations
type StorageClient interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// SupabaseStorageClient implements StorageClient against the S3-compatible
// endpoint of Supabase Storage
type SupabaseStorageClient struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string
}

// NewSupabaseStorageClient creates a new storage client
func NewSupabaseStorageClient(cfg *config.SupabaseConfig) (*SupabaseStorageClient, error) {
	endpoint := cfg.StorageEndpoint()
	if endpoint == "" || cfg.StorageAccessKeyID == "" || cfg.StorageSecretAccessKey == "" {
		return nil, fmt.Errorf("supabase storage configuration incomplete")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKeyID,
			cfg.StorageSecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(cfg.StorageRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &SupabaseStorageClient{
		s3Client:   s3Client,
		bucketName: cfg.StorageBucket,
		publicURL:  cfg.PublicObjectURL(),
	}, nil
}

// Upload stores an object and returns its public URL
func (c *SupabaseStorageClient) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if _, err := c.s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to storage: %w", err)
	}

	return c.GetPublicURL(key), nil
}

// Delete removes an object
func (c *SupabaseStorageClient) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	}

	if _, err := c.s3Client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from storage: %w", err)
	}

	return nil
}

// GetPublicURL returns the public object URL for a key in a public bucket
func (c *SupabaseStorageClient) GetPublicURL(key string) string {
	return strings.TrimRight(c.publicURL, "/") + "/" + strings.TrimLeft(key, "/")
}
