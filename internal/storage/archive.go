// Package storage archives locally generated invoice PDFs to S3-compatible
// object storage (Cloudflare R2). Archiving is best-effort; failures are
// logged and never block a download.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ncwcc-portal/internal/config"
)

type Archive struct {
	client *s3.Client
	bucket string
}

// New builds the archive client from config. Returns nil (disabled) when
// the archive is not configured.
func New(cfg *config.Config) *Archive {
	a := cfg.Archive
	if a.Endpoint == "" || a.AccessKey == "" || a.SecretKey == "" || a.Bucket == "" {
		log.Printf("[Archive] not configured, PDF archiving disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.AccessKey, a.SecretKey, "")),
		awsconfig.WithRegion(a.Region),
	)
	if err != nil {
		log.Printf("[Archive] failed to load AWS config: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.Endpoint)
	})

	return &Archive{client: client, bucket: a.Bucket}
}

// Put stores an object under the given key
func (a *Archive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return nil
}
