package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/carhive-dev/carhive/internal/config"
	"github.com/carhive-dev/carhive/internal/logger"
)

// S3Store uploads listing images to an S3-compatible bucket. The client
// is built once at startup from the injected configuration.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Public.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Private.S3Auth.AccessKey,
			cfg.Private.S3Auth.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Public.S3.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Public.S3.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Public.S3.Bucket,
		publicURL: strings.TrimSuffix(cfg.Public.S3.PublicURL, "/"),
	}, nil
}

// UploadAll stores every image under a random key and returns the
// resulting public URLs in upload order.
func (s *S3Store) UploadAll(ctx context.Context, images []*PendingImage) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		key := storageKey(img.Filename)
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        img.Data,
			ContentType: aws.String(img.MimeType),
		})
		if err != nil {
			logger.Log.Error("failed to upload image", "filename", img.Filename, "error", err)
			return nil, fmt.Errorf("failed to upload image %s: %w", img.Filename, err)
		}
		urls = append(urls, fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key))
	}
	return urls, nil
}

func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("car_uploads/%d/%d/%d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(filename))
}
