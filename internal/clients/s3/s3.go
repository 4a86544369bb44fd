package s3client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ohs25-2-misoten/agaru-up-api/internal/config"
	"github.com/ohs25-2-misoten/agaru-up-api/internal/domain/errs"
)

// VideoStore uploads clip streams to an S3-compatible bucket
// (Cloudflare R2 in production, addressed through its S3 endpoint).
type VideoStore struct {
	uploader *manager.Uploader
	bucket   string
}

// New builds the object-store client. Missing credentials stop startup
// here rather than failing the first report.
func New(cfg config.Storage) (*VideoStore, error) {
	const op = "clients.s3.New"

	// .env files sometimes carry quoted values, strip them.
	accessKey := strings.Trim(cfg.AccessKeyID, `"'`)
	secretKey := strings.Trim(cfg.SecretAccessKey, `"'`)

	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("%s: R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required", op)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &VideoStore{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
	}, nil
}

// Upload streams body to the bucket under key. The uploader handles
// readers of unknown length, so the capture stream is piped through
// without buffering the whole clip in memory.
func (s *VideoStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	const op = "clients.s3.Upload"

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, errs.ErrUploadFailed, err)
	}

	return nil
}
