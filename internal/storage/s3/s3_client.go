package s3

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"legalyze/internal/config"
	"legalyze/internal/port"
)

// Client publishes reports to an S3-compatible bucket.
type Client struct {
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Client creates a new S3-backed ObjectStorage implementation.
func NewS3Client(cfg *config.S3Config) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.Concurrency = 1
	})

	log.Printf("s3.NewS3Client: publishing reports to bucket %s (region %s)", cfg.Bucket, cfg.Region)
	return &Client{
		presigner: s3.NewPresignClient(client),
		uploader:  uploader,
	}, nil
}

var _ port.ObjectStorage = (*Client)(nil)

// Put uploads a report object.
func (c *Client) Put(ctx context.Context, input port.PutObjectInput) (*port.PutObjectOutput, error) {
	req := &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	}
	if input.FileName != "" {
		req.ContentDisposition = aws.String(fmt.Sprintf(`attachment; filename="%s"`, input.FileName))
	}
	if len(input.Metadata) > 0 {
		req.Metadata = input.Metadata
	}

	result, err := c.uploader.Upload(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	return &port.PutObjectOutput{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

// PresignGet returns a time-limited GET URL for key.
func (c *Client) PresignGet(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	result, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(time.Duration(expirySeconds)*time.Second))
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}
	return result.URL, nil
}
