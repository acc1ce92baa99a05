package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/teamup-dev/teamup-backend/config"
)

// Presigner hands out short-lived upload URLs for profile images and deletes
// replaced objects. Objects live under profiles/{userID}/{timestamp}-{file}.
type Presigner struct {
	client  *awss3.Client
	presign *awss3.PresignClient
	bucket  string
	region  string
	now     func() time.Time
}

func NewPresigner(ctx context.Context, cfg *config.AWSConfig) (*Presigner, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg)
	return &Presigner{
		client:  client,
		presign: awss3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		region:  cfg.Region,
		now:     time.Now,
	}, nil
}

// PresignUpload returns a PUT URL and the object key it will write to.
func (p *Presigner) PresignUpload(ctx context.Context, userID, fileName, contentType string, expiresIn time.Duration) (url, key string, err error) {
	key = fmt.Sprintf("profiles/%s/%d-%s", userID, p.now().UnixMilli(), fileName)

	req, err := p.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return req.URL, key, nil
}

// PublicURL converts an object key into its public bucket URL.
func (p *Presigner) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}

// Delete removes an object. Used when a profile image is replaced.
func (p *Presigner) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("s3 key required for deletion")
	}
	_, err := p.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	return err
}
