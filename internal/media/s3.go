package media

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/amity-dating/amity/internal/config"
)

const presignExpiry = 15 * time.Minute

// S3Signer serves profile media from the public domain but hands out
// presigned GET URLs for verification pictures, which are not public objects.
type S3Signer struct {
	base    *Builder
	presign *s3.PresignClient
	bucket  string
}

// NewS3Signer builds the presign client from config. Works against AWS proper
// or any S3-compatible endpoint (minio in dev).
func NewS3Signer(ctx context.Context, cfg *config.Config) (*S3Signer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	return &S3Signer{
		base:    NewBuilder(cfg.App.Domain),
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3.Bucket,
	}, nil
}

func (s *S3Signer) ProfilePictureURL(uuid string) string { return s.base.ProfilePictureURL(uuid) }
func (s *S3Signer) AudioURL(uuid string) string          { return s.base.AudioURL(uuid) }

func (s *S3Signer) VerificationPictureURL(ctx context.Context, uuid string) (string, error) {
	key := "verification/" + uuid

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
