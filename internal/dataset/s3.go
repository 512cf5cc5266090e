// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pdiddy/elastic-tutorial/internal/frame"
	"github.com/pdiddy/elastic-tutorial/internal/secrets"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

// ObjectGetter is the subset of the S3 client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a mirrored copy of the dataset from an S3 bucket.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
	SHA256 string
}

// Name returns the source identifier.
func (s *S3Source) Name() string { return "s3" }

// Fetch downloads the object and decodes it. Any S3 error is ErrFetch.
func (s *S3Source) Fetch(ctx context.Context) (*frame.Frame, error) {
	if s.Bucket == "" || s.Key == "" {
		return nil, fmt.Errorf("%w: s3 source requires bucket and key", ErrFetch)
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: s3://%s/%s: %w", ErrFetch, s.Bucket, s.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading s3://%s/%s: %w", ErrFetch, s.Bucket, s.Key, err)
	}
	return decodeVerified(data, s.SHA256)
}

// NewS3Client creates an S3 client for cfg. Static credentials from the
// secrets directory take precedence over the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg types.S3Config, creds secrets.Secrets) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if id, secret, ok := creds.AWSCredentials(); ok {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
