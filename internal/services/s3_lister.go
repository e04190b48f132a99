package services

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/damacus/bucket-index/internal/config"
	"github.com/damacus/bucket-index/internal/errs"
)

// s3ListAPI is the subset of *s3.S3 used for listing.
type s3ListAPI interface {
	ListObjectsWithContext(ctx aws.Context, input *s3.ListObjectsInput, opts ...request.Option) (*s3.ListObjectsOutput, error)
}

// S3Lister lists a bucket with the AWS SDK, one ListObjects request per call.
type S3Lister struct {
	api s3ListAPI
}

// NewS3Lister creates a session for cfg.Region. Static keys are used when
// configured, otherwise the SDK default chain (env, shared file, role).
func NewS3Lister(cfg config.StorageConfig) (*S3Lister, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.UseSSL != nil {
		awsCfg.DisableSSL = aws.Bool(!*cfg.UseSSL)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create aws session", err)
	}
	return &S3Lister{api: s3.New(sess)}, nil
}

// ListDirectory implements ObjectLister.
func (l *S3Lister) ListDirectory(ctx context.Context, in ListDirectoryInput) (ListDirectoryResult, error) {
	maxKeys := in.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	page, err := l.api.ListObjectsWithContext(ctx, &s3.ListObjectsInput{
		Bucket:    aws.String(in.Bucket),
		Prefix:    aws.String(in.Prefix),
		Delimiter: aws.String(in.Delimiter),
		MaxKeys:   aws.Int64(int64(maxKeys)),
	})
	if err != nil {
		return ListDirectoryResult{}, mapS3Error(err, "failed to list objects")
	}

	out := ListDirectoryResult{IsTruncated: aws.BoolValue(page.IsTruncated)}
	for _, p := range page.CommonPrefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, aws.StringValue(p.Prefix))
	}
	for _, obj := range page.Contents {
		out.Objects = append(out.Objects, ObjectEntry{
			Key:          aws.StringValue(obj.Key),
			Size:         aws.Int64Value(obj.Size),
			LastModified: aws.TimeValue(obj.LastModified),
		})
	}
	return out, nil
}
