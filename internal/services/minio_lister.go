package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/damacus/bucket-index/internal/config"
	"github.com/damacus/bucket-index/internal/errs"
)

// minioCore is the subset of minio.Core used for listing.
type minioCore interface {
	ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxkeys int) (minio.ListBucketV2Result, error)
}

// MinioLister lists a bucket through the low-level minio Core API so that
// exactly one ListObjectsV2 request is sent per call.
type MinioLister struct {
	core minioCore
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	// Local development endpoints
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, ...), not domain names like minio.example.com
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}

// minioCredentials uses static keys when configured and otherwise falls back
// to the AWS environment, the shared credentials file and IAM.
func minioCredentials(cfg config.StorageConfig) *credentials.Credentials {
	if cfg.AccessKey != "" {
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
	})
}

// NewMinioLister connects to the endpoint in cfg.
func NewMinioLister(cfg config.StorageConfig) (*MinioLister, error) {
	secure := shouldUseSSL(cfg.Endpoint)
	if cfg.UseSSL != nil {
		secure = *cfg.UseSSL
	}

	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  minioCredentials(cfg),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create minio client", err)
	}
	return &MinioLister{core: core}, nil
}

// ListDirectory implements ObjectLister.
func (l *MinioLister) ListDirectory(ctx context.Context, in ListDirectoryInput) (ListDirectoryResult, error) {
	if err := ctx.Err(); err != nil {
		return ListDirectoryResult{}, mapMinioError(err, "failed to list objects")
	}

	maxKeys := in.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}

	res, err := l.core.ListObjectsV2(in.Bucket, in.Prefix, "", "", in.Delimiter, maxKeys)
	if err != nil {
		return ListDirectoryResult{}, mapMinioError(err, "failed to list objects")
	}

	out := ListDirectoryResult{IsTruncated: res.IsTruncated}
	for _, p := range res.CommonPrefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, p.Prefix)
	}
	for _, obj := range res.Contents {
		out.Objects = append(out.Objects, ObjectEntry{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}
