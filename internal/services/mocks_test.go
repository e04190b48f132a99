package services

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// MockObjectLister implements ObjectLister for testing
type MockObjectLister struct {
	mock.Mock
}

func (m *MockObjectLister) ListDirectory(ctx context.Context, in ListDirectoryInput) (ListDirectoryResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(ListDirectoryResult), args.Error(1)
}

// MockMinioCore implements minioCore for testing
type MockMinioCore struct {
	mock.Mock
}

func (m *MockMinioCore) ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxkeys int) (minio.ListBucketV2Result, error) {
	args := m.Called(bucketName, objectPrefix, startAfter, continuationToken, delimiter, maxkeys)
	return args.Get(0).(minio.ListBucketV2Result), args.Error(1)
}

// MockS3API implements s3ListAPI for testing
type MockS3API struct {
	mock.Mock
}

func (m *MockS3API) ListObjectsWithContext(ctx aws.Context, input *s3.ListObjectsInput, opts ...request.Option) (*s3.ListObjectsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsOutput), args.Error(1)
}
