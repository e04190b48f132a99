package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/minio/minio-go/v7"

	"github.com/damacus/bucket-index/internal/errs"
)

// kindForCode maps S3 protocol error codes shared by minio and the AWS SDK.
func kindForCode(code string) (errs.ErrKind, bool) {
	switch code {
	case "NoSuchBucket", "NoSuchKey":
		return errs.ErrKindNotFound, true
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
		return errs.ErrKindPermissionDenied, true
	case "InvalidBucketName", "InvalidArgument":
		return errs.ErrKindInvalidInput, true
	case "RequestTimeout", "SlowDown", request.CanceledErrorCode:
		return errs.ErrKindTimeout, true
	}
	return errs.ErrKindUnknown, false
}

func kindForStatus(status int) (errs.ErrKind, bool) {
	switch status {
	case http.StatusNotFound:
		return errs.ErrKindNotFound, true
	case http.StatusForbidden, http.StatusUnauthorized:
		return errs.ErrKindPermissionDenied, true
	case http.StatusBadRequest:
		return errs.ErrKindInvalidInput, true
	}
	return errs.ErrKindUnknown, false
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// mapMinioError translates a minio SDK error into a *errs.Error.
func mapMinioError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if kind, ok := kindForCode(resp.Code); ok {
			return errs.Wrap(kind, msg, err)
		}
		if kind, ok := kindForStatus(resp.StatusCode); ok {
			return errs.Wrap(kind, msg, err)
		}
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// mapS3Error translates an aws-sdk-go error into a *errs.Error.
func mapS3Error(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		if kind, ok := kindForCode(aerr.Code()); ok {
			return errs.Wrap(kind, msg, err)
		}
	}
	var reqErr awserr.RequestFailure
	if errors.As(err, &reqErr) {
		if kind, ok := kindForStatus(reqErr.StatusCode()); ok {
			return errs.Wrap(kind, msg, err)
		}
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
