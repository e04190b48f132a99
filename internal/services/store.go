package services

import (
	"context"
	"fmt"
	"time"

	"github.com/damacus/bucket-index/internal/config"
)

// DefaultMaxKeys is the page size requested from the store.
const DefaultMaxKeys = 1000

// ListDirectoryInput is a single delimiter-aware listing request.
type ListDirectoryInput struct {
	Bucket    string
	Prefix    string
	Delimiter string
	MaxKeys   int
}

// ObjectEntry is an object returned directly under the requested prefix.
type ObjectEntry struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListDirectoryResult is one page of a delimiter listing.
type ListDirectoryResult struct {
	// CommonPrefixes are the immediate child "folders", each ending in the delimiter.
	CommonPrefixes []string
	Objects        []ObjectEntry
	IsTruncated    bool
}

// ObjectLister issues exactly one listing call against the object store.
// Implementations return *errs.Error values and never retry.
type ObjectLister interface {
	ListDirectory(ctx context.Context, in ListDirectoryInput) (ListDirectoryResult, error)
}

// NewObjectLister builds the lister selected by cfg.Provider.
func NewObjectLister(cfg config.StorageConfig) (ObjectLister, error) {
	switch cfg.Provider {
	case config.ProviderMinio:
		l, err := NewMinioLister(cfg)
		if err != nil {
			return nil, err
		}
		return l, nil
	case config.ProviderS3:
		l, err := NewS3Lister(cfg)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
