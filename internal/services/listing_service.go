package services

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/damacus/bucket-index/internal/logger"
	"github.com/damacus/bucket-index/internal/models"
	"github.com/damacus/bucket-index/internal/utils"
)

var listingDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bucket_index_listing_duration_seconds",
		Help:    "Time spent in the object store listing call",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(listingDuration)
}

// ListingOptions configures a ListingService.
type ListingOptions struct {
	Bucket  string
	Region  string
	Root    string // published root segment, e.g. "public"
	MaxKeys int
}

// ListingService turns a directory path into listing items.
type ListingService struct {
	lister ObjectLister
	opts   ListingOptions
	log    *logger.Logger
}

// NewListingService creates a ListingService. A nil log discards output.
func NewListingService(lister ObjectLister, opts ListingOptions, log *logger.Logger) *ListingService {
	if log == nil {
		log = logger.Nop()
	}
	return &ListingService{lister: lister, opts: opts, log: log}
}

// Prefix returns the store prefix queried for dir.
func (s *ListingService) Prefix(dir string) string {
	return s.opts.Root + utils.Delimiter + strings.TrimLeft(dir, utils.Delimiter)
}

// List returns the immediate children of dir. Store errors are returned as is.
func (s *ListingService) List(ctx context.Context, dir string) (models.Listing, error) {
	prefix := s.Prefix(dir)
	s.log.With().Str("prefix", prefix).Logger().Debug("listing prefix")

	start := time.Now()
	res, err := s.lister.ListDirectory(ctx, ListDirectoryInput{
		Bucket:    s.opts.Bucket,
		Prefix:    prefix,
		Delimiter: utils.Delimiter,
		MaxKeys:   s.opts.MaxKeys,
	})
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	listingDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return models.Listing{}, err
	}

	items := make([]models.ListingItem, 0, len(res.CommonPrefixes)+len(res.Objects))
	for _, p := range res.CommonPrefixes {
		items = append(items, s.dirItem(p))
	}
	for _, obj := range res.Objects {
		// Zero-byte objects are folder markers.
		if obj.Size == 0 {
			continue
		}
		items = append(items, s.fileItem(obj))
	}

	if res.IsTruncated {
		s.log.With().Str("prefix", prefix).Int("items", len(items)).Logger().
			Warn("listing truncated after one page")
	}

	return models.Listing{Items: items, Truncated: res.IsTruncated}, nil
}

func (s *ListingService) dirItem(prefix string) models.ListingItem {
	rel := strings.TrimPrefix(prefix, s.opts.Root)
	return models.ListingItem{
		IsDir: true,
		Path:  rel,
		Name:  path.Base(strings.TrimRight(rel, utils.Delimiter)),
	}
}

func (s *ListingService) fileItem(obj ObjectEntry) models.ListingItem {
	return models.ListingItem{
		Path:         utils.PublicURL(s.opts.Bucket, s.opts.Region, obj.Key),
		Name:         path.Base(strings.TrimPrefix(obj.Key, s.opts.Root)),
		LastModified: obj.LastModified,
		Size:         obj.Size,
	}
}
