package handlers

import (
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/damacus/bucket-index/internal/errs"
	"github.com/damacus/bucket-index/internal/logger"
	"github.com/damacus/bucket-index/internal/models"
	"github.com/damacus/bucket-index/internal/renderer"
	"github.com/damacus/bucket-index/internal/utils"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bucket_index_requests_total",
		Help: "Index requests by outcome",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(requestsTotal)
}

// sortMarker is what a path must contain to carry a sort fragment.
const sortMarker = "?C="

// Lister lists one directory level.
type Lister interface {
	List(ctx context.Context, dir string) (models.Listing, error)
}

// Response is a transport-neutral HTTP response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        string
}

type IndexHandler struct {
	listing  Lister
	renderer *renderer.DirectoryRenderer
	log      *logger.Logger
}

func NewIndexHandler(listing Lister, r *renderer.DirectoryRenderer, log *logger.Logger) *IndexHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &IndexHandler{listing: listing, renderer: r, log: log}
}

// SplitPath separates the requested path from its sort fragment. The leading
// separator is dropped. A fragment is only recognised when the value contains
// "?C="; it runs from the last "?" to the end, so earlier "?" stay in the path.
func SplitPath(raw string) (dir, fragment string) {
	dir = strings.TrimLeft(raw, utils.Delimiter)
	if !strings.Contains(dir, sortMarker) {
		return dir, models.DefaultSortFragment
	}
	i := strings.LastIndex(dir, "?")
	return dir[:i], dir[i+1:]
}

// IsDirectory reports whether dir names a directory rather than a file.
func IsDirectory(dir string) bool {
	return dir == "" || strings.HasSuffix(dir, utils.Delimiter)
}

// NotFoundMessage is the body returned for file paths.
func NotFoundMessage(dir string) string {
	return dir + " not found. Try clicking on the link :)"
}

// Handle serves one raw request path. File paths get a 404 because file
// bytes are always fetched from the store through the direct link. Listing
// errors are returned unchanged for the transport to report.
func (h *IndexHandler) Handle(ctx context.Context, raw string) (Response, error) {
	dir, fragment := SplitPath(raw)

	if !IsDirectory(dir) {
		requestsTotal.WithLabelValues("not_found").Inc()
		return Response{
			StatusCode:  http.StatusNotFound,
			ContentType: echo.MIMETextHTML,
			Body:        NotFoundMessage(dir),
		}, nil
	}

	listing, err := h.listing.List(ctx, dir)
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		h.log.ErrorWith("failed to list directory", err, map[string]interface{}{
			"path": dir,
			"kind": errs.KindOf(err).String(),
		})
		return Response{}, err
	}

	body, err := h.renderer.RenderListing(dir, listing, models.ParseSortDirective(fragment))
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		return Response{}, err
	}

	requestsTotal.WithLabelValues("directory").Inc()
	return Response{
		StatusCode:  http.StatusOK,
		ContentType: echo.MIMETextHTML,
		Body:        body,
	}, nil
}

// sortQuery returns the sort fragment carried by a raw query, or "" when the
// query holds something else. Parameters after the first '&' are dropped.
func sortQuery(rawQuery string) string {
	if !strings.HasPrefix(rawQuery, "C=") {
		return ""
	}
	if i := strings.IndexByte(rawQuery, '&'); i >= 0 {
		rawQuery = rawQuery[:i]
	}
	return rawQuery
}

// Browse serves the index over echo. The sort fragment is read from the raw
// query because ';' is not a query separator for net/url.
func (h *IndexHandler) Browse(c echo.Context) error {
	req := c.Request()
	raw := req.URL.Path
	if q := sortQuery(req.URL.RawQuery); q != "" {
		raw += "?" + q
	}

	resp, err := h.Handle(req.Context(), raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list objects")
	}

	// The decoded request path is echoed back in an HTML body; escape it here.
	// API Gateway callers get the message as is.
	if resp.StatusCode == http.StatusNotFound {
		dir, _ := SplitPath(raw)
		resp.Body = NotFoundMessage(html.EscapeString(dir))
	}

	return c.Blob(resp.StatusCode, resp.ContentType, []byte(resp.Body))
}
