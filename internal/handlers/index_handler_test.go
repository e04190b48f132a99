package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damacus/bucket-index/internal/errs"
	"github.com/damacus/bucket-index/internal/models"
	"github.com/damacus/bucket-index/internal/renderer"
)

var modified = time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

func musicListing() models.Listing {
	return models.Listing{Items: []models.ListingItem{
		{Name: "b.mp3", Path: "https://share.s3.eu-west-2.amazonaws.com/public/music/b.mp3", Size: 2000, LastModified: modified},
		{IsDir: true, Name: "rock", Path: "/music/rock/"},
		{Name: "a.mp3", Path: "https://share.s3.eu-west-2.amazonaws.com/public/music/a.mp3", Size: 1000, LastModified: modified},
	}}
}

func newTestHandler(lister Lister) *IndexHandler {
	return NewIndexHandler(lister, renderer.NewDirectoryRenderer(), nil)
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dir      string
		fragment string
	}{
		{"empty", "", "", models.DefaultSortFragment},
		{"root", "/", "", models.DefaultSortFragment},
		{"directory", "music/", "music/", models.DefaultSortFragment},
		{"leading slashes", "//music/rock/", "music/rock/", models.DefaultSortFragment},
		{"with fragment", "music/?C=S;O=D", "music/", "C=S;O=D"},
		{"root fragment", "/?C=M;O=A", "", "C=M;O=A"},
		{"last question mark wins", "odd?name/?C=N;O=D", "odd?name/", "C=N;O=D"},
		{"question mark without sort", "music/?foo", "music/?foo", models.DefaultSortFragment},
		{"file", "music/song.mp3", "music/song.mp3", models.DefaultSortFragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, fragment := SplitPath(tt.raw)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.fragment, fragment)
		})
	}
}

func TestSortQuery(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"C=S;O=D", "C=S;O=D"},
		{"C=N;O=D&fbclid=1", "C=N;O=D"},
		{"utm_source=x", ""},
		{"utm_source=x&C=N;O=D", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sortQuery(tt.raw), tt.raw)
	}
}

func TestIsDirectory(t *testing.T) {
	assert.True(t, IsDirectory(""))
	assert.True(t, IsDirectory("music/"))
	assert.False(t, IsDirectory("music"))
	assert.False(t, IsDirectory("music/song.mp3"))
}

func TestIndexHandler_Directory(t *testing.T) {
	lister := new(MockLister)
	lister.On("List", mock.Anything, "music/").Return(musicListing(), nil)

	resp, err := newTestHandler(lister).Handle(context.Background(), "/music/?C=S;O=D")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html", resp.ContentType)
	assert.Contains(t, resp.Body, "<title>Index of /music</title>")
	assert.Contains(t, resp.Body, `<th><a href="?C=S;O=A">Size</a></th>`)

	rock := strings.Index(resp.Body, ">rock<")
	b := strings.Index(resp.Body, ">b.mp3<")
	a := strings.Index(resp.Body, ">a.mp3<")
	assert.True(t, rock < b && b < a, "expected rock, b.mp3, a.mp3 order")
	lister.AssertExpectations(t)
}

func TestIndexHandler_DefaultSortMatchesExplicit(t *testing.T) {
	lister := new(MockLister)
	lister.On("List", mock.Anything, "music/").Return(musicListing(), nil)
	h := newTestHandler(lister)

	implicit, err := h.Handle(context.Background(), "music/")
	require.NoError(t, err)
	explicit, err := h.Handle(context.Background(), "music/?C=N;O=A")
	require.NoError(t, err)

	assert.Equal(t, explicit, implicit)
}

func TestIndexHandler_FileIsNotFound(t *testing.T) {
	lister := new(MockLister)

	resp, err := newTestHandler(lister).Handle(context.Background(), "/music/song.mp3")
	require.NoError(t, err)

	assert.Equal(t, Response{
		StatusCode:  http.StatusNotFound,
		ContentType: "text/html",
		Body:        "music/song.mp3 not found. Try clicking on the link :)",
	}, resp)
	lister.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestIndexHandler_ListingErrorPropagates(t *testing.T) {
	storeErr := errs.New(errs.ErrKindNotFound, "failed to list objects")
	lister := new(MockLister)
	lister.On("List", mock.Anything, "").Return(models.Listing{}, storeErr)

	_, err := newTestHandler(lister).Handle(context.Background(), "")

	assert.ErrorIs(t, err, storeErr)
}

func TestIndexHandler_Browse(t *testing.T) {
	lister := new(MockLister)
	lister.On("List", mock.Anything, "music/").Return(musicListing(), nil)
	lister.On("List", mock.Anything, "broken/").Return(models.Listing{}, errs.New(errs.ErrKindPermissionDenied, "denied"))

	e := echo.New()
	e.GET("/*", newTestHandler(lister).Browse)

	t.Run("directory with sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/music/?C=N;O=D", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html", rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Body.String(), `<th><a href="?C=N;O=A">Name</a></th>`)
	})

	t.Run("file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/music/a.mp3", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "music/a.mp3 not found. Try clicking on the link :)", rec.Body.String())
	})

	t.Run("unrelated query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/music/?utm_source=x", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>Index of /music</title>")
		assert.Contains(t, rec.Body.String(), `<th><a href="?C=N;O=D">Name</a></th>`)
	})

	t.Run("sort with trailing parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/music/?C=N;O=D&x=1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `<th><a href="?C=N;O=A">Name</a></th>`)
		assert.Less(t, strings.Index(body, ">b.mp3<"), strings.Index(body, ">a.mp3<"))
	})

	t.Run("markup in file path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/%3Cscript%3Ealert(1)%3C/script%3E", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<script>")
		assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt; not found. Try clicking on the link :)", rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/broken/", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to list objects")
	})
}
