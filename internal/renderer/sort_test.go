package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/damacus/bucket-index/internal/models"
)

var base = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

func dir(name string) models.ListingItem {
	return models.ListingItem{IsDir: true, Name: name, Path: "/" + name + "/"}
}

func file(name string, size int64, age time.Duration) models.ListingItem {
	return models.ListingItem{Name: name, Size: size, LastModified: base.Add(age), Path: "https://x/" + name}
}

func names(items []models.ListingItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func fixture() []models.ListingItem {
	return []models.ListingItem{
		file("b.mp3", 300, 2*time.Hour),
		dir("rock"),
		file("a.mp3", 100, 3*time.Hour),
		dir("jazz"),
		file("c.mp3", 200, 1*time.Hour),
	}
}

func TestSortItems(t *testing.T) {
	tests := []struct {
		name      string
		directive models.SortDirective
		expected  []string
	}{
		{"name ascending", models.SortDirective{Key: models.SortByName, Order: models.Ascending},
			[]string{"jazz", "rock", "a.mp3", "b.mp3", "c.mp3"}},
		{"name descending", models.SortDirective{Key: models.SortByName, Order: models.Descending},
			[]string{"rock", "jazz", "c.mp3", "b.mp3", "a.mp3"}},
		{"modified ascending", models.SortDirective{Key: models.SortByModified, Order: models.Ascending},
			[]string{"jazz", "rock", "c.mp3", "b.mp3", "a.mp3"}},
		{"modified descending", models.SortDirective{Key: models.SortByModified, Order: models.Descending},
			[]string{"rock", "jazz", "a.mp3", "b.mp3", "c.mp3"}},
		{"size ascending", models.SortDirective{Key: models.SortBySize, Order: models.Ascending},
			[]string{"jazz", "rock", "a.mp3", "c.mp3", "b.mp3"}},
		{"size descending", models.SortDirective{Key: models.SortBySize, Order: models.Descending},
			[]string{"rock", "jazz", "b.mp3", "c.mp3", "a.mp3"}},
		{"description falls back to name", models.SortDirective{Key: models.SortByDescription, Order: models.Ascending},
			[]string{"jazz", "rock", "a.mp3", "b.mp3", "c.mp3"}},
		{"unknown key keeps input order", models.SortDirective{Key: models.SortKey("X"), Order: models.Descending},
			[]string{"rock", "jazz", "b.mp3", "a.mp3", "c.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(SortItems(fixture(), tt.directive)))
		})
	}
}

func TestSortItems_DirectoriesFirst(t *testing.T) {
	for _, k := range append(models.SortKeys, models.SortKey("?")) {
		for _, o := range []models.SortOrder{models.Ascending, models.Descending} {
			sorted := SortItems(fixture(), models.SortDirective{Key: k, Order: o})
			seenFile := false
			for _, item := range sorted {
				if !item.IsDir {
					seenFile = true
					continue
				}
				assert.False(t, seenFile, "directory %q after a file for %s;%s", item.Name, k, o)
			}
		}
	}
}

func TestSortItems_StableInBothDirections(t *testing.T) {
	items := []models.ListingItem{
		file("first", 10, 0),
		file("second", 10, 0),
		file("small", 1, 0),
		file("third", 10, 0),
	}

	asc := SortItems(items, models.SortDirective{Key: models.SortBySize, Order: models.Ascending})
	assert.Equal(t, []string{"small", "first", "second", "third"}, names(asc))

	desc := SortItems(items, models.SortDirective{Key: models.SortBySize, Order: models.Descending})
	assert.Equal(t, []string{"first", "second", "third", "small"}, names(desc))
}

func TestSortItems_DescriptionThenName(t *testing.T) {
	items := []models.ListingItem{
		{Name: "b", Description: "x", Size: 1},
		{Name: "a", Description: "y", Size: 1},
		{Name: "a", Description: "x", Size: 1},
	}

	sorted := SortItems(items, models.SortDirective{Key: models.SortByDescription, Order: models.Ascending})

	assert.Equal(t, []models.ListingItem{items[2], items[0], items[1]}, sorted)
}

func TestSortItems_DoesNotModifyInput(t *testing.T) {
	items := fixture()
	SortItems(items, models.SortDirective{Key: models.SortByName, Order: models.Ascending})
	assert.Equal(t, fixture(), items)
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		dir      string
		expected string
	}{
		{"", "/"},
		{"music/", "/"},
		{"music/rock/", "/music/"},
		{"music/rock/70s/", "/music/rock/"},
		{"music//rock/", "/music/"},
		{"music/rock", "/music/"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParentPath(tt.dir))
		})
	}
}
