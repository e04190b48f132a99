package renderer

import (
	"sort"
	"strings"

	"github.com/damacus/bucket-index/internal/models"
	"github.com/damacus/bucket-index/internal/utils"
)

// less reports whether a orders before b in ascending order.
type less func(a, b models.ListingItem) bool

func byName(a, b models.ListingItem) bool {
	return a.Name < b.Name
}

func byModified(a, b models.ListingItem) bool {
	return a.LastModified.Before(b.LastModified)
}

func bySize(a, b models.ListingItem) bool {
	return a.Size < b.Size
}

func byDescription(a, b models.ListingItem) bool {
	if a.Description != b.Description {
		return a.Description < b.Description
	}
	return a.Name < b.Name
}

// comparators holds the (directories, files) ordering for each column.
// Directories have no modification time or size, so those columns order
// them by name.
var comparators = map[models.SortKey][2]less{
	models.SortByName:        {byName, byName},
	models.SortByModified:    {byName, byModified},
	models.SortBySize:        {byName, bySize},
	models.SortByDescription: {byDescription, byDescription},
}

// SortItems returns items with every directory ahead of every file, each
// group ordered by d. Sorting is stable in both directions: descending order
// flips the comparison rather than the result, so equal items keep their
// input order. Unknown keys leave each group in input order.
func SortItems(items []models.ListingItem, d models.SortDirective) []models.ListingItem {
	var dirs, files []models.ListingItem
	for _, item := range items {
		if item.IsDir {
			dirs = append(dirs, item)
		} else {
			files = append(files, item)
		}
	}

	if d.Key.Known() {
		cmp := comparators[d.Key]
		stableSort(dirs, cmp[0], d.Reversed())
		stableSort(files, cmp[1], d.Reversed())
	}

	return append(dirs, files...)
}

func stableSort(items []models.ListingItem, fn less, reversed bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if reversed {
			return fn(items[j], items[i])
		}
		return fn(items[i], items[j])
	})
}

// ParentPath returns the link to the directory above dir: "/music/" for
// "music/rock/" and "/" for anything one level deep or less.
func ParentPath(dir string) string {
	trimmed := strings.TrimRight(dir, utils.Delimiter)
	parent := ""
	if i := strings.LastIndex(trimmed, utils.Delimiter); i >= 0 {
		parent = trimmed[:i]
	}

	p := utils.Delimiter + strings.TrimRight(parent, utils.Delimiter)
	if p != utils.Delimiter {
		p += utils.Delimiter
	}
	return p
}
