// Package models contains the data structures shared by the listing service
// and the renderer.
package models

import (
	"strings"
	"time"
)

// ListingItem is one row of a directory index.
type ListingItem struct {
	IsDir bool
	// Path is the link target. Directories carry the key with the published
	// root stripped ("/music/rock/"); files carry the public object URL.
	Path         string
	Name         string
	LastModified time.Time // zero for directories
	Size         int64     // zero for directories
	Description  string
}

// SortKey selects the column a listing is ordered by.
type SortKey string

const (
	SortByName        SortKey = "N"
	SortByModified    SortKey = "M"
	SortBySize        SortKey = "S"
	SortByDescription SortKey = "D"
)

// SortKeys lists the known keys in header column order.
var SortKeys = []SortKey{SortByName, SortByModified, SortBySize, SortByDescription}

// Known reports whether k is one of the four column keys.
func (k SortKey) Known() bool {
	switch k {
	case SortByName, SortByModified, SortBySize, SortByDescription:
		return true
	}
	return false
}

// SortOrder is the direction a listing is ordered in.
type SortOrder string

const (
	Ascending  SortOrder = "A"
	Descending SortOrder = "D"
)

// Opposite returns the other direction.
func (o SortOrder) Opposite() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// SortDirective is the decoded C=<key>;O=<order> fragment.
type SortDirective struct {
	Key   SortKey
	Order SortOrder
}

// DefaultSortDirective is applied when a request carries no fragment.
var DefaultSortDirective = SortDirective{Key: SortByName, Order: Ascending}

// DefaultSortFragment is the encoded form of DefaultSortDirective.
const DefaultSortFragment = "C=N;O=A"

// ParseSortDirective decodes a "C=<key>;O=<order>" fragment.
//
// Parsing is lenient: parts without "=" and unknown parameters are ignored,
// a missing C or O keeps the default, and any order other than "D" is
// ascending. Unknown keys are kept so the renderer can leave the input
// order untouched.
func ParseSortDirective(fragment string) SortDirective {
	d := DefaultSortDirective
	for _, part := range strings.Split(fragment, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch name {
		case "C":
			d.Key = SortKey(value)
		case "O":
			if SortOrder(value) == Descending {
				d.Order = Descending
			} else {
				d.Order = Ascending
			}
		}
	}
	return d
}

// Reversed reports whether the directive sorts in descending order.
func (d SortDirective) Reversed() bool {
	return d.Order == Descending
}

// Query returns the header link query for column k: the active column
// toggles the applied order, every other column starts ascending.
func (d SortDirective) Query(k SortKey) string {
	order := Ascending
	if k == d.Key {
		order = d.Order.Opposite()
	}
	return SortDirective{Key: k, Order: order}.String()
}

func (d SortDirective) String() string {
	return "C=" + string(d.Key) + ";O=" + string(d.Order)
}

// Listing is the result of one directory query.
type Listing struct {
	Items []ListingItem
	// Truncated is set when the store had more entries than one page holds.
	Truncated bool
}
