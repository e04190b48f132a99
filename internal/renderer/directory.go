package renderer

import (
	"strings"

	"github.com/damacus/bucket-index/internal/models"
	"github.com/damacus/bucket-index/internal/utils"
)

// ModifiedLayout is the time format of the "Last modified" column.
const ModifiedLayout = "2006-01-02 15:04"

var columnLabels = map[models.SortKey]string{
	models.SortByName:        "Name",
	models.SortByModified:    "Last modified",
	models.SortBySize:        "Size",
	models.SortByDescription: "Description",
}

// Column is one sortable header cell. Href is the "?C=<key>;O=<order>" link.
type Column struct {
	Label string
	Href  string
}

// Row is one directory or file line.
type Row struct {
	IsDir       bool
	Icon        Icon
	Href        string
	Name        string
	Modified    string
	Size        string
	Description string
}

// IndexPage is the data handed to the index template.
type IndexPage struct {
	Title      string
	HeaderIcon Icon
	ParentIcon Icon
	Columns    []Column
	ParentPath string
	Rows       []Row
	Truncated  bool
	Signature  string
}

// DirectoryRenderer renders directory listings.
type DirectoryRenderer struct {
	templates *TemplateRenderer
}

// NewDirectoryRenderer parses the embedded templates once.
func NewDirectoryRenderer() *DirectoryRenderer {
	return &DirectoryRenderer{templates: New()}
}

// Page builds the template data for dir without executing the template.
func Page(dir string, items []models.ListingItem, d models.SortDirective) IndexPage {
	page := IndexPage{
		Title:      strings.TrimRight(dir, utils.Delimiter),
		HeaderIcon: iconBlank,
		ParentIcon: iconBack,
		ParentPath: ParentPath(dir),
		Signature:  utils.ServerSignature,
	}

	for _, k := range models.SortKeys {
		page.Columns = append(page.Columns, Column{Label: columnLabels[k], Href: "?" + d.Query(k)})
	}

	for _, item := range SortItems(items, d) {
		row := Row{
			IsDir:       item.IsDir,
			Href:        item.Path,
			Name:        item.Name,
			Description: item.Description,
		}
		if item.IsDir {
			row.Icon = iconFolder
		} else {
			row.Icon = fileIcon(item.Name)
			row.Modified = item.LastModified.Format(ModifiedLayout)
			row.Size = utils.FormatSize(item.Size)
		}
		page.Rows = append(page.Rows, row)
	}

	return page
}

// Render returns the HTML index of dir listing items in the order given by d.
func (r *DirectoryRenderer) Render(dir string, items []models.ListingItem, d models.SortDirective) (string, error) {
	return r.execute(Page(dir, items, d))
}

// RenderListing is Render plus a notice row when the listing was truncated.
func (r *DirectoryRenderer) RenderListing(dir string, listing models.Listing, d models.SortDirective) (string, error) {
	page := Page(dir, listing.Items, d)
	page.Truncated = listing.Truncated
	return r.execute(page)
}

func (r *DirectoryRenderer) execute(page IndexPage) (string, error) {
	var sb strings.Builder
	if err := r.templates.Render(&sb, "index", page); err != nil {
		return "", err
	}
	return sb.String(), nil
}
