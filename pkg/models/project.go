package models

// ListingEntry is the lightweight summary record for one project, as it
// appears in data/projects.json. The browser grid renders straight from
// this shape, so field order and names are load-bearing.
type ListingEntry struct {
	ID         string   `json:"id"`                   // stable project id (e.g. "cr10")
	Name       string   `json:"name"`                 // display name
	Slug       string   `json:"slug"`                 // slugified name
	Year       *int     `json:"year"`                 // null when unknown
	Tags       []string `json:"tags"`                 // filter tags
	Thumbnail  string   `json:"thumbnail"`            // grid image path, relative to site root
	Status     string   `json:"status"`               // "published" or "coming-soon"
	Href       string   `json:"href"`                 // detail page link
	DetailJSON string   `json:"detailJson"`           // path of the matching DetailRecord file
	LegacyHTML string   `json:"legacyHtml,omitempty"` // source page during migration
}

// DetailRecord is the full content payload for a project's dedicated page,
// written to data/projects/<id>.json.
type DetailRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Year          *int     `json:"year"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
	Location      string   `json:"location"`
	FeaturedImage string   `json:"featuredImage"`
	Description   []string `json:"description"` // ordered paragraphs
	Gallery       []string `json:"gallery"`     // ordered image paths, maintained by assets sync
	Specs         []Spec   `json:"specs"`
	LegacyHTML    string   `json:"legacyHtml,omitempty"`
}

// Valid ShowOn scopes.
const (
	ShowOnList   = "list"
	ShowOnDetail = "detail"
)

// Spec is a typed key/label/value attribute attached to a project.
// ShowOn scopes where it renders: "list", "detail", or both.
type Spec struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Value  string   `json:"value"`
	ShowOn []string `json:"showOn"`
	Order  int      `json:"order"`
}
