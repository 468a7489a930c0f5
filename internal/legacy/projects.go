// Package legacy migrates content out of the old hand-written HTML pages:
// project category grids, per-project detail pages and the blog. It is the
// one-shot path used while the site moves to sheet-driven data.
//
// Extraction is best effort. A page that cannot be read is logged and
// skipped; a missing field is an empty value.
package legacy

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"sitegen/internal/config"
	"sitegen/internal/htmltext"
	"sitegen/internal/jsonio"
	"sitegen/pkg/models"
)

var comingSoonRe = regexp.MustCompile(`(?i)coming\s+soon`)

// Migrator runs the legacy HTML migrations against one site checkout.
type Migrator struct {
	Log *zap.SugaredLogger
	Cfg config.Config
}

// GridItem is one card scraped from a category page.
type GridItem struct {
	ID           string
	Href         string
	Disabled     bool
	Thumbnail    string
	OverlayTitle string
	LegacyHTML   string // page path relative to the site root
}

// parseGrid extracts the cards of one category page. pageDir is where the
// card hrefs resolve, relative to the site root.
func (m *Migrator) parseGrid(doc *htmltext.Document, pageDir string) []GridItem {
	var items []GridItem
	for _, card := range htmltext.Cards(doc) {
		id := strings.TrimSuffix(path.Base(card.Href), path.Ext(card.Href))

		// Disabled cards mix three signals with no single authority:
		// a no-op anchor, an inline pointer-events block, or literal
		// "coming soon" overlay text. Any of them counts, as does a card
		// whose detail page does not exist.
		disabled := card.Href == "#" ||
			strings.Contains(strings.ToLower(card.Style), "pointer-events: none") ||
			comingSoonRe.MatchString(card.OverlayText)

		detailPath := filepath.Join(m.Cfg.SiteRoot, pageDir, card.Href)
		if !fileExists(detailPath) {
			disabled = true
		}

		items = append(items, GridItem{
			ID:           id,
			Href:         card.Href,
			Disabled:     disabled,
			Thumbnail:    htmltext.StripLeadingDots(card.ImgSrc),
			OverlayTitle: card.OverlayText,
			LegacyHTML:   path.Join(filepath.ToSlash(pageDir), card.Href),
		})
	}
	return items
}

// detailContent is what a legacy per-project page yields.
type detailContent struct {
	Location    string
	Description []string
	Gallery     []string
	Featured    string
}

// parseProjectDetail extracts the detail fields of one legacy project page.
func parseProjectDetail(doc *htmltext.Document) detailContent {
	var d detailContent

	d.Location = htmltext.PostSubtitle(doc)

	if container := htmltext.FindByClass(doc.Root, "post-RightContainer"); container != nil {
		for _, p := range htmltext.FindAllElements(container, "p") {
			if t := htmltext.Text(p); t != "" {
				d.Description = append(d.Description, t)
			}
		}
	}

	for _, img := range htmltext.FindAllElements(doc.Root, "img") {
		src := htmltext.Attr(img, "src")
		if src == "" || !strings.Contains(strings.ToLower(src), "/gallery/") {
			continue
		}
		d.Gallery = append(d.Gallery, htmltext.StripLeadingDots(src))
	}

	d.Featured = htmltext.FeaturedImage(doc)
	return d
}

// ParsePageNamesJS reads the legacy js table of project display names:
//
//	var cr01 = "Angle House";
func ParsePageNamesJS(src string) map[string]string {
	re := regexp.MustCompile(`var\s+([a-zA-Z0-9_]+)\s*=\s*"([^"]+)";`)
	out := map[string]string{}
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		out[m[1]] = m[2]
	}
	return out
}

// pageNames merges the legacy js table with the configured overrides.
func (m *Migrator) pageNames() map[string]string {
	names := map[string]string{}
	jsPath := filepath.Join(m.Cfg.SiteRoot, "js", "pageNames.js")
	if b, err := os.ReadFile(jsPath); err == nil {
		names = ParsePageNamesJS(string(b))
	}
	for id, name := range m.Cfg.PageNames {
		names[id] = name
	}
	return names
}

// RunProjects scrapes the category pages and writes data/projects.json plus
// one detail JSON per project.
func (m *Migrator) RunProjects() error {
	names := m.pageNames()

	var listing []models.ListingEntry
	details := map[string]models.DetailRecord{}
	seen := map[string]bool{}

	for _, cat := range m.Cfg.CategoryPages {
		pagePath := filepath.Join(m.Cfg.SiteRoot, cat.Page)
		b, err := os.ReadFile(pagePath)
		if err != nil {
			// One broken category page should not kill the migration.
			m.Log.Warnf("category page %s: %v", cat.Page, err)
			continue
		}
		doc, err := htmltext.ParseString(string(b))
		if err != nil {
			m.Log.Warnf("parse %s: %v", cat.Page, err)
			continue
		}

		for _, it := range m.parseGrid(doc, cat.Dir) {
			if seen[it.ID] {
				// First occurrence wins across pages.
				continue
			}
			seen[it.ID] = true

			name := names[it.ID]
			if name == "" {
				name = it.OverlayTitle
			}
			if name == "" {
				name = it.ID
			}

			status := "published"
			if it.Disabled {
				status = "coming-soon"
			}

			content := detailContent{}
			if p := filepath.Join(m.Cfg.SiteRoot, cat.Dir, it.Href); fileExists(p) {
				if doc, err := parseFile(p); err == nil {
					content = parseProjectDetail(doc)
				} else {
					m.Log.Warnf("parse detail %s: %v", it.Href, err)
				}
			}

			tags := append([]string(nil), cat.Tags...)
			if isCombinedMUCPage(cat.Tags) {
				tags = m.inferTags(name, content.Description)
			}

			listing = append(listing, models.ListingEntry{
				ID:         it.ID,
				Name:       name,
				Slug:       htmltext.Slugify(name),
				Year:       nil, // legacy HTML has no reliable year; sheets fill it in later
				Tags:       tags,
				Thumbnail:  it.Thumbnail,
				Status:     status,
				Href:       "ProjectsUnderDevelop.html?project=" + it.ID,
				DetailJSON: "data/projects/" + it.ID + ".json",
				LegacyHTML: it.LegacyHTML,
			})

			featured := content.Featured
			if featured == "" {
				featured = it.Thumbnail
			}

			details[it.ID] = models.DetailRecord{
				ID:            it.ID,
				Name:          name,
				Slug:          htmltext.Slugify(name),
				Year:          nil,
				Tags:          tags,
				Status:        status,
				Location:      content.Location,
				FeaturedImage: featured,
				Description:   nonNil(content.Description),
				Gallery:       nonNil(content.Gallery),
				Specs:         defaultSpecs(content.Location),
				LegacyHTML:    it.LegacyHTML,
			}
		}
	}

	for _, entry := range listing {
		detailPath := filepath.Join(m.Cfg.SiteRoot, m.Cfg.DataDir, "projects", entry.ID+".json")
		if err := jsonio.Write(detailPath, details[entry.ID]); err != nil {
			return err
		}
	}
	if listing == nil {
		listing = []models.ListingEntry{}
	}
	listingPath := filepath.Join(m.Cfg.SiteRoot, m.Cfg.DataDir, "projects.json")
	if err := jsonio.Write(listingPath, listing); err != nil {
		return err
	}

	m.Log.Infof("wrote %d projects -> %s", len(listing), listingPath)
	return nil
}

// defaultSpecs builds the minimal specs list extractable from legacy pages.
// Richer specs come from the sheets later.
func defaultSpecs(location string) []models.Spec {
	if location == "" {
		return []models.Spec{}
	}
	return []models.Spec{{
		Key:    "location",
		Label:  "Location",
		Value:  location,
		ShowOn: []string{"list", "detail"},
		Order:  10,
	}}
}

func isCombinedMUCPage(tags []string) bool {
	if len(tags) != 3 {
		return false
	}
	want := map[string]bool{"multi-unit": true, "commercial": true, "mixed-use": true}
	for _, t := range tags {
		if !want[t] {
			return false
		}
	}
	return true
}

func parseFile(path string) (*htmltext.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return htmltext.ParseString(string(b))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
