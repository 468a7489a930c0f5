package legacy

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"sitegen/internal/htmltext"
	"sitegen/internal/jsonio"
	"sitegen/pkg/models"
)

// parseBlogIndexCards extracts post cards from the blog index page. Only
// anchors into Blog/ count; nav links and footers fall through.
func parseBlogIndexCards(doc *htmltext.Document) []models.PostListing {
	var out []models.PostListing
	for _, card := range htmltext.Cards(doc) {
		if !strings.HasPrefix(card.Href, "Blog/") {
			continue
		}
		id := strings.TrimSuffix(path.Base(card.Href), path.Ext(card.Href))
		title := card.OverlayText
		if title == "" {
			title = id
		}
		out = append(out, models.PostListing{
			ID:         id,
			Title:      title,
			Slug:       htmltext.Slugify(title),
			Date:       nil,
			Tags:       []string{},
			Thumbnail:  htmltext.StripLeadingDots(card.ImgSrc),
			Href:       "blog-post.html?id=" + id,
			DetailJSON: "data/blog/" + id + ".json",
			LegacyHTML: card.Href,
		})
	}
	return out
}

// scanBlogDir builds the listing straight from the post files, used once the
// index page is data-driven and carries no hardcoded cards.
func (m *Migrator) scanBlogDir() []models.PostListing {
	dir := filepath.Join(m.Cfg.SiteRoot, m.Cfg.BlogDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.Log.Warnf("blog dir %s: %v", m.Cfg.BlogDir, err)
		return nil
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			files = append(files, e.Name())
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})

	var out []models.PostListing
	for _, name := range files {
		doc, err := parseFile(filepath.Join(dir, name))
		if err != nil {
			m.Log.Warnf("parse %s: %v", name, err)
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		title := htmltext.PostTitle(doc)
		if title == "" {
			title = id
		}
		featured := htmltext.FeaturedImage(doc)
		out = append(out, models.PostListing{
			ID:         id,
			Title:      title,
			Slug:       htmltext.Slugify(title),
			Date:       nil,
			Tags:       []string{},
			Thumbnail:  featured,
			Href:       "blog-post.html?id=" + id,
			DetailJSON: "data/blog/" + id + ".json",
			LegacyHTML: path.Join(filepath.ToSlash(m.Cfg.BlogDir), name),
		})
	}
	return out
}

// parsePostDetail assembles the full payload of one post page.
func parsePostDetail(doc *htmltext.Document, id, legacyHTML string) models.PostDetail {
	title := htmltext.PostTitle(doc)
	if title == "" {
		title = id
	}

	detail := models.PostDetail{
		ID:            id,
		Title:         title,
		Slug:          htmltext.Slugify(title),
		Date:          nil,
		FeaturedImage: htmltext.FeaturedImage(doc),
		Meta:          models.PostMeta{Description: htmltext.MetaDescription(doc)},
		Intro:         []models.Block{},
		Sections:      []models.Section{},
		LegacyHTML:    legacyHTML,
	}

	if container := htmltext.FindByClass(doc.Root, "post-RightContainer"); container != nil {
		detail.Intro = htmltext.BlocksUntilClass(container, "collapsible")
		if detail.Intro == nil {
			detail.Intro = []models.Block{}
		}
	}

	detail.Sections = parseSections(doc)
	return detail
}

// parseSections extracts the collapsible sections of a post. Each section
// is keyed by its explicit id attribute, falling back to a slug of its
// heading; items with no heading are dropped.
func parseSections(doc *htmltext.Document) []models.Section {
	out := []models.Section{}

	coll := htmltext.FindByClass(doc.Root, "collapsible")
	if coll == nil {
		return out
	}

	for _, item := range htmltext.FindAllByClass(coll, "collapsibleItem") {
		var title string
		if h3 := htmltext.FindElement(item, "h3"); h3 != nil {
			title = htmltext.Text(h3)
		}
		if title == "" {
			continue
		}

		id := htmltext.Attr(item, "id")
		if id == "" {
			id = htmltext.Slugify(title)
		}

		blocks := []models.Block{}
		if content := htmltext.FindByClass(item, "collapsibleContent"); content != nil {
			if b := htmltext.Blocks(content); b != nil {
				blocks = b
			}
		}

		out = append(out, models.Section{ID: id, Title: title, Blocks: blocks})
	}
	return out
}

// RunBlog scrapes the blog index and posts, writing data/blog.json and one
// detail JSON per post.
func (m *Migrator) RunBlog() error {
	var listing []models.PostListing

	indexPath := filepath.Join(m.Cfg.SiteRoot, m.Cfg.BlogIndex)
	if doc, err := parseFile(indexPath); err == nil {
		listing = parseBlogIndexCards(doc)
	} else {
		m.Log.Warnf("blog index %s: %v", m.Cfg.BlogIndex, err)
	}
	if len(listing) == 0 {
		listing = m.scanBlogDir()
	}

	written := 0
	for _, item := range listing {
		pagePath := filepath.Join(m.Cfg.SiteRoot, item.LegacyHTML)
		if !fileExists(pagePath) {
			// Listed but not yet written; the card stays, the detail waits.
			continue
		}
		doc, err := parseFile(pagePath)
		if err != nil {
			m.Log.Warnf("parse %s: %v", item.LegacyHTML, err)
			continue
		}

		detail := parsePostDetail(doc, item.ID, item.LegacyHTML)
		if detail.FeaturedImage == "" {
			detail.FeaturedImage = item.Thumbnail
		}

		detailPath := filepath.Join(m.Cfg.SiteRoot, m.Cfg.DataDir, "blog", item.ID+".json")
		if err := jsonio.Write(detailPath, detail); err != nil {
			return err
		}
		written++
	}

	if listing == nil {
		listing = []models.PostListing{}
	}
	listingPath := filepath.Join(m.Cfg.SiteRoot, m.Cfg.DataDir, "blog.json")
	if err := jsonio.Write(listingPath, listing); err != nil {
		return err
	}

	m.Log.Infof("wrote %d blog posts (%d details) -> %s", len(listing), written, listingPath)
	return nil
}
