package htmltext

import (
	"golang.org/x/net/html"

	"sitegen/pkg/models"
)

// Blocks extracts p/img/iframe content units from a fragment in DOM order.
// Paragraphs are emitted whole; images and iframes inside a paragraph are
// part of its HTML, not separate blocks. Empty paragraphs are dropped.
func Blocks(n *html.Node) []models.Block {
	var out []models.Block
	Walk(n, func(c *html.Node) bool {
		switch {
		case isElement(c, "p"):
			inner := InnerHTML(c)
			if CleanText(inner) == "" {
				return false
			}
			out = append(out, models.Block{
				Type:   "p",
				HTML:   inner,
				Indent: ParsePx(Attr(c, "style"), "margin-left"),
			})
			return false
		case isElement(c, "img"):
			src := Attr(c, "src")
			if src == "" {
				return false
			}
			out = append(out, models.Block{
				Type: "img",
				Src:  StripLeadingDots(src),
				Alt:  Attr(c, "alt"),
			})
			return false
		case isElement(c, "iframe"):
			src := Attr(c, "src")
			if src == "" {
				return false
			}
			out = append(out, models.Block{
				Type:   "iframe",
				Src:    src,
				Height: Attr(c, "height"),
				Title:  Attr(c, "title"),
			})
			return false
		}
		return true
	})
	return out
}

// BlocksUntilClass behaves like Blocks but stops at the first descendant
// carrying the given class token. Used to cut a post's intro off at the
// collapsible sections.
func BlocksUntilClass(n *html.Node, class string) []models.Block {
	var out []models.Block
	stopped := false
	Walk(n, func(c *html.Node) bool {
		if stopped {
			return false
		}
		if c != n && c.Type == html.ElementNode && HasClass(c, class) {
			stopped = true
			return false
		}
		switch {
		case isElement(c, "p"):
			inner := InnerHTML(c)
			if CleanText(inner) == "" {
				return false
			}
			out = append(out, models.Block{
				Type:   "p",
				HTML:   inner,
				Indent: ParsePx(Attr(c, "style"), "margin-left"),
			})
			return false
		case isElement(c, "img"):
			if src := Attr(c, "src"); src != "" {
				out = append(out, models.Block{Type: "img", Src: StripLeadingDots(src), Alt: Attr(c, "alt")})
			}
			return false
		case isElement(c, "iframe"):
			if src := Attr(c, "src"); src != "" {
				out = append(out, models.Block{Type: "iframe", Src: src, Height: Attr(c, "height"), Title: Attr(c, "title")})
			}
			return false
		}
		return true
	})
	return out
}

// Card is an anchor+image+overlay-text triple from a listing grid.
type Card struct {
	Href        string
	Style       string // raw inline style of the anchor, for disabled checks
	ImgSrc      string // as written in the page, dots not yet stripped
	OverlayText string
}

// Cards extracts grid cards from a listing page. Anchors missing either an
// image or an overlay-text div are not cards and are skipped.
func Cards(doc *Document) []Card {
	var out []Card
	for _, a := range FindAllElements(doc.Root, "a") {
		href := Attr(a, "href")
		if href == "" {
			continue
		}
		img := FindElement(a, "img")
		overlay := FindByClass(a, "overlay-text")
		if img == nil || overlay == nil {
			continue
		}
		out = append(out, Card{
			Href:        href,
			Style:       Attr(a, "style"),
			ImgSrc:      Attr(img, "src"),
			OverlayText: Text(overlay),
		})
	}
	return out
}
