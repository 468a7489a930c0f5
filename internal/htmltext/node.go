package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Document wraps a parsed legacy page. The parser's entity handling matches
// the content's conventions: known entities are decoded, unknown ones stay
// literal.
type Document struct {
	Root *html.Node
}

// ParseString parses a full HTML document.
func ParseString(s string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

// Attr returns the value of an attribute, "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the node's class attribute contains class as a
// whole token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// Walk visits n and its descendants in DOM order. Returning false from fn
// stops descent into that node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// FindByID returns the first element with the given id attribute.
func FindByID(n *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == html.ElementNode && Attr(c, "id") == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindByClass returns the first element carrying the class token.
func FindByClass(n *html.Node, class string) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == html.ElementNode && HasClass(c, class) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAllByClass returns all elements carrying the class token, in DOM order.
// Matching an element does not stop descent; nested matches are included.
func FindAllByClass(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && HasClass(c, class) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindAllElements returns all elements with the given tag, in DOM order.
func FindAllElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) bool {
		if isElement(c, tag) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindElement returns the first descendant element with the given tag.
func FindElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if isElement(c, tag) {
			found = c
			return false
		}
		return true
	})
	return found
}

// Text flattens a node to plain text with the same semantics as StripTags:
// <br> reads as a space and whitespace is collapsed.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case isElement(c, "br"):
			b.WriteString(" ")
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.TrimSpace(spaceRe.ReplaceAllString(b.String(), " "))
}

// InnerHTML renders the children of n back to HTML. The output is the
// parser's normalized form, not the original bytes.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return strings.TrimSpace(b.String())
}

// MetaDescription returns the content of <meta name="description">.
func MetaDescription(doc *Document) string {
	var out string
	Walk(doc.Root, func(n *html.Node) bool {
		if out != "" {
			return false
		}
		if isElement(n, "meta") && strings.EqualFold(Attr(n, "name"), "description") {
			out = strings.TrimSpace(Attr(n, "content"))
			return false
		}
		return true
	})
	return out
}

// FeaturedImage returns the src of the first image inside the legacy
// featured-image container. The container id is genuinely misspelled in the
// source pages ("feturedImgContainer"); keep it that way.
func FeaturedImage(doc *Document) string {
	container := FindByID(doc.Root, "feturedImgContainer")
	if container == nil {
		return ""
	}
	img := FindElement(container, "img")
	if img == nil {
		return ""
	}
	return StripLeadingDots(Attr(img, "src"))
}

// PostTitle returns the text of <h1 class="post-title">.
func PostTitle(doc *Document) string {
	for _, h1 := range FindAllElements(doc.Root, "h1") {
		if HasClass(h1, "post-title") {
			return Text(h1)
		}
	}
	return ""
}

// PostSubtitle returns the text of <h2 class="post-subtitle">, which the
// legacy project pages use for the location line.
func PostSubtitle(doc *Document) string {
	for _, h2 := range FindAllElements(doc.Root, "h2") {
		if HasClass(h2, "post-subtitle") {
			return Text(h2)
		}
	}
	return ""
}
