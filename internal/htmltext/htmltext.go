// Package htmltext extracts fields from the legacy HTML pages.
//
// Absence is data here: every extractor returns an empty value when the
// expected pattern is missing, never an error. The site content is
// semi-structured at best and items must degrade to partial records.
package htmltext

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingDotsRe = regexp.MustCompile(`^(\.\./)+`)
	brRe          = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe         = regexp.MustCompile(`</?[^>]+>`)
	spaceRe       = regexp.MustCompile(`\s+`)
	slugDropRe    = regexp.MustCompile(`[^\w\s-]`)
	slugDashRe    = regexp.MustCompile(`-+`)
)

// StripLeadingDots converts ../../images/foo.jpg -> images/foo.jpg.
// Legacy pages reference assets relative to their own nesting depth; the
// JSON tree stores everything relative to the site root.
func StripLeadingDots(p string) string {
	return leadingDotsRe.ReplaceAllString(p, "")
}

// StripTags flattens an HTML fragment to plain text: <br> becomes a space,
// all other tags are dropped, whitespace is collapsed.
func StripTags(fragment string) string {
	s := brRe.ReplaceAllString(fragment, " ")
	s = tagRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// entityReplacer covers the entities the legacy content actually uses.
// Unknown entities pass through unescaped; that lossiness is accepted and
// relied on downstream.
var entityReplacer = strings.NewReplacer(
	"&mdash;", "—",
	"&ndash;", "–",
	"&nbsp;", " ",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// DecodeEntities decodes the fixed allow-list of HTML entities.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// CleanText is the usual fragment-to-text pipeline: strip tags, decode.
func CleanText(fragment string) string {
	return DecodeEntities(StripTags(fragment))
}

// Slugify lowercases a name and reduces it to word characters and dashes.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugDropRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	return s
}

// ParsePx reads a pixel value for a CSS property out of an inline style
// string. Returns nil when the property is not present.
func ParsePx(style, prop string) *float64 {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prop) + `\s*:\s*([0-9.]+)px`)
	m := re.FindStringSubmatch(style)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
