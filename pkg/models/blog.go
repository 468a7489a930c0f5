package models

import "encoding/json"

// PostListing is one card in data/blog.json.
type PostListing struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Date       *string  `json:"date"` // null until posts carry dates
	Tags       []string `json:"tags"`
	Thumbnail  string   `json:"thumbnail"`
	Href       string   `json:"href"`
	DetailJSON string   `json:"detailJson"`
	LegacyHTML string   `json:"legacyHtml,omitempty"`
}

// PostDetail is the full payload for one post, written to data/blog/<id>.json.
type PostDetail struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Date          *string   `json:"date"`
	FeaturedImage string    `json:"featuredImage"`
	Meta          PostMeta  `json:"meta"`
	Intro         []Block   `json:"intro"`    // content before the first collapsible
	Sections      []Section `json:"sections"` // collapsible sections in page order
	LegacyHTML    string    `json:"legacyHtml,omitempty"`
}

type PostMeta struct {
	Description string `json:"description"`
}

// Section is one named collapsible block of a post.
type Section struct {
	ID     string  `json:"id"` // explicit id attribute, else slug of the heading
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Block is one content unit inside intro/sections, in DOM order.
// Type is "p", "img" or "iframe"; only the fields of that type are emitted.
type Block struct {
	Type   string
	HTML   string   // p: inner HTML of the paragraph
	Indent *float64 // p: margin-left in px, null when unstyled
	Src    string   // img/iframe
	Alt    string   // img
	Height string   // iframe
	Title  string   // iframe
}

type pBlock struct {
	Type   string   `json:"type"`
	HTML   string   `json:"html"`
	Indent *float64 `json:"indent"`
}

type imgBlock struct {
	Type string `json:"type"`
	Src  string `json:"src"`
	Alt  string `json:"alt"`
}

type iframeBlock struct {
	Type   string `json:"type"`
	Src    string `json:"src"`
	Height string `json:"height"`
	Title  string `json:"title"`
}

// MarshalJSON emits only the keys that belong to the block's type, matching
// the shape the renderers already consume.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case "img":
		return json.Marshal(imgBlock{Type: b.Type, Src: b.Src, Alt: b.Alt})
	case "iframe":
		return json.Marshal(iframeBlock{Type: b.Type, Src: b.Src, Height: b.Height, Title: b.Title})
	default:
		return json.Marshal(pBlock{Type: b.Type, HTML: b.HTML, Indent: b.Indent})
	}
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   string   `json:"type"`
		HTML   string   `json:"html"`
		Indent *float64 `json:"indent"`
		Src    string   `json:"src"`
		Alt    string   `json:"alt"`
		Height string   `json:"height"`
		Title  string   `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Block{
		Type:   raw.Type,
		HTML:   raw.HTML,
		Indent: raw.Indent,
		Src:    raw.Src,
		Alt:    raw.Alt,
		Height: raw.Height,
		Title:  raw.Title,
	}
	return nil
}
