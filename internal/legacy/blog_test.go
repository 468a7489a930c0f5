package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/internal/htmltext"
	"sitegen/internal/jsonio"
	"sitegen/pkg/models"
)

const postPage = `<html><head>
<meta name="description" content="Notes on wood frame construction.">
</head><body>
<h1 class="post-title">Building with Wood</h1>
<div id="feturedImgContainer"><img src="../images/blog/wood/Featured.jpg"></div>
<div class="post-RightContainer">
	<p>Wood frames most of our work.</p>
	<img src="../images/blog/wood/frame.jpg" alt="framing">
	<div class="collapsible">
		<div class="collapsibleItem" id="species">
			<h3>Choosing Species</h3>
			<div class="collapsibleContent"><p>Fir for structure.</p></div>
		</div>
		<div class="collapsibleItem">
			<h3>Moisture Control</h3>
			<div class="collapsibleContent"><p>Keep it dry.</p></div>
		</div>
		<div class="collapsibleItem"><div class="collapsibleContent"><p>No heading here.</p></div></div>
	</div>
</div>
</body></html>`

func TestParseBlogIndexCards(t *testing.T) {
	doc, err := htmltext.ParseString(`<html><body>` +
		card("Blog/wood.html", "", "../images/blog/wood/thumb.jpg", "Building with Wood") +
		card("about.html", "", "../images/about.jpg", "Not a post") +
		`</body></html>`)
	require.NoError(t, err)

	posts := parseBlogIndexCards(doc)
	require.Len(t, posts, 1)
	p := posts[0]
	assert.Equal(t, "wood", p.ID)
	assert.Equal(t, "Building with Wood", p.Title)
	assert.Equal(t, "building-with-wood", p.Slug)
	assert.Equal(t, "blog-post.html?id=wood", p.Href)
	assert.Equal(t, "data/blog/wood.json", p.DetailJSON)
	assert.Equal(t, "Blog/wood.html", p.LegacyHTML)
	assert.Nil(t, p.Date)
}

func TestParsePostDetail(t *testing.T) {
	doc, err := htmltext.ParseString(postPage)
	require.NoError(t, err)

	detail := parsePostDetail(doc, "wood", "Blog/wood.html")
	assert.Equal(t, "Building with Wood", detail.Title)
	assert.Equal(t, "building-with-wood", detail.Slug)
	assert.Equal(t, "images/blog/wood/Featured.jpg", detail.FeaturedImage)
	assert.Equal(t, "Notes on wood frame construction.", detail.Meta.Description)

	// Intro stops at the collapsible sections.
	require.Len(t, detail.Intro, 2)
	assert.Equal(t, "p", detail.Intro[0].Type)
	assert.Equal(t, "img", detail.Intro[1].Type)
	assert.Equal(t, "images/blog/wood/frame.jpg", detail.Intro[1].Src)

	// Explicit section id wins; the heading slug fills in otherwise. The
	// heading-less item is dropped.
	require.Len(t, detail.Sections, 2)
	assert.Equal(t, "species", detail.Sections[0].ID)
	assert.Equal(t, "Choosing Species", detail.Sections[0].Title)
	require.Len(t, detail.Sections[0].Blocks, 1)
	assert.Equal(t, "Fir for structure.", detail.Sections[0].Blocks[0].HTML)
	assert.Equal(t, "moisture-control", detail.Sections[1].ID)
}

func TestParsePostDetailFallbacks(t *testing.T) {
	doc, err := htmltext.ParseString(`<html><body><p>bare page</p></body></html>`)
	require.NoError(t, err)

	detail := parsePostDetail(doc, "bare", "Blog/bare.html")
	assert.Equal(t, "bare", detail.Title)
	assert.Equal(t, []models.Block{}, detail.Intro)
	assert.Equal(t, []models.Section{}, detail.Sections)
}

func TestRunBlogFromIndex(t *testing.T) {
	m := testMigrator(t)
	writeSiteFile(t, m, "blog.html", `<html><body>`+
		card("Blog/wood.html", "", "../images/blog/wood/thumb.jpg", "Building with Wood")+
		card("Blog/missing.html", "", "../images/blog/missing/thumb.jpg", "Unwritten Post")+
		`</body></html>`)
	writeSiteFile(t, m, "Blog/wood.html", postPage)

	require.NoError(t, m.RunBlog())

	var listing []models.PostListing
	require.NoError(t, jsonio.Read(filepath.Join(m.Cfg.SiteRoot, "data", "blog.json"), &listing))
	require.Len(t, listing, 2)

	var detail models.PostDetail
	require.NoError(t, jsonio.Read(filepath.Join(m.Cfg.SiteRoot, "data", "blog", "wood.json"), &detail))
	assert.Equal(t, "Building with Wood", detail.Title)

	// Listed but unwritten posts keep their card and get no detail file.
	_, err := os.Stat(filepath.Join(m.Cfg.SiteRoot, "data", "blog", "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunBlogScansDirWithoutIndex(t *testing.T) {
	m := testMigrator(t)
	writeSiteFile(t, m, "_legacy/Blog/Zebra.html", postPage)
	writeSiteFile(t, m, "_legacy/Blog/alpha.html", postPage)

	require.NoError(t, m.RunBlog())

	var listing []models.PostListing
	require.NoError(t, jsonio.Read(filepath.Join(m.Cfg.SiteRoot, "data", "blog.json"), &listing))
	require.Len(t, listing, 2)

	// Case-insensitive filename order.
	assert.Equal(t, "alpha", listing[0].ID)
	assert.Equal(t, "Zebra", listing[1].ID)
}
