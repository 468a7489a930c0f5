package compile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sitegen/internal/jsonio"
	"sitegen/pkg/models"
)

func testCompiler(t *testing.T) *Compiler {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data", "sheets"), 0o755))
	return &Compiler{
		Log:       zap.NewNop().Sugar(),
		SiteRoot:  root,
		SheetsDir: filepath.Join("data", "sheets"),
		DataDir:   "data",
	}
}

func writeSheet(t *testing.T, c *Compiler, name, content string) {
	t.Helper()
	path := filepath.Join(c.SiteRoot, c.SheetsDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func seedSheets(t *testing.T, c *Compiler) {
	writeSheet(t, c, "Projects.csv",
		"id,name,type,tags,status,year,location,image_dir,featured_ext,sort_priority\n"+
			"p2,Second House,custom-residential,,published,2019,,images/projects/p2/,jpg,\n"+
			"p1,First House,custom-residential,,published,2021,\"Kelowna, BC\",images/projects/p1/,jpg,1\n"+
			"p3,Hidden Draft,custom-residential,,draft,,,,,\n"+
			"p4,Coming Soon,multi-unit,,coming-soon,,,,,\n")
	writeSheet(t, c, "SpecDefinitions.csv",
		"key,label,emit,show_on,order,required\n"+
			"site_area,Site Area,TRUE,list|detail,20,\n"+
			"storeys,Storeys,TRUE,detail,10,\n"+
			"internal_code,Internal Code,FALSE,,0,\n")
	writeSheet(t, c, "ProjectDescriptions.csv",
		"project_id,order,text\n"+
			"p1,1,A lakeside home.\n"+
			"p1,2,Built in stages.\n")
	writeSheet(t, c, "ProjectSpecs.csv",
		"project_id,key,value\n"+
			"p1,site_area,450 sqm\n"+
			"p1,storeys,3\n"+
			"p1,internal_code,X-99\n"+
			"p1,unknown_key,whatever\n")
}

func TestRunBuildsListingAndDetails(t *testing.T) {
	c := testCompiler(t)
	seedSheets(t, c)

	result, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, result.ProjectCount)

	var listing []models.ListingEntry
	require.NoError(t, jsonio.Read(filepath.Join(c.SiteRoot, "data", "projects.json"), &listing))
	require.Len(t, listing, 3)

	// sort_priority pulls p1 ahead; the rest keep sheet order. Drafts are out.
	assert.Equal(t, "p1", listing[0].ID)
	assert.Equal(t, "p2", listing[1].ID)
	assert.Equal(t, "p4", listing[2].ID)

	e := listing[0]
	assert.Equal(t, "First House", e.Name)
	assert.Equal(t, "first-house", e.Slug)
	require.NotNil(t, e.Year)
	assert.Equal(t, 2021, *e.Year)
	assert.Equal(t, "images/projects/p1/Featured.jpg", e.Thumbnail)
	assert.Equal(t, "project.html?id=p1", e.Href)
	assert.Equal(t, "data/projects/p1.json", e.DetailJSON)

	var detail models.DetailRecord
	require.NoError(t, jsonio.Read(filepath.Join(c.SiteRoot, "data", "projects", "p1.json"), &detail))
	assert.Equal(t, "Kelowna, BC", detail.Location)
	assert.Equal(t, []string{"A lakeside home.", "Built in stages."}, detail.Description)
	assert.Equal(t, []string{}, detail.Gallery)

	// Spec join: non-emit and undefined keys drop, output sorts by order.
	require.Len(t, detail.Specs, 2)
	assert.Equal(t, "storeys", detail.Specs[0].Key)
	assert.Equal(t, "Storeys", detail.Specs[0].Label)
	assert.Equal(t, []string{"detail"}, detail.Specs[0].ShowOn)
	assert.Equal(t, "site_area", detail.Specs[1].Key)

	// No detail file for the draft.
	_, err = os.Stat(filepath.Join(c.SiteRoot, "data", "projects", "p3.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunIsIdempotent(t *testing.T) {
	c := testCompiler(t)
	seedSheets(t, c)

	first, err := c.Run()
	require.NoError(t, err)

	listingPath := filepath.Join(c.SiteRoot, "data", "projects.json")
	before, err := os.ReadFile(listingPath)
	require.NoError(t, err)

	second, err := c.Run()
	require.NoError(t, err)

	after, err := os.ReadFile(listingPath)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(string(before), string(after)))

	assert.Equal(t, first.ListingHash, second.ListingHash)
	assert.True(t, second.Change.Empty())
	assert.Contains(t, second.Report, "No changes detected.")
}

func TestRunFirstBuildReportsAdds(t *testing.T) {
	c := testCompiler(t)
	seedSheets(t, c)

	result, err := c.Run()
	require.NoError(t, err)
	assert.Len(t, result.Change.Added, 3)
	assert.Contains(t, result.Report, "Added: 3")
	assert.Contains(t, result.Report, "  + p1")

	report, err := os.ReadFile(filepath.Join(c.SiteRoot, "data", "_change-report.txt"))
	require.NoError(t, err)
	assert.Equal(t, result.Report, string(report))
}

func TestRunPreservesGallery(t *testing.T) {
	c := testCompiler(t)
	seedSheets(t, c)

	_, err := c.Run()
	require.NoError(t, err)

	// Simulate an assets sync populating the gallery.
	detailPath := filepath.Join(c.SiteRoot, "data", "projects", "p1.json")
	var detail models.DetailRecord
	require.NoError(t, jsonio.Read(detailPath, &detail))
	detail.Gallery = []string{"images/projects/p1/Gallery/01.jpg"}
	require.NoError(t, jsonio.Write(detailPath, detail))

	_, err = c.Run()
	require.NoError(t, err)

	require.NoError(t, jsonio.Read(detailPath, &detail))
	assert.Equal(t, []string{"images/projects/p1/Gallery/01.jpg"}, detail.Gallery)
}

func TestListingJSONShape(t *testing.T) {
	c := testCompiler(t)
	writeSheet(t, c, "Projects.csv",
		"id,name,type,tags,status,year,location,image_dir,featured_ext,sort_priority\n"+
			"p1,One,custom-residential,,published,,,,,\n")

	_, err := c.Run()
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(c.SiteRoot, "data", "projects.json"))
	require.NoError(t, err)
	s := string(raw)

	assert.True(t, strings.HasSuffix(s, "\n"))
	assert.Contains(t, s, `"year": null`)
	assert.Contains(t, s, `"tags": [`)
	assert.NotContains(t, s, `"tags": null`)
}

func TestRunEmptySheets(t *testing.T) {
	c := testCompiler(t)

	result, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.ProjectCount)

	raw, err := os.ReadFile(filepath.Join(c.SiteRoot, "data", "projects.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}
