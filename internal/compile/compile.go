// Package compile turns the sheet CSV exports into the projects JSON tree:
// data/projects.json, data/projects/<id>.json, the build manifest and the
// change report.
package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"sitegen/internal/htmltext"
	"sitegen/internal/jsonio"
	"sitegen/internal/manifest"
	"sitegen/internal/sheets"
	"sitegen/pkg/models"
)

// Compiler runs one sheets-to-JSON build.
type Compiler struct {
	Log       *zap.SugaredLogger
	SiteRoot  string
	SheetsDir string // relative to SiteRoot
	DataDir   string // relative to SiteRoot
}

// Result summarizes a build for logging and the history store.
type Result struct {
	ProjectCount int
	ListingHash  string
	Change       manifest.Change
	Report       string
}

// shouldPublish reports whether a project row reaches the public site.
// Drafts never do; coming-soon items appear in the grid without a live page.
func shouldPublish(status string) bool {
	return status == "published" || status == "coming-soon"
}

func (c *Compiler) dataPath(parts ...string) string {
	return filepath.Join(append([]string{c.SiteRoot, c.DataDir}, parts...)...)
}

// Run executes the build. Item-level problems degrade to partial records;
// only filesystem write failures abort.
func (c *Compiler) Run() (*Result, error) {
	sheetsDir := filepath.Join(c.SiteRoot, c.SheetsDir)

	projects, err := sheets.LoadProjects(sheetsDir)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	specDefs, err := sheets.LoadSpecDefs(sheetsDir)
	if err != nil {
		return nil, fmt.Errorf("load spec definitions: %w", err)
	}
	descriptions, err := sheets.LoadDescriptions(sheetsDir)
	if err != nil {
		return nil, fmt.Errorf("load descriptions: %w", err)
	}
	specValues, err := sheets.LoadSpecs(sheetsDir)
	if err != nil {
		return nil, fmt.Errorf("load specs: %w", err)
	}

	var publishable []sheets.Project
	for _, p := range projects {
		if shouldPublish(p.Status) {
			publishable = append(publishable, p)
		}
	}

	// Sheet order is the default; sort_priority pulls items forward when set.
	sort.SliceStable(publishable, func(i, j int) bool {
		pi, pj := publishable[i].SortPriority, publishable[j].SortPriority
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})

	listing := make([]models.ListingEntry, 0, len(publishable))
	projectHashes := make(map[string]string, len(publishable))

	for _, p := range publishable {
		listing = append(listing, buildListingEntry(p))
	}

	for _, p := range publishable {
		detail := buildDetail(p, descriptions[p.ID], buildSpecs(specValues[p.ID], specDefs))

		// Gallery is owned by the assets sync; carry the existing list over
		// so a compile does not wipe it.
		detailPath := c.dataPath("projects", p.ID+".json")
		detail.Gallery = existingGallery(detailPath)

		projectHashes[p.ID] = manifest.Hash(detail)
		if err := jsonio.Write(detailPath, detail); err != nil {
			return nil, err
		}
	}

	if err := jsonio.Write(c.dataPath("projects.json"), listing); err != nil {
		return nil, err
	}

	manifestPath := c.dataPath("_build-manifest.json")
	old := manifest.Load(manifestPath)
	next := manifest.Manifest{
		ListingHash: manifest.Hash(listing),
		Projects:    projectHashes,
	}
	if err := jsonio.Write(manifestPath, next); err != nil {
		return nil, err
	}

	change := manifest.Diff(old, next)
	report := manifest.Report(change)
	reportPath := c.dataPath("_change-report.txt")
	if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", reportPath, err)
	}

	c.Log.Infof("wrote %d projects -> %s", len(publishable), c.dataPath("projects.json"))
	c.Log.Infof("wrote detail JSONs -> %s", c.dataPath("projects"))

	return &Result{
		ProjectCount: len(publishable),
		ListingHash:  next.ListingHash,
		Change:       change,
		Report:       report,
	}, nil
}

func buildListingEntry(p sheets.Project) models.ListingEntry {
	return models.ListingEntry{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       htmltext.Slugify(p.Name),
		Year:       p.Year,
		Tags:       nonNil(p.Tags),
		Thumbnail:  thumbnail(p),
		Status:     p.Status,
		Href:       "project.html?id=" + p.ID,
		DetailJSON: "data/projects/" + p.ID + ".json",
	}
}

func buildDetail(p sheets.Project, descriptions []string, specs []models.Spec) models.DetailRecord {
	return models.DetailRecord{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          htmltext.Slugify(p.Name),
		Year:          p.Year,
		Tags:          nonNil(p.Tags),
		Status:        p.Status,
		Location:      p.Location,
		FeaturedImage: thumbnail(p),
		Description:   nonNil(descriptions),
		Gallery:       []string{},
		Specs:         specs,
	}
}

// buildSpecs joins project attribute values with their definitions.
// Values without a definition, or whose definition is not marked emit, are
// dropped. The sort by order is stable; value order breaks ties.
func buildSpecs(values []sheets.SpecValue, defs map[string]sheets.SpecDef) []models.Spec {
	specs := make([]models.Spec, 0, len(values))
	for _, v := range values {
		def, ok := defs[v.Key]
		if !ok || !def.Emit {
			continue
		}
		specs = append(specs, models.Spec{
			Key:    v.Key,
			Label:  def.Label,
			Value:  v.Value,
			ShowOn: nonNil(def.ShowOn),
			Order:  def.Order,
		})
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Order < specs[j].Order })
	return specs
}

// thumbnail follows the sheet convention: image_dir + "Featured." + ext.
func thumbnail(p sheets.Project) string {
	return p.ImageDir + "Featured." + p.FeaturedExt
}

// existingGallery reads the gallery list out of a previous detail file.
// Anything unreadable means no gallery yet.
func existingGallery(path string) []string {
	var detail models.DetailRecord
	if err := jsonio.Read(path, &detail); err != nil {
		return []string{}
	}
	return nonNil(detail.Gallery)
}

// nonNil keeps empty arrays serializing as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
