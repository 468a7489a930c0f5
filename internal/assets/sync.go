// Package assets reconciles each project's image directory with its detail
// JSON: it checks the Featured image, renames Gallery/ files to a two-digit
// sequence and rewrites the gallery[] field to match the disk.
//
// This is the only place in the pipeline that mutates anything besides the
// JSON tree, so renames are planned fully before any write and staged
// through temporary names; a collision between a source and a not-yet-moved
// target can never overwrite a file.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sitegen/internal/jsonio"
	"sitegen/pkg/models"
)

const stagePrefix = "_temp_"

// Syncer runs one assets pass over the compiled project tree.
type Syncer struct {
	Log               *zap.SugaredLogger
	SiteRoot          string
	DataDir           string   // relative to SiteRoot
	AllowedExtensions []string // lowercase, with dot
	DryRun            bool     // plan and report, touch nothing
}

type rename struct {
	From string // absolute
	To   string // absolute
}

func (s *Syncer) isImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range s.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// relToSite converts an absolute path into the site-root-relative,
// forward-slash form stored in the JSON tree.
func (s *Syncer) relToSite(p string) string {
	rel, err := filepath.Rel(s.SiteRoot, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// listImages returns the image files of dir sorted case-insensitively by
// filename. That sort is the gallery order contract.
func (s *Syncer) listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && s.isImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// planGallery computes the rename plan and the resulting gallery list for
// one Gallery/ directory. Sequence names are zero-padded two digits with the
// original extension kept as-is.
func (s *Syncer) planGallery(galleryDir string) (renames []rename, planned []string, err error) {
	names, err := s.listImages(galleryDir)
	if err != nil {
		return nil, nil, err
	}
	for i, name := range names {
		newName := fmt.Sprintf("%02d%s", i+1, filepath.Ext(name))
		if name != newName {
			renames = append(renames, rename{
				From: filepath.Join(galleryDir, name),
				To:   filepath.Join(galleryDir, newName),
			})
		}
		planned = append(planned, s.relToSite(filepath.Join(galleryDir, newName)))
	}
	return renames, planned, nil
}

// applyRenames executes a plan in two phases: every source is first staged
// to a temporary name, then every staged file moves to its target. A failed
// finalize is reverted best-effort so no staged files are left behind.
// Returns how many renames completed.
func (s *Syncer) applyRenames(projectID string, renames []rename) int {
	type staged struct {
		tmp string
		to  string
	}
	var stagedFiles []staged

	for _, r := range renames {
		tmp := filepath.Join(filepath.Dir(r.From), stagePrefix+filepath.Base(r.From))
		if err := os.Rename(r.From, tmp); err != nil {
			s.Log.Warnf("%s: cannot rename %s (%v), leaving as-is", projectID, filepath.Base(r.From), err)
			continue
		}
		stagedFiles = append(stagedFiles, staged{tmp: tmp, to: r.To})
	}

	finalized := 0
	for _, st := range stagedFiles {
		if err := os.Rename(st.tmp, st.to); err != nil {
			original := strings.Replace(st.tmp, stagePrefix, "", 1)
			if revertErr := os.Rename(st.tmp, original); revertErr != nil {
				s.Log.Warnf("%s: staged file left at %s (%v)", projectID, st.tmp, revertErr)
			}
			s.Log.Warnf("%s: cannot finalize rename to %s (%v)", projectID, filepath.Base(st.to), err)
			continue
		}
		finalized++
	}
	return finalized
}

// galleryFromDisk rebuilds the gallery list from what actually exists,
// which is the truth even when some renames failed.
func (s *Syncer) galleryFromDisk(galleryDir string) []string {
	names, err := s.listImages(galleryDir)
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, s.relToSite(filepath.Join(galleryDir, name)))
	}
	return out
}

// syncGallery reconciles one project's Gallery/ directory and returns the
// gallery list to store.
func (s *Syncer) syncGallery(projectID, galleryDir string) []string {
	if info, err := os.Stat(galleryDir); err != nil || !info.IsDir() {
		s.Log.Warnf("%s: Gallery/ not found at %s", projectID, galleryDir)
		return []string{}
	}

	renames, planned, err := s.planGallery(galleryDir)
	if err != nil {
		s.Log.Warnf("%s: list gallery: %v", projectID, err)
		return []string{}
	}
	if len(planned) == 0 {
		s.Log.Warnf("%s: Gallery/ is empty", projectID)
		return []string{}
	}

	if s.DryRun {
		for _, r := range renames {
			s.Log.Infof("%s: would rename %s -> %s", projectID, filepath.Base(r.From), filepath.Base(r.To))
		}
		return planned
	}

	if len(renames) > 0 {
		finalized := s.applyRenames(projectID, renames)
		if finalized > 0 {
			s.Log.Infof("%s: renamed %d/%d gallery images", projectID, finalized, len(renames))
		} else {
			s.Log.Infof("%s: no gallery renames applied", projectID)
		}
	}

	return s.galleryFromDisk(galleryDir)
}

// Run syncs every project in the listing. Per-item problems are reported
// and skipped; only a failed JSON write aborts.
func (s *Syncer) Run() error {
	listingPath := filepath.Join(s.SiteRoot, s.DataDir, "projects.json")

	var listing []models.ListingEntry
	if err := jsonio.Read(listingPath, &listing); err != nil {
		return fmt.Errorf("read listing: %w", err)
	}

	for _, entry := range listing {
		if entry.ID == "" {
			continue
		}

		detailPath := filepath.Join(s.SiteRoot, s.DataDir, "projects", entry.ID+".json")
		var detail models.DetailRecord
		if err := jsonio.Read(detailPath, &detail); err != nil {
			s.Log.Warnf("%s: detail JSON not found, skipping", entry.ID)
			continue
		}

		if detail.FeaturedImage == "" {
			s.Log.Warnf("%s: no featuredImage", entry.ID)
			continue
		}

		featuredPath := filepath.Join(s.SiteRoot, filepath.FromSlash(detail.FeaturedImage))
		if _, err := os.Stat(featuredPath); err != nil {
			s.Log.Errorf("%s: featured image not found: %s", entry.ID, detail.FeaturedImage)
		}

		imageDir := filepath.Dir(featuredPath)
		gallery := s.syncGallery(entry.ID, filepath.Join(imageDir, "Gallery"))

		if !s.DryRun && !equalStrings(gallery, detail.Gallery) {
			detail.Gallery = gallery
			if err := jsonio.Write(detailPath, detail); err != nil {
				return err
			}
			s.Log.Infof("%s: updated gallery[]", entry.ID)
		}

		s.checkDiagrams(entry, imageDir)
	}

	if s.DryRun {
		s.Log.Info("assets sync complete (dry-run)")
	} else {
		s.Log.Info("assets sync complete")
	}
	return nil
}

// checkDiagrams warns when a multi-unit project has no Diagrams/ images.
// Advisory only; diagrams are recommended, not required.
func (s *Syncer) checkDiagrams(entry models.ListingEntry, imageDir string) {
	multiUnit := false
	for _, t := range entry.Tags {
		if t == "multi-unit" {
			multiUnit = true
			break
		}
	}
	if !multiUnit {
		return
	}

	diagramsDir := filepath.Join(imageDir, "Diagrams")
	names, err := s.listImages(diagramsDir)
	if err != nil || len(names) == 0 {
		s.Log.Warnf("%s: no diagrams found in Diagrams/ (recommended for multi-unit)", entry.ID)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
