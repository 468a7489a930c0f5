// Package validate runs the read-only pre-deploy checks over the compiled
// JSON tree. It is the single point where missing data becomes a blocking
// signal: the pipeline tools degrade gracefully, the validator does not.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sitegen/pkg/models"
)

// Validator runs the checks against one site checkout.
type Validator struct {
	Log      *zap.SugaredLogger
	SiteRoot string
	DataDir  string // relative to SiteRoot
}

// Summary is the tally of one validation run.
type Summary struct {
	Errors   int
	Warnings int
}

// OK reports whether the tree is deployable.
func (s Summary) OK() bool { return s.Errors == 0 }

func (v *Validator) errf(s *Summary, format string, args ...any) {
	s.Errors++
	v.Log.Errorf(format, args...)
}

func (v *Validator) warnf(s *Summary, format string, args ...any) {
	s.Warnings++
	v.Log.Warnf(format, args...)
}

func (v *Validator) exists(sitePath string) bool {
	_, err := os.Stat(filepath.Join(v.SiteRoot, filepath.FromSlash(sitePath)))
	return err == nil
}

// Run executes all checks and returns the tally. Content problems are
// counted, never returned; a missing projects.json is itself an error in
// the tally.
func (v *Validator) Run() Summary {
	var s Summary
	v.validateListing(&s)
	v.validateDetails(&s)

	v.Log.Infof("errors: %d, warnings: %d", s.Errors, s.Warnings)
	if s.OK() {
		v.Log.Info("validation passed")
	} else {
		v.Log.Error("validation failed, fix errors before deploying")
	}
	return s
}

// validateListing checks data/projects.json: every entry needs an id, a
// detail JSON at its declared path, and an existing thumbnail.
func (v *Validator) validateListing(s *Summary) {
	listingPath := filepath.Join(v.SiteRoot, v.DataDir, "projects.json")
	b, err := os.ReadFile(listingPath)
	if err != nil {
		v.errf(s, "projects.json not found: %v", err)
		return
	}

	var listing []map[string]any
	if err := json.Unmarshal(b, &listing); err != nil {
		v.errf(s, "projects.json parse error: %v", err)
		return
	}

	v.Log.Infof("listing: %d projects", len(listing))

	for _, item := range listing {
		id, _ := item["id"].(string)
		if id == "" {
			v.errf(s, "listing item missing id")
			continue
		}

		detailJSON, _ := item["detailJson"].(string)
		if detailJSON == "" {
			v.warnf(s, "%s: no detailJson field", id)
			continue
		}
		if !v.exists(detailJSON) {
			v.errf(s, "%s: detail JSON not found: %s", id, detailJSON)
			continue
		}

		if thumbnail, _ := item["thumbnail"].(string); thumbnail != "" && !v.exists(thumbnail) {
			v.errf(s, "%s: thumbnail not found: %s", id, thumbnail)
		}
	}
}

// validateDetails checks every file under data/projects: referenced images
// must exist and specs must match their schema.
func (v *Validator) validateDetails(s *Summary) {
	dir := filepath.Join(v.SiteRoot, v.DataDir, "projects")
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		v.errf(s, "scan %s: %v", dir, err)
		return
	}
	sort.Strings(paths)

	v.Log.Infof("detail JSONs: %d", len(paths))

	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), ".json")

		b, err := os.ReadFile(path)
		if err != nil {
			v.errf(s, "%s: read error: %v", id, err)
			continue
		}
		var detail map[string]any
		if err := json.Unmarshal(b, &detail); err != nil {
			v.errf(s, "%s: parse error: %v", id, err)
			continue
		}

		if featured, _ := detail["featuredImage"].(string); featured != "" {
			if !v.exists(featured) {
				v.errf(s, "%s: featuredImage not found: %s", id, featured)
			}
		} else {
			v.warnf(s, "%s: no featuredImage", id)
		}

		if gallery, ok := detail["gallery"].([]any); ok {
			for _, g := range gallery {
				gp, _ := g.(string)
				if gp == "" || !v.exists(gp) {
					v.errf(s, "%s: gallery image not found: %v", id, g)
				}
			}
		}

		v.validateSpecs(s, id, detail["specs"])
	}
}

// validateSpecs checks the specs schema field by field; a struct unmarshal
// would reject the whole file on the first bad entry and hide the rest.
func (v *Validator) validateSpecs(s *Summary, id string, raw any) {
	if raw == nil {
		return
	}
	specs, ok := raw.([]any)
	if !ok {
		v.errf(s, "%s: specs is not an array", id)
		return
	}

	for i, entry := range specs {
		spec, ok := entry.(map[string]any)
		if !ok {
			v.errf(s, "%s: spec %d is not an object", id, i)
			continue
		}
		if key, _ := spec["key"].(string); key == "" {
			v.errf(s, "%s: spec %d missing key", id, i)
		}
		if _, ok := spec["label"].(string); !ok {
			v.errf(s, "%s: spec %d label must be a string", id, i)
		}
		if _, ok := spec["value"].(string); !ok {
			v.errf(s, "%s: spec %d value must be a string", id, i)
		}
		if showOn, present := spec["showOn"]; present {
			v.validateShowOn(s, id, i, showOn)
		}
		if order, present := spec["order"]; present {
			// JSON numbers decode as float64.
			if _, ok := order.(float64); !ok {
				v.errf(s, "%s: spec %d order must be numeric", id, i)
			}
		}
	}
}

func (v *Validator) validateShowOn(s *Summary, id string, i int, raw any) {
	values, ok := raw.([]any)
	if !ok {
		v.errf(s, "%s: spec %d showOn must be an array", id, i)
		return
	}
	for _, sv := range values {
		scope, _ := sv.(string)
		if scope != models.ShowOnList && scope != models.ShowOnDetail {
			v.errf(s, "%s: spec %d showOn has invalid scope %q", id, i, fmt.Sprint(sv))
		}
	}
}
