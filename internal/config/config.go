// Package config loads site.yaml. Every knob has a default matching the
// stock site layout, so the pipeline runs without a config file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the pipeline configuration for one site checkout.
type Config struct {
	// SiteRoot is the directory all output and asset paths are relative to.
	SiteRoot string `yaml:"site_root"`

	// SheetsDir holds the CSV exports (Projects.csv etc.), relative to SiteRoot.
	SheetsDir string `yaml:"sheets_dir"`

	// DataDir is the JSON output tree, relative to SiteRoot.
	DataDir string `yaml:"data_dir"`

	// PageNames maps project ids to display names. During migration this is
	// seeded from the legacy js/pageNames.js table; entries here win.
	PageNames map[string]string `yaml:"page_names"`

	// CategoryPages are the legacy listing pages to scrape, in scan order.
	CategoryPages []CategoryPage `yaml:"category_pages"`

	// BlogIndex is the legacy blog index page, relative to SiteRoot.
	BlogIndex string `yaml:"blog_index"`

	// BlogDir is scanned for posts when the index has no hardcoded cards.
	BlogDir string `yaml:"blog_dir"`

	// AllowedExtensions is the image extension set for gallery sync and
	// validation (lowercase, with dot).
	AllowedExtensions []string `yaml:"allowed_extensions"`

	// Tag-inference keyword lists for the combined multi-unit/commercial/
	// mixed-use category page.
	MultiUnitKeywords     []string `yaml:"multi_unit_keywords"`
	CommercialKeywords    []string `yaml:"commercial_keywords"`
	MixedUseKeywords      []string `yaml:"mixed_use_keywords"`
	PublicProgramKeywords []string `yaml:"public_program_keywords"`
	HousingKeywords       []string `yaml:"housing_keywords"`
}

// CategoryPage is one legacy listing page and the tag set its items inherit.
type CategoryPage struct {
	Tags []string `yaml:"tags"`
	Page string   `yaml:"page"` // relative to SiteRoot
	Dir  string   `yaml:"dir"`  // directory hrefs resolve against
}

// Default returns the configuration for the stock site layout.
func Default() Config {
	return Config{
		SiteRoot:  ".",
		SheetsDir: "data/sheets",
		DataDir:   "data",
		PageNames: map[string]string{},
		CategoryPages: []CategoryPage{
			{
				Tags: []string{"custom-residential"},
				Page: "_legacy/Projects/customResidential.html",
				Dir:  "_legacy/Projects",
			},
			{
				Tags: []string{"multi-unit", "commercial", "mixed-use"},
				Page: "_legacy/Projects/multiUnit-Commercial-MixedUse.html",
				Dir:  "_legacy/Projects",
			},
			{
				Tags: []string{"art-installation"},
				Page: "_legacy/Projects/artInstallation.html",
				Dir:  "_legacy/Projects",
			},
		},
		BlogIndex:         "blog.html",
		BlogDir:           "_legacy/Blog",
		AllowedExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		MultiUnitKeywords: []string{
			"multiplex", "multi", "units", "unit", "housing", "apartment",
			"duplex", "triplex", "fourplex", "sixplex", "missing middle",
			"residential",
		},
		CommercialKeywords: []string{
			"restaurant", "burger", "retail", "shop", "store", "clinic",
			"dentist", "museum", "centre", "center", "park",
		},
		MixedUseKeywords: []string{
			"mixed-use", "mixed use", "retail at grade", "commercial at grade",
		},
		PublicProgramKeywords: []string{"museum", "centre", "center", "park"},
		HousingKeywords: []string{
			"multiplex", "housing", "apartment", "duplex", "triplex",
			"fourplex", "sixplex",
		},
	}
}

// Load reads a site.yaml on top of the defaults. A missing file is not an
// error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SiteRoot == "" {
		cfg.SiteRoot = "."
	}
	return cfg, nil
}
