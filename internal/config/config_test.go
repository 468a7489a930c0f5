package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data/sheets", cfg.SheetsDir)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Len(t, cfg.CategoryPages, 3)
	assert.Equal(t, []string{"custom-residential"}, cfg.CategoryPages[0].Tags)
	assert.Contains(t, cfg.AllowedExtensions, ".webp")
	assert.NotEmpty(t, cfg.MultiUnitKeywords)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "site.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().SheetsDir, cfg.SheetsDir)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: out
page_names:
  cr01: Angle House
category_pages:
  - tags: [custom-residential]
    page: legacy/cr.html
    dir: legacy
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.DataDir)
	assert.Equal(t, "Angle House", cfg.PageNames["cr01"])
	require.Len(t, cfg.CategoryPages, 1)
	assert.Equal(t, "legacy/cr.html", cfg.CategoryPages[0].Page)

	// Untouched knobs keep their defaults.
	assert.Equal(t, "data/sheets", cfg.SheetsDir)
	assert.Equal(t, ".", cfg.SiteRoot)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
