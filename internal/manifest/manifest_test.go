package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	a := Hash(map[string]string{"id": "p1"})
	b := Hash(map[string]string{"id": "p1"})
	c := Hash(map[string]string{"id": "p2"})

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, Manifest{}, Load(filepath.Join(dir, "missing.json")))

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	assert.Equal(t, Manifest{}, Load(corrupt))

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"listing_hash":"abc","projects":{"p1":"h1"}}`), 0o644))
	m := Load(good)
	assert.Equal(t, "abc", m.ListingHash)
	assert.Equal(t, "h1", m.Projects["p1"])
}

func TestDiff(t *testing.T) {
	old := Manifest{Projects: map[string]string{"p1": "h1", "p2": "h2", "p3": "h3"}}
	next := Manifest{Projects: map[string]string{"p1": "h1", "p2": "h2x", "p4": "h4"}}

	ch := Diff(old, next)
	assert.Equal(t, []string{"p4"}, ch.Added)
	assert.Equal(t, []string{"p3"}, ch.Removed)
	assert.Equal(t, []string{"p2"}, ch.Changed)
	assert.False(t, ch.Empty())

	assert.True(t, Diff(old, old).Empty())
}

func TestReport(t *testing.T) {
	ch := Change{Added: []string{"p4"}, Changed: []string{"p2"}}
	report := Report(ch)

	assert.Contains(t, report, "=== Build Change Report ===")
	assert.Contains(t, report, "Added: 1")
	assert.Contains(t, report, "  + p4")
	assert.Contains(t, report, "Changed: 1")
	assert.Contains(t, report, "  ~ p2")
	assert.NotContains(t, report, "Removed")

	assert.Contains(t, Report(Change{}), "No changes detected.")
}
