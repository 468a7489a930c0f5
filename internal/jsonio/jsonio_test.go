package jsonio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDirsAndFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "projects", "p1.json")

	type record struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, Write(path, record{ID: "p1", Tags: []string{}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"p1\",\n  \"tags\": []\n}\n", string(b))

	var got record
	require.NoError(t, Read(path, &got))
	assert.Equal(t, "p1", got.ID)
}

func TestWriteIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	v := map[string]int{"x": 1, "y": 2, "z": 3}
	require.NoError(t, Write(a, v))
	require.NoError(t, Write(b, v))

	ab, err := os.ReadFile(a)
	require.NoError(t, err)
	bb, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, string(ab), string(bb))
}

func TestReadMissingFile(t *testing.T) {
	var v any
	err := Read(filepath.Join(t.TempDir(), "nope.json"), &v)
	assert.True(t, os.IsNotExist(err))
}
