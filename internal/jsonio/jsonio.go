// Package jsonio writes the JSON tree the browser renderers fetch.
//
// Output is pretty-printed with a trailing newline and stable key order
// (struct field order), so re-runs on unchanged input are byte-identical
// and diffs stay minimal.
package jsonio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write marshals v and overwrites path wholesale, creating parent
// directories as needed. There is no partial merge; the compiler owns the
// whole file.
func Write(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read unmarshals path into v.
func Read(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
