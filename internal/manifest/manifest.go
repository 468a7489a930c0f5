// Package manifest tracks content hashes across compiler runs so a human
// can see what a re-run actually changed before deploying.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Manifest maps item ids to content hashes for one build. It carries only
// deterministic content; re-running the compiler on unchanged input must
// reproduce it byte for byte.
type Manifest struct {
	ListingHash string            `json:"listing_hash"`
	Projects    map[string]string `json:"projects"`
}

// Hash returns the truncated sha256 of v's canonical JSON encoding.
// 16 hex characters, same truncation the previous tooling used, so old
// manifests still diff cleanly.
func Hash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:16]
}

// Load reads the previous manifest. Missing or corrupt files yield an empty
// manifest; the first build has nothing to diff against.
func Load(path string) Manifest {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}
	}
	return m
}

// Change is the id-level diff between two builds.
type Change struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the diff found nothing.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Diff compares the new manifest against a previous one.
func Diff(old, new Manifest) Change {
	var ch Change
	for id, h := range new.Projects {
		oldHash, ok := old.Projects[id]
		switch {
		case !ok:
			ch.Added = append(ch.Added, id)
		case oldHash != h:
			ch.Changed = append(ch.Changed, id)
		}
	}
	for id := range old.Projects {
		if _, ok := new.Projects[id]; !ok {
			ch.Removed = append(ch.Removed, id)
		}
	}
	sort.Strings(ch.Added)
	sort.Strings(ch.Removed)
	sort.Strings(ch.Changed)
	return ch
}

// Report renders the human-readable change report written next to the
// manifest.
func Report(ch Change) string {
	var lines []string
	lines = append(lines, "=== Build Change Report ===\n")

	section := func(title, mark string, ids []string) {
		if len(ids) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %d", title, len(ids)))
		for _, id := range ids {
			lines = append(lines, fmt.Sprintf("  %s %s", mark, id))
		}
		lines = append(lines, "")
	}
	section("Added", "+", ch.Added)
	section("Removed", "-", ch.Removed)
	section("Changed", "~", ch.Changed)

	if ch.Empty() {
		lines = append(lines, "No changes detected.\n")
	}
	return strings.Join(lines, "\n")
}
