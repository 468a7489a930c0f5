// Package sheets loads the Google Sheets CSV exports that drive the
// project compiler: Projects, SpecDefinitions, ProjectDescriptions and
// ProjectSpecs tabs.
//
// Loaders are tolerant the same way the sheet is edited: missing tabs are
// empty sets, rows without an id are skipped, blank cells are absent values.
package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Project is one row of the Projects tab.
type Project struct {
	ID           string
	Name         string
	Type         string
	Tags         []string
	Status       string
	Year         *int
	Location     string
	ImageDir     string
	FeaturedExt  string
	SortPriority *int
}

// SpecDef is one row of the SpecDefinitions tab.
type SpecDef struct {
	Key      string
	Label    string
	Emit     bool
	ShowOn   []string
	Order    int
	Required bool
}

// SpecValue is a single project attribute value before the definition join.
type SpecValue struct {
	Key   string
	Value string
}

// table is one parsed CSV file with header order preserved (the wide
// ProjectSpecs shape depends on column order).
type table struct {
	header []string
	rows   []map[string]string
}

func readTable(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table{}, nil
		}
		return table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return table{}, nil
	}
	if err != nil {
		return table{}, fmt.Errorf("read header of %s: %w", path, err)
	}

	t := table{header: make([]string, len(head))}
	for i, name := range head {
		if i == 0 {
			// Sheets exports carry a BOM.
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		t.header[i] = strings.TrimSpace(name)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("read %s: %w", path, err)
		}
		m := make(map[string]string, len(t.header))
		for i, name := range t.header {
			if name == "" {
				continue
			}
			if i < len(row) {
				m[name] = strings.TrimSpace(row[i])
			} else {
				m[name] = ""
			}
		}
		t.rows = append(t.rows, m)
	}
	return t, nil
}

func (t table) hasColumn(name string) bool {
	for _, h := range t.header {
		if h == name {
			return true
		}
	}
	return false
}

// isTruthy matches the sheet's TRUE/YES/1 convention.
func isTruthy(val string) bool {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "TRUE", "YES", "1", "T", "Y":
		return true
	}
	return false
}

// parseTags splits a comma-separated tag cell.
func parseTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseShowOn splits a show_on cell on "|".
func parseShowOn(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "|") {
		return []string{s}
	}
	var out []string
	for _, x := range strings.Split(s, "|") {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

// parseDigits parses a value only when it is all digits; anything else
// (blank, "TBD", a range) is an absent number, not an error.
func parseDigits(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// LoadProjects reads the Projects tab from dir.
func LoadProjects(dir string) ([]Project, error) {
	t, err := readTable(filepath.Join(dir, "Projects.csv"))
	if err != nil {
		return nil, err
	}

	var out []Project
	for _, r := range t.rows {
		id := r["id"]
		if id == "" {
			continue
		}
		name := r["name"]
		if name == "" {
			name = id
		}
		ptype := r["type"]
		tags := parseTags(r["tags"])
		if len(tags) == 0 && ptype != "" {
			tags = []string{ptype}
		}
		status := r["status"]
		if status == "" {
			status = "draft"
		}
		featuredExt := r["featured_ext"]
		if featuredExt == "" {
			featuredExt = "jpg"
		}
		out = append(out, Project{
			ID:           id,
			Name:         name,
			Type:         ptype,
			Tags:         tags,
			Status:       status,
			Year:         parseDigits(r["year"]),
			Location:     r["location"],
			ImageDir:     r["image_dir"],
			FeaturedExt:  featuredExt,
			SortPriority: parseDigits(r["sort_priority"]),
		})
	}
	return out, nil
}

// LoadSpecDefs reads the SpecDefinitions tab keyed by spec key.
func LoadSpecDefs(dir string) (map[string]SpecDef, error) {
	t, err := readTable(filepath.Join(dir, "SpecDefinitions.csv"))
	if err != nil {
		return nil, err
	}

	out := make(map[string]SpecDef, len(t.rows))
	for _, r := range t.rows {
		key := r["key"]
		if key == "" {
			continue
		}
		label := r["label"]
		if label == "" {
			label = key
		}
		order := 0
		if n := parseDigits(r["order"]); n != nil {
			order = *n
		}
		out[key] = SpecDef{
			Key:      key,
			Label:    label,
			Emit:     isTruthy(r["emit"]),
			ShowOn:   parseShowOn(r["show_on"]),
			Order:    order,
			Required: isTruthy(r["required"]),
		}
	}
	return out, nil
}

// LoadDescriptions reads the ProjectDescriptions tab (long format) and
// returns ordered paragraphs per project id. Rows sort by their order
// column; source order breaks ties.
func LoadDescriptions(dir string) (map[string][]string, error) {
	t, err := readTable(filepath.Join(dir, "ProjectDescriptions.csv"))
	if err != nil {
		return nil, err
	}

	type para struct {
		order int
		seq   int
		text  string
	}
	byID := make(map[string][]para)
	for i, r := range t.rows {
		pid := r["project_id"]
		if pid == "" {
			continue
		}
		text := r["text"]
		if text == "" {
			continue
		}
		order := 0
		if n := parseDigits(r["order"]); n != nil {
			order = *n
		}
		byID[pid] = append(byID[pid], para{order: order, seq: i, text: text})
	}

	out := make(map[string][]string, len(byID))
	for pid, paras := range byID {
		sort.Slice(paras, func(i, j int) bool {
			if paras[i].order != paras[j].order {
				return paras[i].order < paras[j].order
			}
			return paras[i].seq < paras[j].seq
		})
		texts := make([]string, len(paras))
		for i, p := range paras {
			texts[i] = p.text
		}
		out[pid] = texts
	}
	return out, nil
}

// LoadSpecs reads the ProjectSpecs tab. Two shapes are accepted:
//
//   - long: project_id,key,value (one row per attribute)
//   - wide: project_id,<key1>,<key2>,... (one row per project)
//
// The shape is detected from the header. Empty values are skipped in both.
func LoadSpecs(dir string) (map[string][]SpecValue, error) {
	t, err := readTable(filepath.Join(dir, "ProjectSpecs.csv"))
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return map[string][]SpecValue{}, nil
	}

	out := make(map[string][]SpecValue)

	if t.hasColumn("key") && t.hasColumn("value") {
		for _, r := range t.rows {
			pid := r["project_id"]
			if pid == "" {
				continue
			}
			key, value := r["key"], r["value"]
			if key == "" || value == "" {
				continue
			}
			out[pid] = append(out[pid], SpecValue{Key: key, Value: value})
		}
		return out, nil
	}

	// Wide shape: every non-id column is a spec key, in header order.
	for _, r := range t.rows {
		pid := r["project_id"]
		if pid == "" {
			pid = r["id"]
		}
		if pid == "" {
			continue
		}
		for _, col := range t.header {
			if col == "" || col == "project_id" || col == "id" {
				continue
			}
			value := r[col]
			if value == "" {
				continue
			}
			out[pid] = append(out[pid], SpecValue{Key: col, Value: value})
		}
	}
	return out, nil
}
