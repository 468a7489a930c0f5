package legacy

import (
	"bytes"
	"os/exec"
	"strings"

	"sitegen/internal/htmltext"
)

// LegacyContent is the backfill payload for one project, printed by the
// extract-legacy tool to seed the sheet CSVs.
type LegacyContent struct {
	LegacyPath     string   `json:"legacyPath"`
	Location       string   `json:"location"`
	Paragraphs     []string `json:"paragraphs"`
	ParagraphCount int      `json:"paragraphCount"`
}

// LegacyPathForID maps a project id to its legacy page path inside the
// repository, by id prefix. Unknown prefixes have no legacy page.
func LegacyPathForID(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return ""
	case strings.HasPrefix(id, "cr"):
		return "Projects/CustomResidential/" + id + ".html"
	case strings.HasPrefix(id, "muc"):
		return "Projects/MultiUnit-Commercial-MixedUse/" + id + ".html"
	case strings.HasPrefix(id, "ai"):
		return "Projects/ArtInstallation/" + id + ".html"
	}
	return ""
}

// gitShow reads a file as of HEAD. The legacy pages are being deleted from
// the working tree as the migration lands, so git is the source of truth.
func gitShow(repoDir, path string) (string, bool) {
	cmd := exec.Command("git", "show", "HEAD:"+path)
	cmd.Dir = repoDir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", false
	}
	return out.String(), true
}

// extractContent pulls the location line and description paragraphs out of
// one legacy project page.
func extractContent(htmlText string) (string, []string) {
	doc, err := htmltext.ParseString(htmlText)
	if err != nil {
		return "", nil
	}

	location := htmltext.PostSubtitle(doc)

	var paragraphs []string
	if container := htmltext.FindByClass(doc.Root, "post-RightContainer"); container != nil {
		for _, p := range htmltext.FindAllElements(container, "p") {
			if t := htmltext.Text(p); t != "" {
				paragraphs = append(paragraphs, t)
			}
		}
	}
	return location, paragraphs
}

// ExtractFromGit builds the backfill payload for the given project ids.
// Ids without a legacy page, or whose page is not in git, are omitted.
func (m *Migrator) ExtractFromGit(ids []string) map[string]LegacyContent {
	out := map[string]LegacyContent{}
	for _, id := range ids {
		legacyPath := LegacyPathForID(id)
		if legacyPath == "" {
			continue
		}
		htmlText, ok := gitShow(m.Cfg.SiteRoot, legacyPath)
		if !ok {
			continue
		}
		location, paragraphs := extractContent(htmlText)
		out[strings.TrimSpace(id)] = LegacyContent{
			LegacyPath:     legacyPath,
			Location:       location,
			Paragraphs:     nonNil(paragraphs),
			ParagraphCount: len(paragraphs),
		}
	}
	return out
}
