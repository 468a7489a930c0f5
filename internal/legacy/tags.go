package legacy

import (
	"regexp"
	"strings"
)

var (
	officeRe     = regexp.MustCompile(`\boffice\b`)
	homeOfficeRe = regexp.MustCompile(`\bhome\s+office\b`)
)

// inferTags assigns tags for projects from the combined
// multi-unit/commercial/mixed-use category page, where the legacy HTML gives
// no per-project category. Keyword heuristics over name + description,
// intentionally conservative; final tagging comes from the sheets.
func (m *Migrator) inferTags(name string, description []string) []string {
	hay := strings.ToLower(name + " " + strings.Join(description, " "))

	containsAny := func(keywords []string) bool {
		for _, k := range keywords {
			if strings.Contains(hay, k) {
				return true
			}
		}
		return false
	}

	isMulti := containsAny(m.Cfg.MultiUnitKeywords)
	isCommercial := containsAny(m.Cfg.CommercialKeywords)
	// "office" counts as commercial, but a home office does not.
	if !isCommercial && officeRe.MatchString(hay) && !homeOfficeRe.MatchString(hay) {
		isCommercial = true
	}
	isMixed := containsAny(m.Cfg.MixedUseKeywords)

	// A clear public/commercial program (museum, centre, park) outweighs the
	// broad multi-unit keywords unless strong housing terms are present.
	if containsAny(m.Cfg.PublicProgramKeywords) && !containsAny(m.Cfg.HousingKeywords) {
		isMulti = false
	}

	var tags []string
	if isMulti {
		tags = append(tags, "multi-unit")
	}
	if isCommercial {
		tags = append(tags, "commercial")
	}
	if isMixed {
		tags = append(tags, "mixed-use")
	}

	if len(tags) == 0 {
		// Pick one reasonable tag so filtering stays meaningful.
		for _, k := range []string{"burger", "dentist", "museum", "centre", "center"} {
			if strings.Contains(hay, k) {
				return []string{"commercial"}
			}
		}
		return []string{"multi-unit"}
	}
	return tags
}
