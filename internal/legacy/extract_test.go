package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyPathForID(t *testing.T) {
	assert.Equal(t, "Projects/CustomResidential/cr10.html", LegacyPathForID("cr10"))
	assert.Equal(t, "Projects/MultiUnit-Commercial-MixedUse/muc03.html", LegacyPathForID("muc03"))
	assert.Equal(t, "Projects/ArtInstallation/ai01.html", LegacyPathForID("ai01"))
	assert.Equal(t, "", LegacyPathForID("xyz"))
	assert.Equal(t, "", LegacyPathForID(""))
}

func TestExtractContent(t *testing.T) {
	location, paragraphs := extractContent(detailPage)
	assert.Equal(t, "Vancouver, BC", location)
	assert.Equal(t, []string{"A compact infill home.", "Two volumes under one roof."}, paragraphs)

	location, paragraphs = extractContent("<html><body><p>no container</p></body></html>")
	assert.Equal(t, "", location)
	assert.Empty(t, paragraphs)
}
