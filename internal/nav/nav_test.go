package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activeLabels returns the labels of every active item.
func activeLabels(items []Item) []string {
	var out []string
	for _, it := range items {
		if it.Active {
			out = append(out, it.Label)
		}
	}
	return out
}

func TestBuild_ExactlyOneActive(t *testing.T) {
	paths := []string{"/", "", "/services", "/industries", "/about", "/contact", "/admin", "/nope", "/about/"}
	sections := []string{"", "hero", "services", "industries", "about", "contact", "unknown"}

	for _, p := range paths {
		for _, s := range sections {
			items := Build(p, s, Default.Links)
			assert.Len(t, activeLabels(items), 1, "path=%q section=%q", p, s)
		}
	}
}

func TestBuild_OffHome(t *testing.T) {
	tests := []struct {
		path    string
		section string
		want    string
	}{
		{"/services", "", "Services"},
		{"/industries", "", "Industries"},
		{"/about", "", "About"},
		{"/contact", "", "Contact"},
		{"/about", "services", "About"},
		{"/admin", "", "Home"},
		{"/about/", "", "Home"},
		{"/services/strategy", "", "Home"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := activeLabels(Build(tt.path, tt.section, Default.Links))
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestBuild_OnHome(t *testing.T) {
	tests := []struct {
		section string
		want    string
	}{
		{"", "Home"},
		{"services", "Services"},
		{"industries", "Industries"},
		{"about", "About"},
		{"contact", "Contact"},
		{"hero", "Home"},
		{"not-registered", "Home"},
	}

	for _, tt := range tests {
		t.Run("section="+tt.section, func(t *testing.T) {
			got := activeLabels(Build(HomePath, tt.section, Default.Links))
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestActiveIndex_IgnoresLinkOrder(t *testing.T) {
	reordered := []Link{
		{Label: "Contact", Href: "/contact", Section: "contact"},
		{Label: "About", Href: "/about", Section: "about"},
		{Label: "Home", Href: "/"},
	}

	assert.Equal(t, 2, ActiveIndex("/", "", reordered))
	assert.Equal(t, 1, ActiveIndex("/", "about", reordered))
	assert.Equal(t, 2, ActiveIndex("/pricing", "", reordered))
}

func TestActiveIndex_FallbackWithoutHomeLink(t *testing.T) {
	links := []Link{
		{Label: "Services", Href: "/services", Section: "services"},
		{Label: "About", Href: "/about", Section: "about"},
	}
	assert.Equal(t, 0, ActiveIndex("/missing", "", links))
	assert.Equal(t, -1, ActiveIndex("/", "", nil))

	_, ok := ActiveLink("/", "", nil)
	assert.False(t, ok)
}

func TestActiveIndex_SectionNeedsExplicitMapping(t *testing.T) {
	// href "/team" looks like section "team" but has no mapping.
	links := []Link{
		{Label: "Home", Href: "/"},
		{Label: "Team", Href: "/team"},
	}
	assert.Equal(t, 0, ActiveIndex("/", "team", links))
}

func TestConfig_SectionFor(t *testing.T) {
	for _, l := range Default.Links {
		if l.Href == HomePath {
			_, ok := Default.SectionFor(l.Href)
			assert.False(t, ok)
			continue
		}
		section, ok := Default.SectionFor(l.Href)
		require.True(t, ok, l.Href)
		assert.Contains(t, Default.Sections, section)
	}
}
