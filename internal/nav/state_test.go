package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// homeLayout stacks the tracked sections 800px apart starting at 0.
func homeLayout() Layout {
	return Layout{
		"hero":       {Top: 0, Height: 800},
		"services":   {Top: 800, Height: 800},
		"industries": {Top: 1600, Height: 800},
		"about":      {Top: 2400, Height: 800},
		"contact":    {Top: 3200, Height: 800},
	}
}

func TestDetectSection(t *testing.T) {
	bounds := []Bounds{
		{ID: "services", Top: 800, Height: 800},
		{ID: "industries", Top: 1600, Height: 800},
	}

	tests := []struct {
		name   string
		offset float64
		want   string
	}{
		{"above all sections", 0, ""},
		{"lookahead reaches services top", 700, "services"},
		{"just short of lookahead", 699, ""},
		{"inside services", 1000, "services"},
		{"bottom boundary is exclusive", 1500, "industries"},
		{"below all sections", 2400, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSection(tt.offset, bounds))
		})
	}
}

func TestDetectSection_LastQualifyingWins(t *testing.T) {
	overlapping := []Bounds{
		{ID: "outer", Top: 0, Height: 1000},
		{ID: "inner", Top: 100, Height: 200},
	}
	assert.Equal(t, "inner", DetectSection(50, overlapping))
	assert.Equal(t, "outer", DetectSection(500, overlapping))
}

func TestDetectSection_Idempotent(t *testing.T) {
	bounds := []Bounds{{ID: "services", Top: 800, Height: 800}}
	first := DetectSection(900, bounds)
	second := DetectSection(900, bounds)
	assert.Equal(t, first, second)
}

func TestSynchronizer_ScrollThenNavigate(t *testing.T) {
	s := NewSynchronizer(Default, "/", ThemeLight)

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "Home", active.Label)

	// Industries top minus 50px: inside the 100px lookahead.
	s.Scroll(1600-50, homeLayout())
	assert.Equal(t, "industries", s.State().ActiveSection)
	active, _ = s.Active()
	assert.Equal(t, "Industries", active.Label)

	s.Navigate("/about")
	assert.Empty(t, s.State().ActiveSection)
	active, _ = s.Active()
	assert.Equal(t, "About", active.Label)
}

func TestSynchronizer_HeroFallsBackToHome(t *testing.T) {
	s := NewSynchronizer(Default, "/", ThemeLight)
	s.Scroll(200, homeLayout())

	assert.Equal(t, "hero", s.State().ActiveSection)
	active, _ := s.Active()
	assert.Equal(t, "Home", active.Label)
}

func TestSynchronizer_ScrollIgnoredOffHome(t *testing.T) {
	s := NewSynchronizer(Default, "/services", ThemeLight)
	s.Scroll(2500, homeLayout())

	assert.Empty(t, s.State().ActiveSection)
	active, _ := s.Active()
	assert.Equal(t, "Services", active.Label)
}

func TestSynchronizer_UnrenderedSectionsSkipped(t *testing.T) {
	s := NewSynchronizer(Default, "/", ThemeLight)
	layout := homeLayout()
	delete(layout, "about")

	s.Scroll(2500, layout)
	assert.Empty(t, s.State().ActiveSection)
	active, _ := s.Active()
	assert.Equal(t, "Home", active.Label)
}

func TestSynchronizer_ReturnHomeStartsAtTop(t *testing.T) {
	s := NewSynchronizer(Default, "/", ThemeLight)
	s.Scroll(900, homeLayout())
	s.Navigate("/contact")
	s.Navigate("/")

	assert.Empty(t, s.State().ActiveSection)
	active, _ := s.Active()
	assert.Equal(t, "Home", active.Label)
}

func TestSynchronizer_MenuAndTheme(t *testing.T) {
	s := NewSynchronizer(Default, "", Theme("bogus"))
	assert.Equal(t, HomePath, s.State().CurrentPath)
	assert.Equal(t, ThemeLight, s.State().Theme)

	s.ToggleMenu()
	assert.True(t, s.State().MobileMenuOpen)

	s.Navigate("/services")
	assert.False(t, s.State().MobileMenuOpen, "route change closes the menu")

	s.ToggleMenu()
	s.CloseMenu()
	assert.False(t, s.State().MobileMenuOpen)

	s.ToggleTheme()
	assert.Equal(t, ThemeDark, s.State().Theme)
	s.ToggleTheme()
	assert.Equal(t, ThemeLight, s.State().Theme)
}

func TestSynchronizer_ItemsHaveOneActive(t *testing.T) {
	s := NewSynchronizer(Default, "/", ThemeDark)
	for offset := 0.0; offset < 4200; offset += 37 {
		s.Scroll(offset, homeLayout())
		assert.Len(t, activeLabels(s.Items()), 1, "offset=%v", offset)
	}
}
