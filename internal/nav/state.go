package nav

// Theme is the colour scheme selected by the visitor.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named by s, defaulting to light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is the navigation state of one page session.
// ActiveSection is only ever non-empty while CurrentPath is HomePath.
type State struct {
	CurrentPath    string
	ActiveSection  string
	MobileMenuOpen bool
	Theme          Theme
}

// Layout maps a section id to its measured bounds. Sections missing from the
// layout are treated as not yet rendered.
type Layout map[string]Bounds

// Synchronizer owns a State and keeps the active link in step with route
// changes and scroll events. The last event applied always wins.
//
// A Synchronizer has a single owner and is not safe for concurrent use.
type Synchronizer struct {
	cfg   Config
	state State
}

// NewSynchronizer starts a session at path.
func NewSynchronizer(cfg Config, path string, theme Theme) *Synchronizer {
	if path == "" {
		path = HomePath
	}
	return &Synchronizer{
		cfg:   cfg,
		state: State{CurrentPath: path, Theme: ParseTheme(string(theme))},
	}
}

// State returns a copy of the current state.
func (s *Synchronizer) State() State {
	return s.state
}

// Navigate applies a route change. The mobile menu closes on every route
// change and the section resets as soon as the route leaves home.
func (s *Synchronizer) Navigate(path string) {
	if path == "" {
		path = HomePath
	}
	s.state.CurrentPath = path
	s.state.MobileMenuOpen = false
	if path != HomePath {
		s.state.ActiveSection = ""
	}
}

// Scroll applies a scroll event. It is a no-op away from the home route.
func (s *Synchronizer) Scroll(offset float64, layout Layout) {
	if s.state.CurrentPath != HomePath {
		s.state.ActiveSection = ""
		return
	}
	s.state.ActiveSection = DetectSection(offset, s.tracked(layout))
}

// tracked orders the measured bounds by the configured section order.
func (s *Synchronizer) tracked(layout Layout) []Bounds {
	bounds := make([]Bounds, 0, len(s.cfg.Sections))
	for _, id := range s.cfg.Sections {
		b, ok := layout[id]
		if !ok {
			continue
		}
		b.ID = id
		bounds = append(bounds, b)
	}
	return bounds
}

func (s *Synchronizer) ToggleMenu() {
	s.state.MobileMenuOpen = !s.state.MobileMenuOpen
}

func (s *Synchronizer) CloseMenu() {
	s.state.MobileMenuOpen = false
}

func (s *Synchronizer) ToggleTheme() {
	s.state.Theme = s.state.Theme.Toggle()
}

// Active returns the link that is currently active.
func (s *Synchronizer) Active() (Link, bool) {
	return ActiveLink(s.state.CurrentPath, s.state.ActiveSection, s.cfg.Links)
}

// Items renders the configured links for the current state.
func (s *Synchronizer) Items() []Item {
	return Build(s.state.CurrentPath, s.state.ActiveSection, s.cfg.Links)
}
