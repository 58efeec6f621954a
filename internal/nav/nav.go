// Package nav decides which top-level navigation link is active.
//
// On any page other than home the link whose href equals the current path is
// active. On the single-page home route the active link follows the section
// currently scrolled into view. Whatever the inputs, exactly one link ends up
// active: when no rule matches, Home is used.
package nav

// HomePath is the single-page home route.
const HomePath = "/"

// Lookahead is added to the scroll offset before testing section bounds so a
// section counts as current slightly before its top reaches the fixed header.
const Lookahead = 100

// Link is a top-level navigation entry. Section is the id of the home-page
// section the link corresponds to; it is empty for Home.
type Link struct {
	Label   string
	Href    string
	Section string
}

// Config pairs the ordered links with the section ids tracked on the home
// page. Keeping the href-to-section mapping on the Link itself means the two
// cannot drift apart.
type Config struct {
	Links    []Link
	Sections []string
}

// Default is the site navigation. Order is display order only.
var Default = Config{
	Links: []Link{
		{Label: "Home", Href: "/"},
		{Label: "Services", Href: "/services", Section: "services"},
		{Label: "Industries", Href: "/industries", Section: "industries"},
		{Label: "About", Href: "/about", Section: "about"},
		{Label: "Contact", Href: "/contact", Section: "contact"},
	},
	Sections: []string{"hero", "services", "industries", "about", "contact"},
}

// SectionFor returns the home-page section id mapped to href.
func (c Config) SectionFor(href string) (string, bool) {
	for _, l := range c.Links {
		if l.Href == href && l.Section != "" {
			return l.Section, true
		}
	}
	return "", false
}

// Item is a rendered navigation entry.
type Item struct {
	Label   string
	Href    string
	Section string
	Active  bool
}

// ActiveIndex returns the index of the single active link, or -1 when links
// is empty. The fallback is applied only after every link has been checked.
func ActiveIndex(currentPath, activeSection string, links []Link) int {
	if currentPath == "" {
		currentPath = HomePath
	}
	for i, l := range links {
		if matches(l, currentPath, activeSection) {
			return i
		}
	}
	return fallbackIndex(links)
}

// ActiveLink returns the active link. ok is false only when links is empty.
func ActiveLink(currentPath, activeSection string, links []Link) (Link, bool) {
	i := ActiveIndex(currentPath, activeSection, links)
	if i < 0 {
		return Link{}, false
	}
	return links[i], true
}

// Build renders links with exactly one marked active.
func Build(currentPath, activeSection string, links []Link) []Item {
	active := ActiveIndex(currentPath, activeSection, links)
	items := make([]Item, len(links))
	for i, l := range links {
		items[i] = Item{
			Label:   l.Label,
			Href:    l.Href,
			Section: l.Section,
			Active:  i == active,
		}
	}
	return items
}

func matches(l Link, currentPath, activeSection string) bool {
	if currentPath != HomePath {
		return l.Href == currentPath
	}
	if l.Href == HomePath {
		return activeSection == ""
	}
	return l.Section != "" && l.Section == activeSection
}

// fallbackIndex picks Home, or the first link if the configuration has none.
func fallbackIndex(links []Link) int {
	for i, l := range links {
		if l.Href == HomePath {
			return i
		}
	}
	if len(links) > 0 {
		return 0
	}
	return -1
}
