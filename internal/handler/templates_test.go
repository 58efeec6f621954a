package handler

import (
	"strings"
	"testing"

	"github.com/DukeRupert/futureforward/internal/domain"
)

func TestHeroWords_HighlightsMiddleWord(t *testing.T) {
	words := heroWords("Transforming Businesses Shaping Futures")
	if len(words) != 4 {
		t.Fatalf("got %d words", len(words))
	}
	for i, w := range words {
		if w.Highlight != (i == 2) {
			t.Errorf("word %d (%s) highlight = %v", i, w.Text, w.Highlight)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Sarah Johnson":     "SJ",
		"amara n. okafor":   "AN",
		"Prince":            "P",
		"":                  "",
		"Émile Zola Dupont": "ÉZ",
	}
	for in, want := range tests {
		if got := initials(in); got != want {
			t.Errorf("initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTelHref(t *testing.T) {
	if got := telHref("+1 (555) 123-4567"); got != "tel:+15551234567" {
		t.Errorf("telHref = %q", got)
	}
}

func TestMapEmbedURL(t *testing.T) {
	got := string(mapEmbedURL(domain.Location{Lat: 40.7128, Lng: -74.006}))
	if !strings.HasPrefix(got, "https://www.google.com/maps?q=40.7128%2C-74.0060") || !strings.HasSuffix(got, "&output=embed") {
		t.Errorf("mapEmbedURL = %q", got)
	}
}

func TestIconSVG_FallsBack(t *testing.T) {
	known := string(iconSVG("mail", "icon"))
	unknown := string(iconSVG("no-such-icon", "icon"))
	if !strings.Contains(unknown, iconPaths["sparkles"]) {
		t.Error("unknown icon should render sparkles")
	}
	if !strings.Contains(known, iconPaths["mail"]) || !strings.Contains(known, `class="icon"`) {
		t.Errorf("mail icon = %s", known)
	}
}

func TestCx_LaterClassWins(t *testing.T) {
	cx := TemplateFuncs()["cx"].(func(...string) string)
	if got := cx("px-2 text-gray-700", "text-primary"); got != "px-2 text-primary" {
		t.Errorf("cx = %q", got)
	}
}
