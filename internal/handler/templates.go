package handler

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/DukeRupert/futureforward/internal/csrf"
	"github.com/DukeRupert/futureforward/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	titleCaser := cases.Title(language.English)

	return template.FuncMap{
		// Math functions
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},

		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 3:04 PM")
		},

		// String functions
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"title": func(v any) string {
			return titleCaser.String(fmt.Sprint(v))
		},
		"truncate": func(s string, length int) string {
			if utf8.RuneCountInString(s) <= length {
				return s
			}
			return string([]rune(s)[:length]) + "..."
		},
		"initials": initials,
		"heroWords": heroWords,

		// cx merges Tailwind class lists, later classes winning conflicts.
		"cx": func(classes ...string) string {
			return twmerge.Merge(classes...)
		},

		// Conditional/Logic functions
		"ternary": func(condition bool, trueVal, falseVal any) any {
			if condition {
				return trueVal
			}
			return falseVal
		},

		// Collection functions
		"list": func(items ...any) []any {
			return items
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil
				}
				dict[key] = values[i+1]
			}
			return dict
		},

		// Form helpers
		"csrfField": func(token string) template.HTML {
			return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s">`,
				csrf.FormFieldName, template.HTMLEscapeString(token)))
		},

		// Site helpers
		"icon":      iconSVG,
		"mapEmbed":  mapEmbedURL,
		"telHref":   telHref,
		"mailtoURL": func(email string) template.URL { return template.URL("mailto:" + url.PathEscape(email)) },
	}
}

// HeroWord is one word of a hero title.
type HeroWord struct {
	Text      string
	Highlight bool
}

// heroWords splits a title into words and highlights the middle one.
func heroWords(title string) []HeroWord {
	fields := strings.Fields(title)
	words := make([]HeroWord, len(fields))
	for i, f := range fields {
		words[i] = HeroWord{Text: f, Highlight: i == len(fields)/2}
	}
	return words
}

// initials returns up to two uppercase initials for a name.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, r)
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// mapEmbedURL returns the Google Maps embed URL for a location.
func mapEmbedURL(loc domain.Location) template.URL {
	q := strconv.FormatFloat(loc.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(loc.Lng, 'f', 4, 64)
	return template.URL("https://www.google.com/maps?q=" + url.QueryEscape(q) + "&output=embed")
}

// telHref keeps only the characters a tel: URI needs.
func telHref(phone string) template.URL {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return template.URL(b.String())
}
