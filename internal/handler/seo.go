// Package handler contains HTTP handlers for the Future Forward site.
//
// This file implements the crawler and install surfaces: robots.txt,
// sitemap.xml, the web app manifest and the health check.
package handler

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DukeRupert/futureforward/internal/content"
	"github.com/DukeRupert/futureforward/internal/nav"
)

// =============================================================================
// Response Types
// =============================================================================

// Manifest is the web app manifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

type ManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// =============================================================================
// Handler Configuration
// =============================================================================

// SEOHandler serves robots.txt, sitemap.xml, the manifest and /health.
type SEOHandler struct {
	catalog  *content.Catalog
	baseURL  string
	links    []nav.Link
	modified time.Time
	logger   *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. baseURL is the public origin, without
// a trailing slash. modified is reported as each page's last modification.
func NewSEOHandler(catalog *content.Catalog, baseURL string, modified time.Time, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		catalog:  catalog,
		baseURL:  strings.TrimRight(baseURL, "/"),
		links:    nav.Default.Links,
		modified: modified,
		logger:   logger,
	}
}

// RegisterRoutes registers the SEO routes.
//
// Routes:
// - GET /robots.txt           -> Robots
// - GET /sitemap.xml          -> Sitemap
// - GET /manifest.webmanifest -> Manifest
// - GET /health               -> Health
func (h *SEOHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /robots.txt", h.Robots)
	mux.HandleFunc("GET /sitemap.xml", h.Sitemap)
	mux.HandleFunc("GET /manifest.webmanifest", h.Manifest)
	mux.HandleFunc("GET /health", h.Health)
}

// Robots allows everything except the dashboard and the API.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}

// Sitemap lists the public pages in navigation order.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, l := range h.links {
		u := sitemapURL{
			Loc:        h.baseURL + l.Href,
			ChangeFreq: "monthly",
			Priority:   0.8,
		}
		if l.Href == nav.HomePath {
			u.ChangeFreq, u.Priority = "weekly", 1.0
		}
		if !h.modified.IsZero() {
			u.LastMod = h.modified.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// Manifest serves the web app manifest.
func (h *SEOHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	company := h.catalog.Company()
	m := Manifest{
		Name:            company.Name,
		ShortName:       company.Short,
		Description:     company.Tagline + " - Expert business consulting services",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#004aad",
		Icons: []ManifestIcon{
			{Src: "/static/icons/logo.svg", Sizes: "192x192", Type: "image/svg+xml"},
			{Src: "/static/icons/logo.svg", Sizes: "512x512", Type: "image/svg+xml"},
		},
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Type", "application/manifest+json")
	w.WriteHeader(http.StatusOK)
	writeJSONBody(w, m)
}

// Health reports that the process is serving.
func (h *SEOHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
