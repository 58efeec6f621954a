// Package handler contains HTTP handlers for the Future Forward site.
//
// This file implements the server-rendered pages: home, about, services,
// industries, contact, the admin dashboard and the theme toggle.
package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/futureforward/internal/content"
	"github.com/DukeRupert/futureforward/internal/csrf"
	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/DukeRupert/futureforward/internal/metrics"
	"github.com/DukeRupert/futureforward/internal/nav"
	"github.com/DukeRupert/futureforward/internal/service"
)

// ThemeCookieName holds the visitor's colour scheme.
const ThemeCookieName = "theme"

const (
	themeCookieMaxAge = 365 * 24 * 60 * 60

	// flashDismissMillis is how long a flash banner stays on screen.
	flashDismissMillis = 5000

	// adminRecentContacts bounds the contacts tab.
	adminRecentContacts = 20
)

// =============================================================================
// Template Data Types
// =============================================================================

// Flash is a one-shot banner shown above page content.
type Flash struct {
	Type    string // "success" or "error"
	Message string
}

// DismissAfter is the banner lifetime in milliseconds.
func (f *Flash) DismissAfter() int { return flashDismissMillis }

// LayoutData is shared by every page rendered inside the public layout.
type LayoutData struct {
	Title       string
	Description string
	CurrentPath string
	Nav         []nav.Item
	Theme       nav.Theme
	Company     domain.Company
	CSRFToken   string
	Flash       *Flash
}

// ContactForm carries the contact form's values and field errors.
type ContactForm struct {
	Values domain.ContactSubmission
	Errors map[string]string
}

// HomePageData contains data for the single-page home route.
type HomePageData struct {
	LayoutData
	Achievements []domain.Achievement
	Services     []domain.Service
	Industries   []domain.Industry
	About        template.HTML
	Form         ContactForm
}

// AboutPageData contains data for the about page.
type AboutPageData struct {
	LayoutData
	Mission      template.HTML
	Vision       template.HTML
	Values       template.HTML
	Achievements []domain.Achievement
	Milestones   []domain.Milestone
	Team         []domain.TeamMember
}

// CatalogPageData contains data for the services and industries pages.
type CatalogPageData struct {
	LayoutData
	Services   []domain.Service
	Industries []domain.Industry
}

// ContactPageData contains data for the contact page.
type ContactPageData struct {
	LayoutData
	Form ContactForm
}

// AdminTab is a dashboard tab.
type AdminTab struct {
	ID     string
	Label  string
	Icon   string
	Active bool
}

// AdminStat is a headline figure on the dashboard overview.
type AdminStat struct {
	Label string
	Value string
	Icon  string
}

// AdminPageData contains data for the admin dashboard.
type AdminPageData struct {
	LayoutData
	Tab        string
	Tabs       []AdminTab
	Stats      []AdminStat
	Services   []domain.Service
	Industries []domain.Industry
	Contacts   []domain.ContactReceipt
}

// ErrorPageData contains data for error pages.
type ErrorPageData struct {
	LayoutData
	Status  int
	Heading string
	Message string
}

var adminTabs = []AdminTab{
	{ID: "overview", Label: "Overview", Icon: "dashboard"},
	{ID: "services", Label: "Services", Icon: "settings"},
	{ID: "industries", Label: "Industries", Icon: "building"},
	{ID: "contacts", Label: "Contacts", Icon: "mail"},
}

// =============================================================================
// Handler Configuration
// =============================================================================

// PageHandler renders the public site and the admin dashboard.
type PageHandler struct {
	catalog  *content.Catalog
	contacts service.ContactService
	renderer TemplateRenderer
	nav      nav.Config
	secure   bool
	logger   *slog.Logger
}

// PageHandlerConfig holds the dependencies of a PageHandler.
type PageHandlerConfig struct {
	Catalog  *content.Catalog
	Contacts service.ContactService
	Renderer TemplateRenderer
	Logger   *slog.Logger

	// Secure marks the theme cookie Secure.
	Secure bool
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(cfg PageHandlerConfig) *PageHandler {
	return &PageHandler{
		catalog:  cfg.Catalog,
		contacts: cfg.Contacts,
		renderer: cfg.Renderer,
		nav:      nav.Default,
		secure:   cfg.Secure,
		logger:   cfg.Logger,
	}
}

// PageMiddleware wraps page routes.
type PageMiddleware struct {
	// CSRF issues the form token and rejects forged posts.
	CSRF func(http.Handler) http.Handler
	// LimitContact throttles contact form posts.
	LimitContact func(http.Handler) http.Handler
	// RequireAdmin guards the dashboard.
	RequireAdmin func(http.Handler) http.Handler
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the page routes.
//
// Routes:
// - GET  /           -> Home
// - GET  /about      -> About
// - GET  /services   -> Services
// - GET  /industries -> Industries
// - GET  /contact    -> Contact
// - POST /contact    -> SubmitContact (rate limited)
// - GET  /admin      -> Admin (auth when configured)
// - POST /theme      -> ToggleTheme
// - /                -> NotFound for anything else
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux, mw PageMiddleware) {
	page := func(fn http.HandlerFunc) http.Handler { return mw.CSRF(fn) }

	mux.Handle("GET /{$}", page(h.Home))
	mux.Handle("GET /about", page(h.About))
	mux.Handle("GET /services", page(h.Services))
	mux.Handle("GET /industries", page(h.Industries))
	mux.Handle("GET /contact", page(h.Contact))
	mux.Handle("POST /contact", mw.CSRF(mw.LimitContact(http.HandlerFunc(h.SubmitContact))))
	mux.Handle("GET /admin", mw.RequireAdmin(page(h.Admin)))
	mux.Handle("POST /theme", page(h.ToggleTheme))

	// Unknown paths only get a form token on reads; a stray POST is a 404,
	// not a CSRF failure.
	notFound := page(h.NotFound)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			notFound.ServeHTTP(w, r)
			return
		}
		h.NotFound(w, r)
	})
}

// layout builds the data shared by every page.
func (h *PageHandler) layout(r *http.Request, title, description string) LayoutData {
	company := h.catalog.Company()
	if description == "" {
		description = company.Tagline
	}
	// Pages render before any scroll event, so no section is active yet.
	session := h.navSession(r)
	return LayoutData{
		Title:       title,
		Description: description,
		CurrentPath: r.URL.Path,
		Nav:         session.Items(),
		Theme:       session.State().Theme,
		Company:     company,
		CSRFToken:   csrf.Token(r.Context()),
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	metrics.PageView(name)
	h.renderer.RenderHTTP(w, r, status, name, data)
}

// =============================================================================
// Public Pages
// =============================================================================

// Home renders the single-page landing route.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomePageData{
		LayoutData:   h.layout(r, "Future Forward Research & Business Consultancy", ""),
		Achievements: h.catalog.Achievements(),
		Services:     h.catalog.Services(),
		Industries:   h.catalog.Industries(),
		About:        h.catalog.Block(content.BlockAbout),
	}
	h.render(w, r, http.StatusOK, "home", data)
}

// About renders the company story, timeline and team.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	data := AboutPageData{
		LayoutData:   h.layout(r, "About Us", "Our mission, our story and the team behind Future Forward."),
		Mission:      h.catalog.Block(content.BlockMission),
		Vision:       h.catalog.Block(content.BlockVision),
		Values:       h.catalog.Block(content.BlockValues),
		Achievements: h.catalog.Achievements(),
		Milestones:   h.catalog.Milestones(),
		Team:         h.catalog.Team(),
	}
	h.render(w, r, http.StatusOK, "about", data)
}

// Services renders the full service catalog.
func (h *PageHandler) Services(w http.ResponseWriter, r *http.Request) {
	data := CatalogPageData{
		LayoutData: h.layout(r, "Our Services", "Comprehensive consulting solutions tailored to your business needs."),
		Services:   h.catalog.Services(),
	}
	h.render(w, r, http.StatusOK, "services", data)
}

// Industries renders the industries served with their solutions and case studies.
func (h *PageHandler) Industries(w http.ResponseWriter, r *http.Request) {
	data := CatalogPageData{
		LayoutData: h.layout(r, "Industries We Serve", "Specialized expertise across diverse sectors."),
		Industries: h.catalog.Industries(),
	}
	h.render(w, r, http.StatusOK, "industries", data)
}

// Contact renders the company details and an empty contact form.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, ContactForm{}, nil)
}

// SubmitContact handles the server-rendered contact form.
func (h *PageHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Info("contact form parse failed", "error", err)
		h.renderContact(w, r, http.StatusBadRequest, ContactForm{}, &Flash{Type: "error", Message: invalidBodyMessage})
		return
	}

	sub := domain.ContactSubmission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}

	_, err := h.contacts.Submit(r.Context(), metrics.ChannelForm, sub)
	if err == nil {
		h.renderContact(w, r, http.StatusOK, ContactForm{}, &Flash{Type: "success", Message: domain.ContactThanks})
		return
	}

	form := ContactForm{Values: sub}
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		form.Errors = ve.Fields
		h.renderContact(w, r, http.StatusUnprocessableEntity, form, nil)
	case domain.ErrorCode(err) == domain.EINVALID:
		h.renderContact(w, r, http.StatusUnprocessableEntity, form, &Flash{Type: "error", Message: domain.ErrorMessage(err)})
	default:
		h.logger.Error("contact form submission failed", "error", err)
		h.renderContact(w, r, http.StatusInternalServerError, form, &Flash{Type: "error", Message: contactFailedMessage})
	}
}

func (h *PageHandler) renderContact(w http.ResponseWriter, r *http.Request, status int, form ContactForm, flash *Flash) {
	data := ContactPageData{
		LayoutData: h.layout(r, "Contact Us", "Get in touch to discuss how we can help your business."),
		Form:       form,
	}
	data.Flash = flash
	h.render(w, r, status, "contact", data)
}

// =============================================================================
// GET /admin - Dashboard
// =============================================================================

// Admin renders the dashboard tab selected by ?tab=, defaulting to overview.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if !slices.ContainsFunc(adminTabs, func(t AdminTab) bool { return t.ID == tab }) {
		tab = adminTabs[0].ID
	}

	tabs := make([]AdminTab, len(adminTabs))
	for i, t := range adminTabs {
		t.Active = t.ID == tab
		tabs[i] = t
	}

	services := h.catalog.Services()
	industries := h.catalog.Industries()
	contacts := h.contacts.Recent(adminRecentContacts)

	stats := make([]AdminStat, 0, 6)
	for _, a := range h.catalog.Achievements() {
		if a.Label == "Clients Served" || a.Label == "Projects Completed" {
			stats = append(stats, AdminStat{Label: a.Label, Value: strconv.Itoa(a.Value) + a.Suffix, Icon: "users"})
		}
	}
	stats = append(stats,
		AdminStat{Label: "Services", Value: strconv.Itoa(len(services)), Icon: "settings"},
		AdminStat{Label: "Industries", Value: strconv.Itoa(len(industries)), Icon: "building"},
		AdminStat{Label: "Recent Contacts", Value: strconv.Itoa(len(contacts)), Icon: "mail"},
	)

	data := AdminPageData{
		LayoutData: h.layout(r, "Admin Dashboard", "Manage your business consultancy platform"),
		Tab:        tab,
		Tabs:       tabs,
		Stats:      stats,
		Services:   services,
		Industries: industries,
		Contacts:   contacts,
	}
	h.render(w, r, http.StatusOK, "admin", data)
}

// =============================================================================
// POST /theme - Theme Toggle
// =============================================================================

// ToggleTheme flips the theme cookie and returns to the referring page.
func (h *PageHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	session := h.navSession(r)
	session.ToggleTheme()
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookieName,
		Value:    string(session.State().Theme),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		Expires:  time.Now().Add(themeCookieMaxAge * time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, refererPath(r), http.StatusSeeOther)
}

// navSession starts a navigation session for the request path and theme cookie.
func (h *PageHandler) navSession(r *http.Request) *nav.Synchronizer {
	return nav.NewSynchronizer(h.nav, r.URL.Path, themeFromRequest(r))
}

func themeFromRequest(r *http.Request) nav.Theme {
	c, err := r.Cookie(ThemeCookieName)
	if err != nil {
		return nav.ThemeLight
	}
	return nav.ParseTheme(c.Value)
}

// refererPath returns the path of a same-site Referer, or "/".
func refererPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "/"
	}
	if u.Host != "" && !strings.EqualFold(u.Host, r.Host) {
		return "/"
	}
	target := u.RequestURI()
	if !isSafeRedirectURL(target) {
		return "/"
	}
	return target
}

// isSafeRedirectURL reports whether rawURL is a local absolute path.
func isSafeRedirectURL(rawURL string) bool {
	// Must start with / but not // (protocol-relative URL)
	if !strings.HasPrefix(rawURL, "/") || strings.HasPrefix(rawURL, "//") {
		return false
	}
	// Browsers treat a backslash like a slash.
	if strings.HasPrefix(rawURL, "/\\") {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}

// =============================================================================
// Not Found
// =============================================================================

// NotFound renders the 404 page, or a JSON error for API-style requests.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if acceptsJSON(r) {
		NotFoundResponse(w, r, h.logger)
		return
	}
	data := ErrorPageData{
		LayoutData: h.layout(r, "Page Not Found", ""),
		Status:     http.StatusNotFound,
		Heading:    "Page not found",
		Message:    "The page you are looking for does not exist or has moved.",
	}
	h.render(w, r, http.StatusNotFound, "error", data)
}
