package handler

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// layoutName is the template every page executes; layouts/public.html
// defines it and pages fill in its blocks.
const layoutName = "public"

// TemplateRenderer is the rendering surface handlers depend on.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, r *http.Request, status int, name string, data any)
}

// Renderer manages template parsing and rendering with one isolated template
// set per page.
//
// Templates are organized as:
//   - layouts/public.html - the site layout
//   - components/*.html - reusable components
//   - pages/*.html - one file per page, rendered inside the layout
type Renderer struct {
	fsys   fs.FS
	logger *slog.Logger
	isDev  bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	// FS is rooted at the templates directory.
	FS     fs.FS
	Logger *slog.Logger

	// IsDev re-parses templates on every render so edits show up without a
	// restart. Pair it with os.DirFS.
	IsDev bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		fsys:   cfg.FS,
		logger: cfg.Logger,
		isDev:  cfg.IsDev,
	}

	templates, err := r.loadTemplates()
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

func (r *Renderer) loadTemplates() (map[string]*template.Template, error) {
	base, err := template.New(layoutName).Funcs(TemplateFuncs()).ParseFS(r.fsys, "layouts/public.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse public layout: %w", err)
	}

	components, err := fs.Glob(r.fsys, "components/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob components: %w", err)
	}
	if len(components) > 0 {
		if base, err = base.ParseFS(r.fsys, components...); err != nil {
			return nil, fmt.Errorf("failed to parse components: %w", err)
		}
	}

	pages, err := fs.Glob(r.fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob pages: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		pageTmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}

		if pageTmpl, err = pageTmpl.ParseFS(r.fsys, page); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		// Store as "home", "about", etc.
		templates[strings.TrimSuffix(path.Base(page), path.Ext(page))] = pageTmpl
	}

	r.logger.Debug("templates loaded", "count", len(templates))
	return templates, nil
}

// Reload re-parses all templates.
func (r *Renderer) Reload() error {
	templates, err := r.loadTemplates()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
	return nil
}

// Render renders the named page to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, layoutName, data)
}

// RenderHTML renders a page and returns the HTML as a string.
func (r *Renderer) RenderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page returns the named page as a templ.Component.
func (r *Renderer) Page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return r.Render(w, name, data)
	})
}

// RenderHTTP renders a page with the given status. The page is buffered
// before anything is written, so a template error still produces a clean 500.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	templ.Handler(r.Page(name, data),
		templ.WithStatus(status),
		templ.WithErrorHandler(func(req *http.Request, err error) http.Handler {
			r.logger.Error("template execution failed", "name", name, "error", err)
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, req)
}

// ListTemplates returns the loaded page names in sorted order.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
