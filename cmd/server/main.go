package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/futureforward/internal"
	"github.com/DukeRupert/futureforward/internal/content"
	"github.com/DukeRupert/futureforward/internal/csrf"
	"github.com/DukeRupert/futureforward/internal/handler"
	"github.com/DukeRupert/futureforward/internal/metrics"
	"github.com/DukeRupert/futureforward/internal/middleware"
	"github.com/DukeRupert/futureforward/internal/service"
	"github.com/DukeRupert/futureforward/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Load site content
	catalog, err := content.Load()
	if err != nil {
		return fmt.Errorf("content load failed: %w", err)
	}
	logger.Info("Content loaded",
		"services", len(catalog.Services()),
		"industries", len(catalog.Industries()),
	)

	// In development templates and assets are read from disk so edits show up
	// without a rebuild.
	isDev := cfg.Env == "development"
	templatesFS, staticFS := web.Templates(), web.Static()
	if isDev {
		templatesFS, staticFS = os.DirFS("web/templates"), os.DirFS("web/static")
	}

	// Initialize template renderer
	renderer, err := handler.NewRenderer(handler.RendererConfig{
		FS:     templatesFS,
		Logger: logger,
		IsDev:  isDev,
	})
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize services
	contactService := service.NewContactService(service.ContactServiceConfig{
		Logger: logger,
		Delay:  cfg.ContactSubmitDelay,
	})

	// Initialize middleware
	isSecure := cfg.IsProduction()

	apiLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow, logger)
	defer apiLimiter.Close()
	formLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow, logger)
	defer formLimiter.Close()

	apiLimit := middleware.NewRateLimitMiddleware(apiLimiter, metrics.ChannelAPI, logger)
	formLimit := middleware.NewRateLimitMiddleware(formLimiter, metrics.ChannelForm, logger)
	csrfProtector := csrf.New(isSecure, logger)
	adminAuth := middleware.NewAdminAuthMiddleware(cfg.AdminUsername, cfg.AdminPasswordHash, logger)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)

	if !adminAuth.Enabled() {
		logger.Warn("ADMIN_PASSWORD_HASH not set, /admin is unprotected")
	}

	// Initialize handlers
	apiHandler := handler.NewAPIHandler(catalog, contactService, logger)
	pageHandler := handler.NewPageHandler(handler.PageHandlerConfig{
		Catalog:  catalog,
		Contacts: contactService,
		Renderer: renderer,
		Logger:   logger,
		Secure:   isSecure,
	})
	seoHandler := handler.NewSEOHandler(catalog, cfg.BaseURL, time.Now(), logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler(staticFS, isDev)))
	mux.Handle("GET /favicon.ico", http.RedirectHandler("/static/icons/logo.svg", http.StatusMovedPermanently))

	// Metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	// robots.txt, sitemap.xml, manifest, health
	seoHandler.RegisterRoutes(mux)

	// JSON API with CORS
	apiMux := http.NewServeMux()
	apiHandler.RegisterRoutes(apiMux, apiLimit.Limit)
	mux.Handle("/api/", middleware.APICORS(cfg.CORSAllowedOrigins)(apiMux))

	// Public pages and dashboard
	pageHandler.RegisterRoutes(mux, handler.PageMiddleware{
		CSRF:         csrfProtector.Handler,
		LimitContact: formLimit.Limit,
		RequireAdmin: adminAuth.Handler,
	})

	// Outermost first. Metrics wraps the mux directly so it can read the
	// matched pattern.
	stack := middleware.Stack(
		middleware.Recoverer(logger),
		middleware.RequestIDMiddleware,
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		middleware.NewSecurityHeadersMiddleware(isSecure).Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "base_url", cfg.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a failed listener
	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// staticHandler serves assets, with long-lived caching outside development.
func staticHandler(fsys fs.FS, isDev bool) http.Handler {
	files := http.FileServerFS(fsys)
	if isDev {
		return files
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		files.ServeHTTP(w, r)
	})
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
