// Package handler contains HTTP handlers for the Future Forward site.
//
// This file implements the public JSON API: the service and industry lists
// and contact submissions.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/futureforward/internal/content"
	"github.com/DukeRupert/futureforward/internal/domain"
	"github.com/DukeRupert/futureforward/internal/metrics"
	"github.com/DukeRupert/futureforward/internal/service"
)

const (
	// catalogCacheControl lets shared caches keep list responses for an hour
	// and serve stale copies for a day while revalidating.
	catalogCacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"

	// maxContactBody bounds the JSON body accepted by POST /api/contact.
	maxContactBody = 64 << 10

	contactFailedMessage = "An error occurred. Please try again later."
	invalidBodyMessage   = "Invalid request body"
)

// ContactResponse is the envelope returned by POST /api/contact.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// =============================================================================
// Handler Configuration
// =============================================================================

// APIHandler serves the /api routes.
type APIHandler struct {
	catalog  *content.Catalog
	contacts service.ContactService
	logger   *slog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(catalog *content.Catalog, contacts service.ContactService, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		catalog:  catalog,
		contacts: contacts,
		logger:   logger,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the API routes.
//
// Routes:
// - GET  /api/services   -> Services
// - GET  /api/industries -> Industries
// - POST /api/contact    -> Contact (rate limited by limitContact)
//
// Anything else under /api/ gets a JSON 404, or a JSON 405 for a known path
// called with the wrong method.
func (h *APIHandler) RegisterRoutes(mux *http.ServeMux, limitContact func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/services", h.Services)
	mux.HandleFunc("GET /api/industries", h.Industries)
	mux.Handle("POST /api/contact", limitContact(http.HandlerFunc(h.Contact)))
	mux.HandleFunc("/api/", h.fallback)
}

// apiMethods lists the method each API path answers to.
var apiMethods = map[string]string{
	"/api/services":   http.MethodGet,
	"/api/industries": http.MethodGet,
	"/api/contact":    http.MethodPost,
}

func (h *APIHandler) fallback(w http.ResponseWriter, r *http.Request) {
	if method, ok := apiMethods[r.URL.Path]; ok {
		// GET routes also answer HEAD.
		if method == http.MethodGet {
			MethodNotAllowedResponse(w, r, h.logger, http.MethodGet, http.MethodHead)
			return
		}
		MethodNotAllowedResponse(w, r, h.logger, method)
		return
	}
	NotFoundResponse(w, r, h.logger)
}

// =============================================================================
// GET /api/services, GET /api/industries
// =============================================================================

// Services returns every service as a JSON array.
func (h *APIHandler) Services(w http.ResponseWriter, r *http.Request) {
	metrics.CatalogServed("services")
	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, h.catalog.Services())
}

// Industries returns every industry as a JSON array.
func (h *APIHandler) Industries(w http.ResponseWriter, r *http.Request) {
	metrics.CatalogServed("industries")
	w.Header().Set("Cache-Control", catalogCacheControl)
	writeJSON(w, http.StatusOK, h.catalog.Industries())
}

// =============================================================================
// POST /api/contact
// =============================================================================

// Contact accepts a JSON contact submission.
func (h *APIHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var sub domain.ContactSubmission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody))
	if err := dec.Decode(&sub); err != nil {
		h.logger.Info("contact body rejected", "error", err)
		metrics.ContactSubmission(metrics.ChannelAPI, metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, ContactResponse{Message: invalidBodyMessage})
		return
	}

	_, err := h.contacts.Submit(r.Context(), metrics.ChannelAPI, sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ContactResponse{Success: true, Message: domain.ContactThanks})
	case domain.ErrorCode(err) == domain.EINVALID:
		writeJSON(w, http.StatusBadRequest, ContactResponse{Message: domain.ErrorMessage(err)})
	case errors.Is(err, context.Canceled):
		// The caller went away; nobody is left to read a response.
		h.logger.Info("contact submission abandoned", "path", r.URL.Path)
	default:
		h.logger.Error("contact submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ContactResponse{Message: contactFailedMessage})
	}
}
