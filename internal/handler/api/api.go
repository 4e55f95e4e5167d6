// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the HTTP handlers of the content API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timelesstours/tourcms/internal/i18n"
	"github.com/timelesstours/tourcms/internal/middleware"
	"github.com/timelesstours/tourcms/internal/model"
)

// maxBodyBytes bounds request bodies. A page needs at most a few hundred keys.
const maxBodyBytes = 1 << 20

// Content is the content source the handlers read from.
type Content interface {
	Tours(ctx context.Context, lang string) ([]model.Tour, error)
	TeamMembers(ctx context.Context) ([]model.TeamMember, error)
	Values(ctx context.Context) ([]model.CompanyValue, error)
	Faqs(ctx context.Context) ([]model.Faq, error)
	FaqTopics(ctx context.Context) ([]model.FaqTopic, error)
	HeroSlides(ctx context.Context) ([]model.HeroSlide, error)
	Navigation(ctx context.Context, lang string) ([]model.NavigationItem, error)
	Languages(ctx context.Context) ([]model.Language, error)
	Texts(ctx context.Context, keys []string, lang string) (model.Texts, error)
	PageTexts(ctx context.Context, page, lang string) (model.Texts, error)
	Pages() []model.PageTexts
}

// Handler serves the content endpoints.
type Handler struct {
	content Content
}

// NewHandler creates a new API handler.
func NewHandler(content Content) *Handler {
	return &Handler{content: content}
}

// Routes registers the content endpoints on r, which is usually mounted
// at /content.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/tours", h.Tours)
	r.Get("/team-members", h.TeamMembers)
	r.Get("/values", h.Values)
	r.Get("/faq", h.Faqs)
	r.Get("/faq-topics", h.FaqTopics)
	r.Get("/hero-slides", h.HeroSlides)
	r.Get("/navigation", h.Navigation)
	r.Get("/languages", h.Languages)
	r.Post("/texts", h.Texts)
	r.Get("/pages", h.Pages)
	r.Get("/pages/{page}/texts", h.PageTexts)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, msgID string) {
	middleware.WriteError(w, r, http.StatusBadRequest, msgID)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, r *http.Request, msgID string) {
	middleware.WriteError(w, r, http.StatusNotFound, msgID)
}

// WriteInternalError writes a 500 response with a generic message.
func WriteInternalError(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, r, http.StatusInternalServerError, i18n.MsgInternalError)
}

// respond writes v, or logs err with the entity it concerns and answers 500.
func respond(w http.ResponseWriter, r *http.Request, entity string, v any, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load content",
			"entity", entity,
			"path", r.URL.Path,
			"error", err,
		)
		WriteInternalError(w, r)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}
