// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/timelesstours/tourcms/internal/middleware"
)

// Tours handles GET /content/tours?lang=.
func (h *Handler) Tours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.content.Tours(r.Context(), middleware.GetContentLanguage(r))
	respond(w, r, "tour", tours, err)
}

// TeamMembers handles GET /content/team-members.
func (h *Handler) TeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.content.TeamMembers(r.Context())
	respond(w, r, "team_member", members, err)
}

// Values handles GET /content/values.
func (h *Handler) Values(w http.ResponseWriter, r *http.Request) {
	values, err := h.content.Values(r.Context())
	respond(w, r, "company_value", values, err)
}

// Faqs handles GET /content/faq.
func (h *Handler) Faqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.content.Faqs(r.Context())
	respond(w, r, "faq", faqs, err)
}

// FaqTopics handles GET /content/faq-topics.
func (h *Handler) FaqTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.content.FaqTopics(r.Context())
	respond(w, r, "faq_topic", topics, err)
}

// HeroSlides handles GET /content/hero-slides.
func (h *Handler) HeroSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.content.HeroSlides(r.Context())
	respond(w, r, "hero_slide", slides, err)
}

// Navigation handles GET /content/navigation?lang=.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.Navigation(r.Context(), middleware.GetContentLanguage(r))
	respond(w, r, "navigation_item", items, err)
}

// Languages handles GET /content/languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.content.Languages(r.Context())
	respond(w, r, "language", languages, err)
}
