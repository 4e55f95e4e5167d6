// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timelesstours/tourcms/internal/i18n"
	"github.com/timelesstours/tourcms/internal/middleware"
	"github.com/timelesstours/tourcms/internal/service"
)

// TextsRequest is the body of POST /content/texts.
type TextsRequest struct {
	Keys []string `json:"keys"`
	Lang string   `json:"lang,omitempty"`
}

// Texts handles POST /content/texts. Keys that resolve in neither the
// requested nor the default language are left out of the response.
func (h *Handler) Texts(w http.ResponseWriter, r *http.Request) {
	var req TextsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, r, i18n.MsgInvalidBody)
		return
	}
	if len(req.Keys) == 0 {
		WriteBadRequest(w, r, i18n.MsgKeysRequired)
		return
	}

	lang := req.Lang
	if lang == "" {
		lang = middleware.GetContentLanguage(r)
	}

	texts, err := h.content.Texts(r.Context(), req.Keys, lang)
	switch {
	case errors.Is(err, service.ErrKeysRequired):
		WriteBadRequest(w, r, i18n.MsgKeysRequired)
		return
	case errors.Is(err, service.ErrTooManyKeys):
		WriteBadRequest(w, r, i18n.MsgTooManyKeys)
		return
	}
	respond(w, r, "localizable_text", texts, err)
}

// PageTexts handles GET /content/pages/{page}/texts?lang=.
func (h *Handler) PageTexts(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")

	texts, err := h.content.PageTexts(r.Context(), page, middleware.GetContentLanguage(r))
	if errors.Is(err, service.ErrUnknownPage) {
		WriteNotFound(w, r, i18n.MsgPageNotFound)
		return
	}
	respond(w, r, "localizable_text", texts, err)
}

// Pages handles GET /content/pages.
func (h *Handler) Pages(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, h.content.Pages())
}

// decodeJSON decodes a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
