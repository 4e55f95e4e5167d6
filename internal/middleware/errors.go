// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the content API.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/timelesstours/tourcms/internal/i18n"
)

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error whose message is msgID translated into the
// request's message language.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, msgID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: i18n.T(GetMessageLanguage(r), msgID),
	})
}

// NotFound is a router NotFound handler with a JSON body.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, i18n.MsgNotFound)
}

// MethodNotAllowed is a router MethodNotAllowed handler with a JSON body.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, i18n.MsgMethodNotAllowed)
}
