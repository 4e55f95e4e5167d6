// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/timelesstours/tourcms/internal/i18n"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

// Context keys for language data.
const (
	ContextKeyContentLanguage ContextKey = "content_language"
	ContextKeyMessageLanguage ContextKey = "message_language"
)

// ContentLanguage stores the languages of a request in its context.
//
// The content language is the ?lang= query parameter exactly as sent; content
// resolution decides what to do with unknown codes. The message language, used
// for error texts, is the best supported match for ?lang= or, without one, for
// the Accept-Language header.
func ContentLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := strings.TrimSpace(r.URL.Query().Get("lang"))

		msgLang := i18n.DefaultLanguage
		switch {
		case lang != "":
			msgLang = i18n.MatchLanguage(lang)
		case r.Header.Get("Accept-Language") != "":
			msgLang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
		}

		ctx := context.WithValue(r.Context(), ContextKeyContentLanguage, lang)
		ctx = context.WithValue(ctx, ContextKeyMessageLanguage, msgLang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetContentLanguage returns the requested content language, which is empty
// when the request did not name one.
func GetContentLanguage(r *http.Request) string {
	lang, _ := r.Context().Value(ContextKeyContentLanguage).(string)
	return lang
}

// GetMessageLanguage returns the language of error messages for r. Requests
// that did not pass through ContentLanguage are matched on Accept-Language.
func GetMessageLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyMessageLanguage).(string); ok {
		return lang
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}
	return i18n.DefaultLanguage
}
