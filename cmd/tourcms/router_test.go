// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelesstours/tourcms/internal/cache"
	"github.com/timelesstours/tourcms/internal/config"
	"github.com/timelesstours/tourcms/internal/handler"
	"github.com/timelesstours/tourcms/internal/service"
	"github.com/timelesstours/tourcms/internal/testutil"
	"github.com/timelesstours/tourcms/internal/version"
)

func newTestServer(t *testing.T, environ map[string]string) http.Handler {
	t.Helper()

	cfg, err := config.Parse(environ)
	require.NoError(t, err)

	db := testutil.SeededDB(t)
	contentCache := cache.NewContentCache(cache.NewSimpleMemoryCache(time.Minute), time.Minute)
	t.Cleanup(func() { _ = contentCache.Close() })

	svc := service.NewContentService(db, contentCache)
	health := handler.NewHealthHandler(db, contentCache, version.Current(), cfg.IsDevelopment())
	return newRouter(cfg, svc, health)
}

func serve(h http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Content(t *testing.T) {
	srv := newTestServer(t, map[string]string{"TOURCMS_ENV": "production"})

	w := serve(srv, http.MethodGet, "/content/tours?lang=es")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tours []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tours))
	assert.NotEmpty(t, tours)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRouter_TextsAreNotCachedByClients(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	req := httptest.NewRequest(http.MethodPost, "/content/texts", strings.NewReader(`{"keys":["navbar.home"],"lang":"zh"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"navbar.home":"首页"}`, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRouter_NotFound(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	for _, target := range []string{"/", "/admin", "/content/unknown"} {
		w := serve(srv, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String(), target)
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	for _, target := range []string{"/health", "/health/live", "/health/ready"} {
		w := serve(srv, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestRouter_HealthDetailsOnlyInDevelopment(t *testing.T) {
	prod := newTestServer(t, map[string]string{"TOURCMS_ENV": "production"})
	w := serve(prod, http.MethodGet, "/health?verbose=true")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"system"`)
	assert.NotContains(t, w.Body.String(), `"stats"`)
	assert.NotContains(t, w.Body.String(), `"latency"`)

	dev := newTestServer(t, map[string]string{})
	w = serve(dev, http.MethodGet, "/health?verbose=true")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"system"`)
}

func TestRouter_HeadRequests(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	w := serve(srv, http.MethodHead, "/content/languages")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Compression(t *testing.T) {
	srv := newTestServer(t, map[string]string{})

	w := serve(srv, http.MethodGet, "/content/faq", "Accept-Encoding", "gzip")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRouter_CORS(t *testing.T) {
	srv := newTestServer(t, map[string]string{"TOURCMS_CORS_ORIGINS": "https://timelesstours.example"})

	w := serve(srv, http.MethodGet, "/content/languages", "Origin", "https://timelesstours.example")
	assert.Equal(t, "https://timelesstours.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(srv, http.MethodGet, "/content/languages", "Origin", "https://elsewhere.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"TOURCMS_RATE_LIMIT_RPS":   "0.1",
		"TOURCMS_RATE_LIMIT_BURST": "2",
	})

	for range 2 {
		w := serve(srv, http.MethodGet, "/content/hero-slides")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(srv, http.MethodGet, "/content/hero-slides?lang=es")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Demasiadas solicitudes, inténtelo de nuevo más tarde"}`, w.Body.String())

	// health endpoints are not limited
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/health/live").Code)
}
