// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/timelesstours/tourcms/internal/cache"
	"github.com/timelesstours/tourcms/internal/testutil"
	"github.com/timelesstours/tourcms/internal/version"
)

// downCache is a memory cache whose connection check always fails.
type downCache struct {
	*cache.MemoryCache
}

func (downCache) Ping(context.Context) error {
	return errors.New("connection refused")
}

func newTestHealthHandler(t *testing.T, backend cache.Cacher) *HealthHandler {
	t.Helper()

	var contentCache *cache.ContentCache
	if backend != nil {
		contentCache = cache.NewContentCache(backend, time.Minute)
		t.Cleanup(func() { _ = contentCache.Close() })
	}
	return NewHealthHandler(testutil.TestDB(t), contentCache, version.Info{Version: "v1.2.3"}, true)
}

func getHealth(t *testing.T, h *HealthHandler, target string) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want application/json", ct)
	}

	var resp HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return w, resp
}

func TestHealthHandler_Health(t *testing.T) {
	handler := newTestHealthHandler(t, cache.NewSimpleMemoryCache(time.Minute))

	w, resp := getHealth(t, handler, "/health")

	if w.Code != http.StatusOK {
		t.Errorf("status code = %d; want %d", w.Code, http.StatusOK)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("status = %q; want healthy", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("version = %q; want v1.2.3", resp.Version)
	}
	if resp.Checks["database"].Status != StatusHealthy {
		t.Errorf("database check = %+v", resp.Checks["database"])
	}
	cacheCheck, ok := resp.Checks["cache"]
	if !ok {
		t.Fatal("expected cache check in response")
	}
	if cacheCheck.Stats == nil {
		t.Error("memory cache check should carry stats")
	}
	if resp.System != nil {
		t.Error("system info should only be included with verbose=true")
	}
}

func TestHealthHandler_Health_WithoutCache(t *testing.T) {
	handler := newTestHealthHandler(t, nil)

	_, resp := getHealth(t, handler, "/health")

	if resp.Status != StatusHealthy {
		t.Errorf("status = %q; want healthy", resp.Status)
	}
	if _, ok := resp.Checks["cache"]; ok {
		t.Error("cache check reported without a cache")
	}
}

func TestHealthHandler_Health_Verbose(t *testing.T) {
	handler := newTestHealthHandler(t, nil)

	_, resp := getHealth(t, handler, "/health?verbose=true")

	if resp.System == nil {
		t.Fatal("expected system info with verbose=true")
	}
	if resp.System.GoVersion == "" || resp.System.NumCPU == 0 {
		t.Errorf("system info incomplete: %+v", resp.System)
	}
}

func TestHealthHandler_Health_WithoutDetails(t *testing.T) {
	backend := cache.NewSimpleMemoryCache(time.Minute)
	contentCache := cache.NewContentCache(backend, time.Minute)
	t.Cleanup(func() { _ = contentCache.Close() })
	handler := NewHealthHandler(testutil.TestDB(t), contentCache, version.Info{Version: "v1.2.3"}, false)

	w, resp := getHealth(t, handler, "/health?verbose=true")

	if w.Code != http.StatusOK {
		t.Errorf("status code = %d; want %d", w.Code, http.StatusOK)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("status = %q; want healthy", resp.Status)
	}
	if resp.System != nil {
		t.Error("system info exposed without details")
	}
	for name, check := range resp.Checks {
		if check != (Check{Status: StatusHealthy}) {
			t.Errorf("%s check = %+v; want status only", name, check)
		}
	}
	if len(resp.Checks) != 2 {
		t.Errorf("checks = %v; want database and cache", resp.Checks)
	}
}

func TestHealthHandler_Health_UnhealthyDatabase(t *testing.T) {
	handler := newTestHealthHandler(t, nil)
	_ = handler.db.Close()

	w, resp := getHealth(t, handler, "/health")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d; want %d", w.Code, http.StatusServiceUnavailable)
	}
	if resp.Status != StatusUnhealthy {
		t.Errorf("status = %q; want unhealthy", resp.Status)
	}
	if msg := resp.Checks["database"].Message; msg != "Unreachable" {
		t.Errorf("database message = %q; should not leak error details", msg)
	}
}

func TestHealthHandler_Health_CacheDown(t *testing.T) {
	handler := newTestHealthHandler(t, downCache{cache.NewSimpleMemoryCache(time.Minute)})

	w, resp := getHealth(t, handler, "/health")

	// content is still served from the database
	if w.Code != http.StatusOK {
		t.Errorf("status code = %d; want %d", w.Code, http.StatusOK)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("status = %q; want degraded", resp.Status)
	}
	if resp.Checks["cache"].Status != StatusDegraded {
		t.Errorf("cache check = %+v", resp.Checks["cache"])
	}
}

// checkStatusEndpoint tests a liveness or readiness endpoint for the expected status.
func checkStatusEndpoint(t *testing.T, path string, handlerFn http.HandlerFunc, wantCode int, wantStatus string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()

	handlerFn(w, req)

	if w.Code != wantCode {
		t.Errorf("status code = %d; want %d", w.Code, wantCode)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != wantStatus {
		t.Errorf("status = %q; want %s", resp["status"], wantStatus)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := newTestHealthHandler(t, nil)
	checkStatusEndpoint(t, "/health/live", handler.Liveness, http.StatusOK, "alive")

	// liveness does not depend on the database
	_ = handler.db.Close()
	checkStatusEndpoint(t, "/health/live", handler.Liveness, http.StatusOK, "alive")
}

func TestHealthHandler_Readiness(t *testing.T) {
	handler := newTestHealthHandler(t, nil)
	checkStatusEndpoint(t, "/health/ready", handler.Readiness, http.StatusOK, "ready")
}

func TestHealthHandler_Readiness_NotReady(t *testing.T) {
	handler := newTestHealthHandler(t, nil)
	_ = handler.db.Close()

	checkStatusEndpoint(t, "/health/ready", handler.Readiness, http.StatusServiceUnavailable, "not_ready")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{1073741824, "1.00 GB"},
		{1610612736, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q; want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
