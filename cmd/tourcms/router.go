// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/timelesstours/tourcms/internal/config"
	"github.com/timelesstours/tourcms/internal/handler"
	"github.com/timelesstours/tourcms/internal/handler/api"
	"github.com/timelesstours/tourcms/internal/middleware"
)

// newRouter builds the HTTP routes: health endpoints and the content API under
// /content.
func newRouter(cfg *config.Config, content api.Content, health *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Route("/content", func(r chi.Router) {
		r.Use(middleware.ContentLanguage)
		r.Use(rateLimiter.Middleware)
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Use(middleware.CacheControl(cfg.ContentMaxAge))
		api.NewHandler(content).Routes(r)
	})

	return r
}
