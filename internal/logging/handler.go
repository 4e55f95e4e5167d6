// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the application logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

// Options configures New.
type Options struct {
	Level       slog.Level
	Development bool // colored text output instead of JSON
	NoColor     bool
}

// New returns a logger writing to w. Development loggers use tint, others
// emit JSON. Every record logged with a request context carries its request
// id.
func New(w io.Writer, opts Options) *slog.Logger {
	var base slog.Handler
	if opts.Development {
		base = tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
		})
	} else {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})
	}
	return slog.New(NewRequestContextHandler(base))
}

// RequestContextHandler is a slog.Handler that adds the chi request id found
// in the record's context.
type RequestContextHandler struct {
	inner slog.Handler
}

// NewRequestContextHandler wraps inner.
func NewRequestContextHandler(inner slog.Handler) *RequestContextHandler {
	return &RequestContextHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *RequestContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" {
			r = r.Clone()
			r.AddAttrs(slog.String("request_id", id))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *RequestContextHandler) WithGroup(name string) slog.Handler {
	return &RequestContextHandler{inner: h.inner.WithGroup(name)}
}
