// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	// generationKey holds the current key generation in the backend, where
	// every instance sharing it reads the same value.
	generationKey = "content:generation"

	generationTTL = 7 * 24 * time.Hour

	// generationRefresh is how long an instance trusts its last read of the
	// generation before asking the backend again.
	generationRefresh = 5 * time.Second
)

type generation struct {
	id      string
	checked time.Time
}

// ContentCache caches content API responses per entity and language.
//
// Keys have the form generation:entity:lang[:hash]. The generation lives in
// the backend, so instances sharing a Redis database share entries, and
// Invalidate on any of them moves all of them to a fresh generation within
// generationRefresh. Entries of an old generation are never read again even
// when a backend cannot be cleared.
type ContentCache struct {
	backend Cacher
	ttl     time.Duration
	refresh time.Duration

	generation atomic.Pointer[generation]
	genMu      sync.Mutex
	group      singleflight.Group
}

// NewContentCache wraps backend. A zero ttl uses the backend default.
func NewContentCache(backend Cacher, ttl time.Duration) *ContentCache {
	return &ContentCache{backend: backend, ttl: ttl, refresh: generationRefresh}
}

func (c *ContentCache) fresh() (string, bool) {
	g := c.generation.Load()
	if g == nil || time.Since(g.checked) >= c.refresh {
		return "", false
	}
	return g.id, true
}

// Generation returns the current key generation. When the backend cannot be
// read the last known generation stays in use; before any successful read a
// process-local one is used.
func (c *ContentCache) Generation(ctx context.Context) string {
	if id, ok := c.fresh(); ok {
		return id
	}

	c.genMu.Lock()
	defer c.genMu.Unlock()
	if id, ok := c.fresh(); ok {
		return id
	}

	id, err := c.loadGeneration(ctx)
	if err != nil {
		slog.Debug("reading cache generation failed", "error", err)
		if g := c.generation.Load(); g != nil {
			id = g.id
		} else {
			id = uuid.NewString()
		}
	}
	c.generation.Store(&generation{id: id, checked: time.Now()})
	return id
}

// loadGeneration reads the shared generation, creating it when no instance
// has yet.
func (c *ContentCache) loadGeneration(ctx context.Context) (string, error) {
	data, err := c.backend.Get(ctx, generationKey)
	switch {
	case err == nil && len(data) > 0:
		return string(data), nil
	case err != nil && !errors.Is(err, ErrCacheMiss):
		return "", err
	}

	gen := uuid.NewString()
	stored, err := c.backend.SetNX(ctx, generationKey, []byte(gen), generationTTL)
	if err != nil {
		return "", err
	}
	if stored {
		return gen, nil
	}

	// another instance got there first
	data, err = c.backend.Get(ctx, generationKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Key builds the cache key of an entity in a language. Extra parts, such as
// the requested text keys, are hashed so that key length stays bounded.
func (c *ContentCache) Key(ctx context.Context, entity, lang string, extra ...string) string {
	key := c.Generation(ctx) + ":" + entity + ":" + lang
	if len(extra) > 0 {
		key += ":" + HashParts(extra)
	}
	return key
}

// HashParts returns an order-independent digest of parts.
func HashParts(parts []string) string {
	sorted := slices.Clone(parts)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return hex.EncodeToString(sum[:12])
}

// Invalidate publishes a new generation to the backend and removes the
// entries of the old one.
func (c *ContentCache) Invalidate(ctx context.Context) error {
	old := c.Generation(ctx)

	gen := uuid.NewString()
	c.generation.Store(&generation{id: gen, checked: time.Now()})
	if err := c.backend.Set(ctx, generationKey, []byte(gen), generationTTL); err != nil {
		return fmt.Errorf("storing cache generation: %w", err)
	}

	slog.Info("content cache invalidated", "generation", gen)
	return c.backend.DeleteByPrefix(ctx, old+":")
}

// Stats returns backend statistics when the backend tracks them.
func (c *ContentCache) Stats() (Stats, bool) {
	sp, ok := c.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}

// Ping checks the backend connection. Backends without one always succeed.
func (c *ContentCache) Ping(ctx context.Context) error {
	if p, ok := c.backend.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backend.
func (c *ContentCache) Close() error {
	return c.backend.Close()
}

// Fetch returns the cached value of key or loads and caches it. A nil cache
// always loads.
func Fetch[T any](ctx context.Context, c *ContentCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	return NewTypedCache[T](c.backend, c.ttl, &c.group).GetOrSet(ctx, key, load)
}
