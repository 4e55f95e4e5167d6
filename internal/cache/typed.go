// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load once it no longer follows any one
// caller's context.
const loadTimeout = 30 * time.Second

// TypedCache stores values of T as JSON in a Cacher.
type TypedCache[T any] struct {
	cache      Cacher
	defaultTTL time.Duration
	group      *singleflight.Group
}

// NewTypedCache wraps cache. Callers that share group collapse concurrent
// loads of the same key into one; a nil group gets a private one.
func NewTypedCache[T any](cache Cacher, defaultTTL time.Duration, group *singleflight.Group) *TypedCache[T] {
	if group == nil {
		group = &singleflight.Group{}
	}
	return &TypedCache[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
		group:      group,
	}
}

// Get returns the cached value and true, or false on a miss, a backend error
// or undecodable data.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if err != ErrCacheMiss {
			slog.Debug("cache get failed", "key", key, "error", err)
		}
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.cache.Delete(ctx, key)
		return value, false
	}

	return value, true
}

func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

func (c *TypedCache[T]) SetWithTTL(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.cache.Set(ctx, key, data, ttl)
}

func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}

// GetOrSet returns the cached value of key or loads, stores and returns it.
// Concurrent misses on one key run load once. The shared load is detached from
// the caller's cancellation and bounded by loadTimeout; each caller stops
// waiting when its own ctx is done. Load errors are returned and never
// cached; a failing backend only costs the cache write.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	ch := c.group.DoChan(key, func() (v any, err error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		// DoChan re-panics on a fresh goroutine, out of reach of the
		// router's recoverer.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("loading %s: panic: %v", key, r)
			}
		}()

		value, err := load(loadCtx)
		if err != nil {
			return value, err
		}
		if err := c.Set(loadCtx, key, value); err != nil {
			slog.Debug("cache set failed", "key", key, "error", err)
		}
		return value, nil
	})

	var zero T
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
