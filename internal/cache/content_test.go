// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContentCache(t *testing.T) (*ContentCache, *MemoryCache) {
	t.Helper()
	mem := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	cc := NewContentCache(mem, time.Minute)
	t.Cleanup(func() { _ = cc.Close() })
	return cc, mem
}

func TestContentCache_Key(t *testing.T) {
	cc, _ := newTestContentCache(t)
	ctx := context.Background()
	gen := cc.Generation(ctx)
	require.NotEmpty(t, gen)

	assert.Equal(t, gen+":tours:zh", cc.Key(ctx, "tours", "zh"))

	withKeys := cc.Key(ctx, "texts", "en", "nav.home", "nav.tours")
	assert.True(t, strings.HasPrefix(withKeys, gen+":texts:en:"))
	assert.Equal(t, withKeys, cc.Key(ctx, "texts", "en", "nav.tours", "nav.home", "nav.home"))
	assert.NotEqual(t, withKeys, cc.Key(ctx, "texts", "zh", "nav.home", "nav.tours"))
	assert.NotEqual(t, withKeys, cc.Key(ctx, "texts", "en", "nav.home"))
}

func TestHashParts(t *testing.T) {
	a := HashParts([]string{"b", "a", "c"})
	assert.Equal(t, a, HashParts([]string{"c", "b", "a", "a"}))
	assert.Len(t, a, 24)
	// a separator keeps boundaries distinct
	assert.NotEqual(t, HashParts([]string{"ab", "c"}), HashParts([]string{"a", "bc"}))
}

func TestHashParts_DoesNotReorderInput(t *testing.T) {
	in := []string{"z", "a"}
	_ = HashParts(in)
	assert.Equal(t, []string{"z", "a"}, in)
}

func TestContentCache_Invalidate(t *testing.T) {
	cc, mem := newTestContentCache(t)
	ctx := context.Background()

	oldKey := cc.Key(ctx, "faq", "en")
	_, err := Fetch(ctx, cc, oldKey, func(context.Context) ([]string, error) {
		return []string{"q1"}, nil
	})
	require.NoError(t, err)
	has, _ := mem.Has(ctx, oldKey)
	require.True(t, has)

	oldGen := cc.Generation(ctx)
	require.NoError(t, cc.Invalidate(ctx))
	assert.NotEqual(t, oldGen, cc.Generation(ctx))

	has, _ = mem.Has(ctx, oldKey)
	assert.False(t, has, "old generation entries should be removed")
	stored, err := mem.Get(ctx, generationKey)
	require.NoError(t, err)
	assert.Equal(t, cc.Generation(ctx), string(stored))

	calls := 0
	got, err := Fetch(ctx, cc, cc.Key(ctx, "faq", "en"), func(context.Context) ([]string, error) {
		calls++
		return []string{"q2"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"q2"}, got)
}

func TestFetch_Caches(t *testing.T) {
	cc, _ := newTestContentCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (map[string]string, error) {
		calls++
		return map[string]string{"nav.home": "Home"}, nil
	}

	key := cc.Key(ctx, "texts", "en", "nav.home")
	for range 3 {
		got, err := Fetch(ctx, cc, key, load)
		require.NoError(t, err)
		assert.Equal(t, "Home", got["nav.home"])
	}
	assert.Equal(t, 1, calls)

	stats, ok := cc.Stats()
	require.True(t, ok)
	assert.Equal(t, int64(2), stats.Hits)
}

func TestFetch_NilCacheLoads(t *testing.T) {
	var cc *ContentCache
	calls := 0
	for range 2 {
		got, err := Fetch(context.Background(), cc, "k", func(context.Context) (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	}
	assert.Equal(t, 2, calls)
}

func TestFetch_PropagatesErrors(t *testing.T) {
	cc, _ := newTestContentCache(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Fetch(ctx, cc, cc.Key(ctx, "tours", "en"), func(context.Context) ([]int, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestContentCache_SharedBackend(t *testing.T) {
	mem := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = mem.Close() })
	first := NewContentCache(mem, time.Minute)
	second := NewContentCache(mem, time.Minute)
	first.refresh, second.refresh = 0, 0
	ctx := context.Background()

	require.Equal(t, first.Key(ctx, "tours", "en"), second.Key(ctx, "tours", "en"))

	loads := 0
	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"Manta Ray Snorkeling Safari"}, nil
	}
	_, err := Fetch(ctx, first, first.Key(ctx, "tours", "en"), load)
	require.NoError(t, err)
	got, err := Fetch(ctx, second, second.Key(ctx, "tours", "en"), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Manta Ray Snorkeling Safari"}, got)
	assert.Equal(t, 1, loads, "second instance should read the first one's entry")

	require.NoError(t, first.Invalidate(ctx))
	assert.Equal(t, first.Generation(ctx), second.Generation(ctx))

	_, err = Fetch(ctx, second, second.Key(ctx, "tours", "en"), load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "invalidation on one instance should reach the other")
}

func TestContentCache_GenerationSurvivesBackendOutage(t *testing.T) {
	mem := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	cc := NewContentCache(mem, time.Minute)
	cc.refresh = 0
	ctx := context.Background()

	gen := cc.Generation(ctx)
	require.NoError(t, mem.Close())

	assert.Equal(t, gen, cc.Generation(ctx))
}
