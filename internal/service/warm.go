// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// DefaultWarmWorkers is the pool size used when Warm gets no positive size.
const DefaultWarmWorkers = 4

// WarmResult summarizes a cache warm-up run.
type WarmResult struct {
	Tasks    int
	Failed   int
	Duration time.Duration
}

// Warm loads every content list into the cache, once per configured language
// for the localized ones. Failures do not stop other loads and are returned
// joined.
func (s *ContentService) Warm(ctx context.Context, workers int) (WarmResult, error) {
	start := time.Now()
	var result WarmResult

	if s.cache == nil {
		return result, nil
	}
	if workers <= 0 {
		workers = DefaultWarmWorkers
	}

	languages, err := s.Languages(ctx)
	if err != nil {
		return result, fmt.Errorf("warming languages: %w", err)
	}

	tasks := []func(context.Context) error{
		func(ctx context.Context) error { _, err := s.TeamMembers(ctx); return err },
		func(ctx context.Context) error { _, err := s.Values(ctx); return err },
		func(ctx context.Context) error { _, err := s.Faqs(ctx); return err },
		func(ctx context.Context) error { _, err := s.FaqTopics(ctx); return err },
		func(ctx context.Context) error { _, err := s.HeroSlides(ctx); return err },
	}
	for _, l := range languages {
		lang := l.Code
		tasks = append(tasks,
			func(ctx context.Context) error { _, err := s.Tours(ctx, lang); return err },
			func(ctx context.Context) error { _, err := s.Navigation(ctx, lang); return err },
		)
		for _, p := range s.Pages() {
			page := p.Page
			tasks = append(tasks, func(ctx context.Context) error {
				_, err := s.PageTexts(ctx, page, lang)
				return err
			})
		}
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return result, fmt.Errorf("creating warm-up pool: %w", err)
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, task := range tasks {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := task(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	result.Tasks = len(tasks)
	result.Failed = len(errs)
	result.Duration = time.Since(start)

	slog.Info("content cache warmed",
		"tasks", result.Tasks,
		"failed", result.Failed,
		"languages", len(languages),
		"duration", result.Duration)

	return result, errors.Join(errs...)
}
