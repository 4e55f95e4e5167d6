// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic content cache warm-up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/timelesstours/tourcms/internal/service"
)

// DefaultRunTimeout bounds a single warm-up run.
const DefaultRunTimeout = 2 * time.Minute

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether spec is a standard cron expression or a
// descriptor such as "@every 15m".
func ValidateSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

// Warmer fills the content cache.
type Warmer interface {
	Warm(ctx context.Context, workers int) (service.WarmResult, error)
}

// Options configures the scheduler.
type Options struct {
	Schedule   string
	Workers    int
	RunTimeout time.Duration
}

// Scheduler warms the content cache on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	opts    Options
	logger  *slog.Logger
	running sync.Mutex
}

// New creates a scheduler. Nothing runs until Start.
func New(warmer Warmer, opts Options, logger *slog.Logger) *Scheduler {
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = DefaultRunTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser)),
		warmer: warmer,
		opts:   opts,
		logger: logger,
	}
}

// Start registers the warm-up job and starts the cron loop.
func (s *Scheduler) Start() error {
	if err := ValidateSchedule(s.opts.Schedule); err != nil {
		return err
	}

	_, err := s.cron.AddFunc(s.opts.Schedule, func() {
		if err := s.RunNow(context.Background()); err != nil {
			s.logger.Error("cache warm-up failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.opts.Schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow performs one warm-up. A run that starts while another is still in
// progress is skipped.
func (s *Scheduler) RunNow(ctx context.Context) error {
	if !s.running.TryLock() {
		s.logger.Debug("cache warm-up already running, skipping")
		return nil
	}
	defer s.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.opts.RunTimeout)
	defer cancel()

	_, err := s.warmer.Warm(ctx, s.opts.Workers)
	return err
}
