// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service assembles the content API responses from the store, the
// localization resolver and the response cache.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/timelesstours/tourcms/internal/cache"
	"github.com/timelesstours/tourcms/internal/localize"
	"github.com/timelesstours/tourcms/internal/manifest"
	"github.com/timelesstours/tourcms/internal/model"
	"github.com/timelesstours/tourcms/internal/store"
)

var (
	// ErrKeysRequired is returned by Texts for an empty key list.
	ErrKeysRequired = errors.New("keys are required")

	// ErrTooManyKeys is returned by Texts for more than MaxTextKeys
	// distinct keys.
	ErrTooManyKeys = fmt.Errorf("more than %d keys", MaxTextKeys)

	// ErrUnknownPage is returned by PageTexts for a page without a manifest.
	ErrUnknownPage = errors.New("unknown page")
)

// MaxTextKeys is the largest number of distinct keys one Texts call resolves.
// Each key is one bind variable of a single query.
const MaxTextKeys = 1000

// Cache entity names.
const (
	entityTours       = "tours"
	entityTeamMembers = "team-members"
	entityValues      = "values"
	entityFaqs        = "faq"
	entityFaqTopics   = "faq-topics"
	entityHeroSlides  = "hero-slides"
	entityNavigation  = "navigation"
	entityLanguages   = "languages"
	entityTexts       = "texts"
	noLanguage        = "-"
)

// ContentService serves the localized content lists. Every list is read with
// at most two queries and is either returned whole or not at all.
type ContentService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.ContentCache
}

// NewContentService creates a ContentService. A nil cache reads the store on
// every call.
func NewContentService(db *sql.DB, contentCache *cache.ContentCache) *ContentService {
	return &ContentService{
		db:      db,
		queries: store.New(db),
		cache:   contentCache,
	}
}

// Cache returns the response cache, which may be nil.
func (s *ContentService) Cache() *cache.ContentCache {
	return s.cache
}

func (s *ContentService) key(ctx context.Context, entity, lang string, extra ...string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.Key(ctx, entity, lang, extra...)
}

// Tours returns all tours ordered by id, localized into lang.
func (s *ContentService) Tours(ctx context.Context, lang string) ([]model.Tour, error) {
	lang = localize.Normalize(lang)
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityTours, lang), func(ctx context.Context) ([]model.Tour, error) {
		tours, err := s.queries.ListTours(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tours: %w", err)
		}
		rows, err := s.queries.ListTourI18n(ctx, localize.Candidates(lang))
		if err != nil {
			return nil, fmt.Errorf("listing tour translations: %w", err)
		}
		i18n := localize.Group(rows, lang)

		out := make([]model.Tour, 0, len(tours))
		for _, t := range tours {
			item := model.Tour{
				ID:          t.ID,
				Destination: t.Destination,
				Duration:    t.Duration,
				Type:        t.Type,
				Image:       t.Image,
			}
			if t.Price.Valid {
				price := t.Price.String
				item.Price = &price
			}
			if row, ok := i18n[t.ID]; ok {
				item.Title = localize.NullIfEmpty(row.Title)
				item.ShortDescription = localize.NullIfEmpty(row.ShortDescription)
				item.FullDescription = localize.NullIfEmpty(row.FullDescription)
			}
			out = append(out, item)
		}
		return out, nil
	})
}

// TeamMembers returns the active team members.
func (s *ContentService) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityTeamMembers, noLanguage), func(ctx context.Context) ([]model.TeamMember, error) {
		rows, err := s.queries.ListActiveTeamMembers(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing team members: %w", err)
		}
		out := make([]model.TeamMember, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.TeamMember{
				ID:       r.ID,
				Name:     r.Name,
				Role:     r.Role,
				Bio:      r.Bio,
				Image:    r.Image,
				Position: r.Position,
			})
		}
		return out, nil
	})
}

// Values returns the active company values.
func (s *ContentService) Values(ctx context.Context) ([]model.CompanyValue, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityValues, noLanguage), func(ctx context.Context) ([]model.CompanyValue, error) {
		rows, err := s.queries.ListActiveCompanyValues(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing company values: %w", err)
		}
		out := make([]model.CompanyValue, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.CompanyValue{
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				Icon:        r.Icon,
				Position:    r.Position,
			})
		}
		return out, nil
	})
}

// Faqs returns the active FAQ entries.
func (s *ContentService) Faqs(ctx context.Context) ([]model.Faq, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityFaqs, noLanguage), func(ctx context.Context) ([]model.Faq, error) {
		rows, err := s.queries.ListActiveFaqs(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing faqs: %w", err)
		}
		out := make([]model.Faq, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.Faq{
				ID:       r.ID,
				Question: r.Question,
				Answer:   r.Answer,
				Position: r.Position,
			})
		}
		return out, nil
	})
}

// FaqTopics returns the active FAQ topics.
func (s *ContentService) FaqTopics(ctx context.Context) ([]model.FaqTopic, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityFaqTopics, noLanguage), func(ctx context.Context) ([]model.FaqTopic, error) {
		rows, err := s.queries.ListActiveFaqTopics(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing faq topics: %w", err)
		}
		out := make([]model.FaqTopic, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.FaqTopic{
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				Icon:        r.Icon,
				Position:    r.Position,
			})
		}
		return out, nil
	})
}

// HeroSlides returns every hero slide.
func (s *ContentService) HeroSlides(ctx context.Context) ([]model.HeroSlide, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityHeroSlides, noLanguage), func(ctx context.Context) ([]model.HeroSlide, error) {
		rows, err := s.queries.ListHeroSlides(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing hero slides: %w", err)
		}
		out := make([]model.HeroSlide, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.HeroSlide{ID: r.ID, Image: r.Image, Position: r.Position})
		}
		return out, nil
	})
}

// Navigation returns the menu entries with labels localized into lang.
func (s *ContentService) Navigation(ctx context.Context, lang string) ([]model.NavigationItem, error) {
	lang = localize.Normalize(lang)
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityNavigation, lang), func(ctx context.Context) ([]model.NavigationItem, error) {
		items, err := s.queries.ListNavigation(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing navigation: %w", err)
		}
		rows, err := s.queries.ListNavigationI18n(ctx, localize.Candidates(lang))
		if err != nil {
			return nil, fmt.Errorf("listing navigation labels: %w", err)
		}
		labels := localize.Group(rows, lang)

		out := make([]model.NavigationItem, 0, len(items))
		for _, n := range items {
			item := model.NavigationItem{
				Key:      n.Key,
				Path:     n.Path,
				Position: n.Position,
				IsCta:    n.IsCta,
			}
			if row, ok := labels[n.ID]; ok {
				item.Label = localize.NullIfEmpty(row.Label)
			}
			out = append(out, item)
		}
		return out, nil
	})
}

// Languages returns the configured languages ordered by code.
func (s *ContentService) Languages(ctx context.Context) ([]model.Language, error) {
	return cache.Fetch(ctx, s.cache, s.key(ctx, entityLanguages, noLanguage), func(ctx context.Context) ([]model.Language, error) {
		rows, err := s.queries.ListLanguages(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing languages: %w", err)
		}
		out := make([]model.Language, 0, len(rows))
		for _, r := range rows {
			out = append(out, model.Language{Code: r.Code, Name: r.Name})
		}
		return out, nil
	})
}

// Texts resolves keys into lang. Keys without a value in lang or the default
// language are left out of the result.
func (s *ContentService) Texts(ctx context.Context, keys []string, lang string) (model.Texts, error) {
	if len(keys) == 0 {
		return nil, ErrKeysRequired
	}
	keys = uniqueKeys(keys)
	if len(keys) > MaxTextKeys {
		return nil, ErrTooManyKeys
	}
	lang = localize.Normalize(lang)

	return cache.Fetch(ctx, s.cache, s.key(ctx, entityTexts, lang, keys...), func(ctx context.Context) (model.Texts, error) {
		rows, err := s.queries.ListTextValues(ctx, keys, localize.Candidates(lang))
		if err != nil {
			return nil, fmt.Errorf("listing texts: %w", err)
		}
		return model.Texts(localize.Texts(rows, lang)), nil
	})
}

// PageTexts resolves the text keys used by page.
func (s *ContentService) PageTexts(ctx context.Context, page, lang string) (model.Texts, error) {
	keys, ok := manifest.Keys(page)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	return s.Texts(ctx, keys, lang)
}

// Pages lists the pages with a text manifest.
func (s *ContentService) Pages() []model.PageTexts {
	pages := manifest.Pages()
	out := make([]model.PageTexts, 0, len(pages))
	for _, page := range pages {
		keys, _ := manifest.Keys(page)
		out = append(out, model.PageTexts{Page: page, Keys: keys})
	}
	return out
}

// Invalidate drops every cached response.
func (s *ContentService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

// Ping checks that the store is reachable.
func (s *ContentService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func uniqueKeys(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
