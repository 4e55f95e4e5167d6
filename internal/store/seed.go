// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed seeddata/default.yaml
var defaultSeed []byte

// SeedData is the content of a seed file.
//
// Keyed sections (languages, navigation, texts) are upserted. List sections
// (heroSlides, tours, teamMembers, values, faqs, faqTopics) replace the stored
// rows when present in the file and are left untouched when omitted.
type SeedData struct {
	Languages        []SeedLanguage   `yaml:"languages"`
	RemoveNavigation []string         `yaml:"removeNavigation"`
	Navigation       []SeedNavigation `yaml:"navigation"`
	HeroSlides       []SeedHeroSlide  `yaml:"heroSlides"`
	Texts            []SeedText       `yaml:"texts"`
	Tours            []SeedTour       `yaml:"tours"`
	TeamMembers      []SeedTeamMember `yaml:"teamMembers"`
	Values           []SeedValue      `yaml:"values"`
	Faqs             []SeedFaq        `yaml:"faqs"`
	FaqTopics        []SeedFaqTopic   `yaml:"faqTopics"`
}

type SeedLanguage struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type SeedNavigation struct {
	Key      string            `yaml:"key"`
	Path     string            `yaml:"path"`
	Position int64             `yaml:"position"`
	IsCta    bool              `yaml:"isCta"`
	Labels   map[string]string `yaml:"labels"`
}

type SeedHeroSlide struct {
	Image    string `yaml:"image"`
	Position int64  `yaml:"position"`
}

// SeedText is a UI string. A nil Context keeps the stored context of an
// existing key.
type SeedText struct {
	Key     string            `yaml:"key"`
	Context *string           `yaml:"context"`
	Values  map[string]string `yaml:"values"`
}

type SeedTour struct {
	ID          int64                   `yaml:"id"`
	Destination string                  `yaml:"destination"`
	Duration    string                  `yaml:"duration"`
	Price       *string                 `yaml:"price"`
	Type        string                  `yaml:"type"`
	Image       string                  `yaml:"image"`
	I18n        map[string]SeedTourI18n `yaml:"i18n"`
}

type SeedTourI18n struct {
	Title            string `yaml:"title"`
	ShortDescription string `yaml:"shortDescription"`
	FullDescription  string `yaml:"fullDescription"`
}

type SeedTeamMember struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	Image    string `yaml:"image"`
	Position int64  `yaml:"position"`
	IsActive *bool  `yaml:"isActive"`
}

type SeedValue struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Position    int64  `yaml:"position"`
	IsActive    *bool  `yaml:"isActive"`
}

type SeedFaq struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Position int64  `yaml:"position"`
	IsActive *bool  `yaml:"isActive"`
}

type SeedFaqTopic struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Position    int64  `yaml:"position"`
	IsActive    *bool  `yaml:"isActive"`
}

// SeedResult counts the rows written by Seed.
type SeedResult struct {
	Languages    int
	Navigation   int
	HeroSlides   int
	Texts        int
	Translations int
	Tours        int
	TeamMembers  int
	Values       int
	Faqs         int
	FaqTopics    int
}

// ParseSeed decodes and validates a YAML seed document.
func ParseSeed(data []byte) (*SeedData, error) {
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// LoadSeedFile reads a seed file from disk.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return ParseSeed(data)
}

// DefaultSeed returns the embedded default content.
func DefaultSeed() (*SeedData, error) {
	return ParseSeed(defaultSeed)
}

// Validate checks keys and identifiers that the schema requires to be unique.
func (s *SeedData) Validate() error {
	var errs []error

	for i, l := range s.Languages {
		if l.Code == "" {
			errs = append(errs, fmt.Errorf("languages[%d]: code is required", i))
		}
	}

	navKeys := make(map[string]bool, len(s.Navigation))
	for i, n := range s.Navigation {
		switch {
		case n.Key == "":
			errs = append(errs, fmt.Errorf("navigation[%d]: key is required", i))
		case navKeys[n.Key]:
			errs = append(errs, fmt.Errorf("navigation[%d]: duplicate key %q", i, n.Key))
		}
		navKeys[n.Key] = true
	}

	// Repeated text keys are allowed: later entries win, as with upserts.
	for i, t := range s.Texts {
		if t.Key == "" {
			errs = append(errs, fmt.Errorf("texts[%d]: key is required", i))
		}
	}

	tourIDs := make(map[int64]bool, len(s.Tours))
	for i, t := range s.Tours {
		switch {
		case t.ID <= 0:
			errs = append(errs, fmt.Errorf("tours[%d]: id must be positive", i))
		case tourIDs[t.ID]:
			errs = append(errs, fmt.Errorf("tours[%d]: duplicate id %d", i, t.ID))
		}
		tourIDs[t.ID] = true
	}

	return errors.Join(errs...)
}

// upsertSQL holds the statements whose syntax differs between dialects.
type upsertSQL struct {
	language        string
	navigation      string
	navigationI18n  string
	textWithContext string
	textKeepContext string
	translation     string
}

var sqliteUpserts = upsertSQL{
	language: `INSERT INTO languages (code, name) VALUES (?, ?)
		ON CONFLICT(code) DO NOTHING`,
	navigation: `INSERT INTO navigation (nav_key, path, position, is_cta) VALUES (?, ?, ?, ?)
		ON CONFLICT(nav_key) DO UPDATE SET path = excluded.path, position = excluded.position, is_cta = excluded.is_cta`,
	navigationI18n: `INSERT INTO navigation_i18n (nav_id, lang_code, label) VALUES (?, ?, ?)
		ON CONFLICT(nav_id, lang_code) DO UPDATE SET label = excluded.label`,
	textWithContext: `INSERT INTO texts (text_key, context) VALUES (?, ?)
		ON CONFLICT(text_key) DO UPDATE SET context = excluded.context`,
	textKeepContext: `INSERT INTO texts (text_key, context) VALUES (?, ?)
		ON CONFLICT(text_key) DO NOTHING`,
	translation: `INSERT INTO translations (text_id, lang_code, value) VALUES (?, ?, ?)
		ON CONFLICT(text_id, lang_code) DO UPDATE SET value = excluded.value`,
}

var mysqlUpserts = upsertSQL{
	language: `INSERT IGNORE INTO languages (code, name) VALUES (?, ?)`,
	navigation: `INSERT INTO navigation (nav_key, path, position, is_cta) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE path = VALUES(path), position = VALUES(position), is_cta = VALUES(is_cta)`,
	navigationI18n: `INSERT INTO navigation_i18n (nav_id, lang_code, label) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE label = VALUES(label)`,
	textWithContext: `INSERT INTO texts (text_key, context) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE context = VALUES(context)`,
	textKeepContext: `INSERT IGNORE INTO texts (text_key, context) VALUES (?, ?)`,
	translation: `INSERT INTO translations (text_id, lang_code, value) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`,
}

func upsertsFor(dialect Dialect) upsertSQL {
	if dialect == DialectMySQL {
		return mysqlUpserts
	}
	return sqliteUpserts
}

// richText strips unsafe markup from seeded HTML fragments.
var richText = bluemonday.UGCPolicy()

// sanitizeRichText leaves plain text alone so that quotes and ampersands are
// not entity-encoded.
func sanitizeRichText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return richText.Sanitize(s)
}

func activeOrDefault(b *bool) bool {
	return b == nil || *b
}

// Seed writes data to the Content Store in a single transaction.
func Seed(ctx context.Context, db *sql.DB, dialect Dialect, data *SeedData) (SeedResult, error) {
	var res SeedResult

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	s := seeder{tx: tx, sql: upsertsFor(dialect)}
	steps := []struct {
		name string
		fn   func(context.Context, *SeedData, *SeedResult) error
	}{
		{"languages", s.languages},
		{"navigation", s.navigation},
		{"hero slides", s.heroSlides},
		{"texts", s.texts},
		{"tours", s.tours},
		{"team members", s.teamMembers},
		{"company values", s.values},
		{"faqs", s.faqs},
		{"faq topics", s.faqTopics},
	}
	for _, step := range steps {
		if err := step.fn(ctx, data, &res); err != nil {
			return SeedResult{}, fmt.Errorf("seeding %s: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("content store seeded",
		"languages", res.Languages,
		"navigation", res.Navigation,
		"hero_slides", res.HeroSlides,
		"texts", res.Texts,
		"translations", res.Translations,
		"tours", res.Tours,
		"team_members", res.TeamMembers,
		"values", res.Values,
		"faqs", res.Faqs,
		"faq_topics", res.FaqTopics,
	)
	return res, nil
}

type seeder struct {
	tx  *sql.Tx
	sql upsertSQL
}

func (s seeder) languages(ctx context.Context, data *SeedData, res *SeedResult) error {
	for _, l := range data.Languages {
		if _, err := s.tx.ExecContext(ctx, s.sql.language, l.Code, l.Name); err != nil {
			return fmt.Errorf("language %q: %w", l.Code, err)
		}
		res.Languages++
	}
	return nil
}

func (s seeder) navigation(ctx context.Context, data *SeedData, res *SeedResult) error {
	for _, key := range data.RemoveNavigation {
		if _, err := s.tx.ExecContext(ctx,
			`DELETE FROM navigation_i18n WHERE nav_id IN (SELECT id FROM navigation WHERE nav_key = ?)`, key,
		); err != nil {
			return fmt.Errorf("removing labels of %q: %w", key, err)
		}
		if _, err := s.tx.ExecContext(ctx, `DELETE FROM navigation WHERE nav_key = ?`, key); err != nil {
			return fmt.Errorf("removing %q: %w", key, err)
		}
	}

	for _, n := range data.Navigation {
		if _, err := s.tx.ExecContext(ctx, s.sql.navigation, n.Key, n.Path, n.Position, n.IsCta); err != nil {
			return fmt.Errorf("item %q: %w", n.Key, err)
		}
		var navID int64
		if err := s.tx.QueryRowContext(ctx, `SELECT id FROM navigation WHERE nav_key = ?`, n.Key).Scan(&navID); err != nil {
			return fmt.Errorf("looking up item %q: %w", n.Key, err)
		}
		for lang, label := range n.Labels {
			if _, err := s.tx.ExecContext(ctx, s.sql.navigationI18n, navID, lang, label); err != nil {
				return fmt.Errorf("label %q/%s: %w", n.Key, lang, err)
			}
		}
		res.Navigation++
	}
	return nil
}

func (s seeder) heroSlides(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.HeroSlides == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM hero_slides`); err != nil {
		return err
	}
	for _, h := range data.HeroSlides {
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO hero_slides (image, position) VALUES (?, ?)`,
			h.Image, h.Position,
		); err != nil {
			return err
		}
		res.HeroSlides++
	}
	return nil
}

func (s seeder) texts(ctx context.Context, data *SeedData, res *SeedResult) error {
	for _, t := range data.Texts {
		var err error
		if t.Context != nil {
			_, err = s.tx.ExecContext(ctx, s.sql.textWithContext, t.Key, *t.Context)
		} else {
			_, err = s.tx.ExecContext(ctx, s.sql.textKeepContext, t.Key, "")
		}
		if err != nil {
			return fmt.Errorf("text %q: %w", t.Key, err)
		}

		var textID int64
		if err := s.tx.QueryRowContext(ctx, `SELECT id FROM texts WHERE text_key = ?`, t.Key).Scan(&textID); err != nil {
			return fmt.Errorf("looking up text %q: %w", t.Key, err)
		}
		for lang, value := range t.Values {
			if _, err := s.tx.ExecContext(ctx, s.sql.translation, textID, lang, value); err != nil {
				return fmt.Errorf("translation %q/%s: %w", t.Key, lang, err)
			}
			res.Translations++
		}
		res.Texts++
	}
	return nil
}

func (s seeder) tours(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.Tours == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM tour_i18n`); err != nil {
		return err
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM tours`); err != nil {
		return err
	}

	for _, t := range data.Tours {
		var price sql.NullString
		if t.Price != nil && *t.Price != "" {
			price = sql.NullString{String: *t.Price, Valid: true}
		}
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO tours (id, destination, duration, price, type, image) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Destination, t.Duration, price, t.Type, t.Image,
		); err != nil {
			return fmt.Errorf("tour %d: %w", t.ID, err)
		}
		for lang, loc := range t.I18n {
			if _, err := s.tx.ExecContext(ctx,
				`INSERT INTO tour_i18n (tour_id, lang_code, title, short_description, full_description) VALUES (?, ?, ?, ?, ?)`,
				t.ID, lang, loc.Title, loc.ShortDescription, sanitizeRichText(loc.FullDescription),
			); err != nil {
				return fmt.Errorf("tour %d/%s: %w", t.ID, lang, err)
			}
		}
		res.Tours++
	}
	return nil
}

func (s seeder) teamMembers(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.TeamMembers == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM team_members`); err != nil {
		return err
	}
	for _, m := range data.TeamMembers {
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO team_members (name, role, bio, image, position, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
			m.Name, m.Role, sanitizeRichText(m.Bio), m.Image, m.Position, activeOrDefault(m.IsActive),
		); err != nil {
			return fmt.Errorf("team member %q: %w", m.Name, err)
		}
		res.TeamMembers++
	}
	return nil
}

func (s seeder) values(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.Values == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM company_values`); err != nil {
		return err
	}
	for _, v := range data.Values {
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO company_values (title, description, icon, position, is_active) VALUES (?, ?, ?, ?, ?)`,
			v.Title, v.Description, v.Icon, v.Position, activeOrDefault(v.IsActive),
		); err != nil {
			return fmt.Errorf("value %q: %w", v.Title, err)
		}
		res.Values++
	}
	return nil
}

func (s seeder) faqs(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.Faqs == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM faqs`); err != nil {
		return err
	}
	for _, f := range data.Faqs {
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO faqs (question, answer, position, is_active) VALUES (?, ?, ?, ?)`,
			f.Question, sanitizeRichText(f.Answer), f.Position, activeOrDefault(f.IsActive),
		); err != nil {
			return fmt.Errorf("faq %q: %w", f.Question, err)
		}
		res.Faqs++
	}
	return nil
}

func (s seeder) faqTopics(ctx context.Context, data *SeedData, res *SeedResult) error {
	if data.FaqTopics == nil {
		return nil
	}
	if _, err := s.tx.ExecContext(ctx, `DELETE FROM faq_topics`); err != nil {
		return err
	}
	for _, t := range data.FaqTopics {
		if _, err := s.tx.ExecContext(ctx,
			`INSERT INTO faq_topics (title, description, icon, position, is_active) VALUES (?, ?, ?, ?, ?)`,
			t.Title, t.Description, t.Icon, t.Position, activeOrDefault(t.IsActive),
		); err != nil {
			return fmt.Errorf("faq topic %q: %w", t.Title, err)
		}
		res.FaqTopics++
	}
	return nil
}
