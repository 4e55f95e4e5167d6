// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the localized messages of API error responses.
// Content itself is localized by the store and never passes through here.
package i18n

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

// Message IDs.
const (
	MsgKeysRequired     = "keys_required"
	MsgTooManyKeys      = "too_many_keys"
	MsgInvalidBody      = "invalid_body"
	MsgInternalError    = "internal_error"
	MsgPageNotFound     = "page_not_found"
	MsgNotFound         = "not_found"
	MsgMethodNotAllowed = "method_not_allowed"
	MsgRateLimited      = "rate_limited"
	MsgRequestTimeout   = "request_timeout"
)

// DefaultLanguage is used when no supported language matches.
const DefaultLanguage = "en"

// SupportedLanguages lists the languages with a message file.
var SupportedLanguages = []string{"en", "zh", "it", "es"}

// Catalog holds the message bundle and the language matcher.
type Catalog struct {
	bundle    *goi18n.Bundle
	matcher   language.Matcher
	supported []language.Tag
	counts    map[string]int
	logger    *slog.Logger
}

var (
	catalog      atomic.Pointer[Catalog]
	fallbackOnce sync.Once
)

// NewCatalog loads the embedded message files.
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		bundle: goi18n.NewBundle(language.English),
		counts: make(map[string]int, len(SupportedLanguages)),
		logger: logger,
	}
	c.bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range SupportedLanguages {
		path := fmt.Sprintf("locales/messages.%s.toml", lang)
		file, err := c.bundle.LoadMessageFileFS(localesFS, path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		c.counts[lang] = len(file.Messages)
		c.supported = append(c.supported, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(c.supported)

	if logger != nil {
		logger.Debug("i18n catalog loaded", "languages", SupportedLanguages)
	}
	return c, nil
}

// Init installs the package catalog.
func Init(logger *slog.Logger) error {
	c, err := NewCatalog(logger)
	if err != nil {
		return err
	}
	catalog.Store(c)
	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

// current returns the installed catalog, loading one without a logger when
// Init was never called.
func current() *Catalog {
	if c := catalog.Load(); c != nil {
		return c
	}
	fallbackOnce.Do(func() {
		c, err := NewCatalog(nil)
		if err != nil {
			panic(err) // embedded files are fixed at build time
		}
		catalog.CompareAndSwap(nil, c)
	})
	return catalog.Load()
}

// T translates a message ID into lang, falling back to English. Unknown IDs
// are returned unchanged.
func T(lang, id string) string {
	return current().T(lang, id)
}

// T translates a message ID into lang.
func (c *Catalog) T(lang, id string) string {
	localizer := goi18n.NewLocalizer(c.bundle, lang, DefaultLanguage)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("missing message", "id", id, "lang", lang, "error", err)
		}
		return id
	}
	return msg
}

// MatchLanguage returns the supported language closest to a language code or
// an Accept-Language header value.
func MatchLanguage(acceptLang string) string {
	return current().MatchLanguage(acceptLang)
}

// MatchLanguage returns the supported language closest to acceptLang.
func (c *Catalog) MatchLanguage(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(c.supported) {
		return DefaultLanguage
	}
	return c.supported[idx].String()
}

// IsSupported reports whether lang has a message file.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of messages loaded for lang.
func TranslationCount(lang string) int {
	return current().counts[lang]
}
