// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package localize resolves localized rows with a two-tier fallback: the
// requested language first, then DefaultLanguage, then nothing.
//
// Resolution is pure and works on rows that were already fetched with a
// `lang_code IN (requested, DefaultLanguage)` filter; see Candidates. There is
// no degradation between related locales: "zh-TW" never falls back to "zh".
package localize

// DefaultLanguage is the fallback language code.
const DefaultLanguage = "en"

// Normalize returns lang, or DefaultLanguage when lang is empty. Codes are
// otherwise matched exactly.
func Normalize(lang string) string {
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// Candidates returns the language codes a caller must fetch to resolve lang,
// in priority order and without duplicates.
func Candidates(lang string) []string {
	lang = Normalize(lang)
	if lang == DefaultLanguage {
		return []string{DefaultLanguage}
	}
	return []string{lang, DefaultLanguage}
}

// Localized is a row holding content in one language.
type Localized interface {
	Language() string
}

// Owned is a localized row that belongs to an entity.
type Owned interface {
	Localized
	OwnerID() int64
}

// rank scores a row's language: 2 for an exact match, 1 for the default
// language, 0 for anything else.
func rank(rowLang, lang string) int {
	switch rowLang {
	case lang:
		return 2
	case DefaultLanguage:
		return 1
	default:
		return 0
	}
}

// Resolve picks one row per owner key. A row in lang wins over a row in
// DefaultLanguage; rows in any other language are ignored. Whole rows are
// selected, so fields of one entity never mix languages.
func Resolve[K comparable, T any](rows []T, lang string, owner func(T) K, language func(T) string) map[K]T {
	lang = Normalize(lang)
	chosen := make(map[K]T)
	ranks := make(map[K]int)

	for _, row := range rows {
		r := rank(language(row), lang)
		if r == 0 {
			continue
		}
		k := owner(row)
		if r > ranks[k] {
			chosen[k] = row
			ranks[k] = r
		}
	}
	return chosen
}

// Pick resolves a single entity from its localized rows.
func Pick[T Localized](rows []T, lang string) (T, bool) {
	got := Resolve(rows, lang,
		func(T) struct{} { return struct{}{} },
		func(r T) string { return r.Language() },
	)
	row, ok := got[struct{}{}]
	return row, ok
}

// Group resolves the localized rows of many entities at once, keyed by owner.
func Group[T Owned](rows []T, lang string) map[int64]T {
	return Resolve(rows, lang,
		func(r T) int64 { return r.OwnerID() },
		func(r T) string { return r.Language() },
	)
}

// NullIfEmpty maps the empty string to nil.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
