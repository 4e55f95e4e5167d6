// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package localize

import "github.com/timelesstours/tourcms/internal/store"

// Texts resolves UI strings by key. Keys with no row in lang or
// DefaultLanguage are absent from the result. Empty values are kept.
func Texts(rows []store.TextValue, lang string) map[string]string {
	resolved := Resolve(rows, lang,
		func(r store.TextValue) string { return r.Key },
		func(r store.TextValue) string { return r.LangCode },
	)
	out := make(map[string]string, len(resolved))
	for key, row := range resolved {
		out[key] = row.Value
	}
	return out
}
