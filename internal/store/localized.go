// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

// Localized row accessors used by the localize package.

func (r TourI18n) Language() string { return r.LangCode }
func (r TourI18n) OwnerID() int64   { return r.TourID }

func (r NavigationI18n) Language() string { return r.LangCode }
func (r NavigationI18n) OwnerID() int64   { return r.NavID }

func (r TextValue) Language() string { return r.LangCode }
