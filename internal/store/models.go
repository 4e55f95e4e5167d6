// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "database/sql"

type Language struct {
	Code string
	Name string
}

type Tour struct {
	ID          int64
	Destination string
	Duration    string
	Price       sql.NullString
	Type        string
	Image       string
}

type TourI18n struct {
	TourID           int64
	LangCode         string
	Title            string
	ShortDescription string
	FullDescription  string
}

type TeamMember struct {
	ID       int64
	Name     string
	Role     string
	Bio      string
	Image    string
	Position int64
}

type CompanyValue struct {
	ID          int64
	Title       string
	Description string
	Icon        string
	Position    int64
}

type Faq struct {
	ID       int64
	Question string
	Answer   string
	Position int64
}

type FaqTopic struct {
	ID          int64
	Title       string
	Description string
	Icon        string
	Position    int64
}

type HeroSlide struct {
	ID       int64
	Image    string
	Position int64
}

type Navigation struct {
	ID       int64
	Key      string
	Path     string
	Position int64
	IsCta    bool
}

type NavigationI18n struct {
	NavID    int64
	LangCode string
	Label    string
}

// TextValue is one translation of a UI string, joined with its key.
type TextValue struct {
	Key      string
	LangCode string
	Value    string
}
