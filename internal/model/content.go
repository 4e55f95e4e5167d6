// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the JSON shapes delivered by the content API.
package model

// Tour is a bookable experience. Localized fields are nil when neither the
// requested nor the default language provides a value.
type Tour struct {
	ID               int64   `json:"id"`
	Destination      string  `json:"destination"`
	Duration         string  `json:"duration"` // free text, e.g. "Full day"
	Price            *string `json:"price"`    // decimal string, nil when on request
	Type             string  `json:"type"`
	Image            string  `json:"image"`
	Title            *string `json:"title"`
	ShortDescription *string `json:"shortDescription"`
	FullDescription  *string `json:"fullDescription"`
}

type TeamMember struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Position int64  `json:"position"`
}

type CompanyValue struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int64  `json:"position"`
}

type Faq struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int64  `json:"position"`
}

type FaqTopic struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int64  `json:"position"`
}

type HeroSlide struct {
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Position int64  `json:"position"`
}

// NavigationItem is a site menu entry. Label is nil when unresolved.
type NavigationItem struct {
	Key      string  `json:"key"`
	Path     string  `json:"path"`
	Position int64   `json:"position"`
	IsCta    bool    `json:"isCta"`
	Label    *string `json:"label"`
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Texts maps text keys to resolved strings. Unresolved keys are absent.
type Texts map[string]string

// PageTexts lists the text keys a page needs.
type PageTexts struct {
	Page string   `json:"page"`
	Keys []string `json:"keys"`
}
