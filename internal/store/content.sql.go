// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listActiveTeamMembers = `-- name: ListActiveTeamMembers :many
SELECT id, name, role, bio, image, position
FROM team_members
WHERE is_active = TRUE
ORDER BY position ASC, id ASC
`

func (q *Queries) ListActiveTeamMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listActiveTeamMembers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []TeamMember{}
	for rows.Next() {
		var i TeamMember
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Role,
			&i.Bio,
			&i.Image,
			&i.Position,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listActiveCompanyValues = `-- name: ListActiveCompanyValues :many
SELECT id, title, description, icon, position
FROM company_values
WHERE is_active = TRUE
ORDER BY position ASC, id ASC
`

func (q *Queries) ListActiveCompanyValues(ctx context.Context) ([]CompanyValue, error) {
	rows, err := q.db.QueryContext(ctx, listActiveCompanyValues)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []CompanyValue{}
	for rows.Next() {
		var i CompanyValue
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.Icon,
			&i.Position,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listActiveFaqs = `-- name: ListActiveFaqs :many
SELECT id, question, answer, position
FROM faqs
WHERE is_active = TRUE
ORDER BY position ASC, id ASC
`

func (q *Queries) ListActiveFaqs(ctx context.Context) ([]Faq, error) {
	rows, err := q.db.QueryContext(ctx, listActiveFaqs)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Faq{}
	for rows.Next() {
		var i Faq
		if err := rows.Scan(&i.ID, &i.Question, &i.Answer, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listActiveFaqTopics = `-- name: ListActiveFaqTopics :many
SELECT id, title, description, icon, position
FROM faq_topics
WHERE is_active = TRUE
ORDER BY position ASC, id ASC
`

func (q *Queries) ListActiveFaqTopics(ctx context.Context) ([]FaqTopic, error) {
	rows, err := q.db.QueryContext(ctx, listActiveFaqTopics)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []FaqTopic{}
	for rows.Next() {
		var i FaqTopic
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Description,
			&i.Icon,
			&i.Position,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listHeroSlides = `-- name: ListHeroSlides :many
SELECT id, image, position
FROM hero_slides
ORDER BY position ASC, id ASC
`

func (q *Queries) ListHeroSlides(ctx context.Context) ([]HeroSlide, error) {
	rows, err := q.db.QueryContext(ctx, listHeroSlides)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []HeroSlide{}
	for rows.Next() {
		var i HeroSlide
		if err := rows.Scan(&i.ID, &i.Image, &i.Position); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLanguages = `-- name: ListLanguages :many
SELECT code, name
FROM languages
ORDER BY code ASC
`

func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Language{}
	for rows.Next() {
		var i Language
		if err := rows.Scan(&i.Code, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
