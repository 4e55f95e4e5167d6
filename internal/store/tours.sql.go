// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listTours = `-- name: ListTours :many
SELECT id, destination, duration, price, type, image
FROM tours
ORDER BY id ASC
`

func (q *Queries) ListTours(ctx context.Context) ([]Tour, error) {
	rows, err := q.db.QueryContext(ctx, listTours)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Tour{}
	for rows.Next() {
		var i Tour
		if err := rows.Scan(
			&i.ID,
			&i.Destination,
			&i.Duration,
			&i.Price,
			&i.Type,
			&i.Image,
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

const listTourI18n = `-- name: ListTourI18n :many
SELECT tour_id, lang_code, title, short_description, full_description
FROM tour_i18n
WHERE lang_code IN (/*SLICE:langs*/?)
`

// ListTourI18n returns the localized rows of every tour for the given languages.
func (q *Queries) ListTourI18n(ctx context.Context, langs []string) ([]TourI18n, error) {
	query, args := expandSlice(listTourI18n, "langs", langs, nil)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []TourI18n{}
	for rows.Next() {
		var i TourI18n
		if err := rows.Scan(
			&i.TourID,
			&i.LangCode,
			&i.Title,
			&i.ShortDescription,
			&i.FullDescription,
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
