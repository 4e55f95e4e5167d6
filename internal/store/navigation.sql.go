// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listNavigation = `-- name: ListNavigation :many
SELECT id, nav_key, path, position, is_cta
FROM navigation
ORDER BY position ASC, id ASC
`

func (q *Queries) ListNavigation(ctx context.Context) ([]Navigation, error) {
	rows, err := q.db.QueryContext(ctx, listNavigation)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Navigation{}
	for rows.Next() {
		var i Navigation
		if err := rows.Scan(
			&i.ID,
			&i.Key,
			&i.Path,
			&i.Position,
			&i.IsCta,
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

const listNavigationI18n = `-- name: ListNavigationI18n :many
SELECT nav_id, lang_code, label
FROM navigation_i18n
WHERE lang_code IN (/*SLICE:langs*/?)
`

func (q *Queries) ListNavigationI18n(ctx context.Context, langs []string) ([]NavigationI18n, error) {
	query, args := expandSlice(listNavigationI18n, "langs", langs, nil)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []NavigationI18n{}
	for rows.Next() {
		var i NavigationI18n
		if err := rows.Scan(&i.NavID, &i.LangCode, &i.Label); err != nil {
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
