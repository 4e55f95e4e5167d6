// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listTextValues = `-- name: ListTextValues :many
SELECT t.text_key, tr.lang_code, tr.value
FROM texts t
JOIN translations tr ON tr.text_id = t.id
WHERE t.text_key IN (/*SLICE:keys*/?)
  AND tr.lang_code IN (/*SLICE:langs*/?)
`

// ListTextValues returns the translations of the given keys in the given
// languages. Keys without any matching translation produce no rows.
func (q *Queries) ListTextValues(ctx context.Context, keys, langs []string) ([]TextValue, error) {
	query, args := expandSlice(listTextValues, "keys", keys, nil)
	query, args = expandSlice(query, "langs", langs, args)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []TextValue{}
	for rows.Next() {
		var i TextValue
		if err := rows.Scan(&i.Key, &i.LangCode, &i.Value); err != nil {
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

const listTextKeys = `-- name: ListTextKeys :many
SELECT text_key FROM texts ORDER BY text_key ASC
`

func (q *Queries) ListTextKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listTextKeys)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		items = append(items, key)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
