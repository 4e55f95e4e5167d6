// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides access to the Content Store: schema migrations,
// typed read queries and the seeder.
package store

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries holds the typed read queries of the Content Store.
type Queries struct {
	db DBTX
}

// WithTx returns a copy of q that runs inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// expandSlice replaces the /*SLICE:name*/? marker in query with one
// placeholder per value. An empty slice matches nothing.
func expandSlice(query, name string, values []string, args []any) (string, []any) {
	marker := "/*SLICE:" + name + "*/?"
	if len(values) == 0 {
		return strings.Replace(query, marker, "NULL", 1), args
	}
	for _, v := range values {
		args = append(args, v)
	}
	return strings.Replace(query, marker, strings.Repeat(",?", len(values))[1:], 1), args
}
