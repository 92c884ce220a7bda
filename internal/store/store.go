// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements PostgreSQL persistence for content records,
// categories and revisions. All queries are plain SQL over database/sql with
// the pgx driver; dynamic listings are assembled with go-sqlbuilder.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Store-level errors. Callers compare with errors.Is.
var (
	// ErrNotFound is returned when no row matches the given key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference is returned when a foreign key points at a row
	// that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == "23505"
}

// isForeignKeyViolation reports whether err is a PostgreSQL
// foreign_key_violation.
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == "23503"
}

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// textArray adapts a *[]string to database/sql scanning of TEXT[] columns.
// pgtype.Map is not safe for concurrent use, so each query gets its own.
func textArray(m *pgtype.Map, dst *[]string) sql.Scanner {
	return m.SQLScanner(dst)
}

// nullJSON converts an optional JSON document into a query argument that
// encodes as SQL NULL when empty.
func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// rawJSON copies scanned JSONB bytes so they do not alias driver buffers.
func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}

// nonNil guarantees an empty array rather than NULL for TEXT[] columns.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
