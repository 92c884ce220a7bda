// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"b3cms/internal/models"
)

// revisionColumns lists all columns for content_revisions SELECTs.
const revisionColumns = `id, content_id, version, title, slug, excerpt, body,
	structured_body, status, tags, created_at`

// Revisions returns the snapshots recorded for a content item, newest first.
// Snapshots are written by ContentStore.Update.
func (s *ContentStore) Revisions(ctx context.Context, contentID uuid.UUID) ([]models.ContentRevision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+revisionColumns+`
		FROM content_revisions
		WHERE content_id = $1
		ORDER BY version DESC, created_at DESC
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	revisions := []models.ContentRevision{}
	for rows.Next() {
		var (
			r          models.ContentRevision
			structured []byte
		)
		err := rows.Scan(
			&r.ID, &r.ContentID, &r.Version, &r.Title, &r.Slug, &r.Excerpt, &r.Body,
			&structured, &r.Status, textArray(m, &r.Tags), &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		r.StructuredBody = rawJSON(structured)
		r.Tags = nonNil(r.Tags)
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}
