// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"b3cms/internal/models"
)

// contentColumns lists all columns for content SELECT and RETURNING clauses.
const contentColumns = `id, slug, title, excerpt, body, structured_body, type, status,
	tags, category_id, author_id, author_name, meta_title, meta_description,
	meta_keywords, canonical_url, indexable, published_at, scheduled_at,
	view_count, share_count, version, parent_version_id, created_at, updated_at`

// ContentStore handles all content-related database operations.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// scanContent scans a single content row. m must not be shared across
// goroutines.
func scanContent(m *pgtype.Map, scanner rowScanner) (*models.Content, error) {
	var (
		c          models.Content
		structured []byte
	)
	err := scanner.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Excerpt, &c.Body, &structured,
		&c.Type, &c.Status, textArray(m, &c.Tags), &c.CategoryID,
		&c.AuthorID, &c.AuthorName, &c.MetaTitle, &c.MetaDescription,
		textArray(m, &c.MetaKeywords), &c.CanonicalURL, &c.Indexable,
		&c.PublishedAt, &c.ScheduledAt, &c.ViewCount, &c.ShareCount,
		&c.Version, &c.ParentVersionID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.StructuredBody = rawJSON(structured)
	c.Tags = nonNil(c.Tags)
	c.MetaKeywords = nonNil(c.MetaKeywords)
	return &c, nil
}

// queryContent runs a SELECT returning contentColumns and scans every row.
func (s *ContentStore) queryContent(ctx context.Context, query string, args ...any) ([]models.Content, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := pgtype.NewMap()
	items := []models.Content{}
	for rows.Next() {
		c, err := scanContent(m, rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns one page of content matching q plus the total match count.
func (s *ContentStore) List(ctx context.Context, q models.ContentQuery) ([]models.Content, int, error) {
	q.Pagination = q.Pagination.Normalize()

	countSQL, countArgs := buildContentCount(q)
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	listSQL, listArgs, err := buildContentList(q)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.queryContent(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	return items, total, nil
}

// ListByTags returns published content whose tags intersect q.Tags, newest
// first.
func (s *ContentStore) ListByTags(ctx context.Context, q models.TagQuery) ([]models.Content, error) {
	if len(q.Tags) == 0 {
		return []models.Content{}, nil
	}
	query, args := buildTagQuery(q)
	items, err := s.queryContent(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content by tags: %w", err)
	}
	return items, nil
}

// ListDueScheduled returns scheduled content whose scheduled_at is at or
// before now, oldest first.
func (s *ContentStore) ListDueScheduled(ctx context.Context, now time.Time) ([]models.Content, error) {
	items, err := s.queryContent(ctx, `
		SELECT `+contentColumns+`
		FROM content
		WHERE status = 'scheduled' AND scheduled_at IS NOT NULL AND scheduled_at <= $1
		ORDER BY scheduled_at ASC, id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list due scheduled content: %w", err)
	}
	return items, nil
}

// FindByID retrieves a content item by its UUID.
func (s *ContentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", notFound(err))
	}
	return c, nil
}

// FindBySlug retrieves a content item by its slug regardless of status.
func (s *ContentStore) FindBySlug(ctx context.Context, slug string) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content WHERE slug = $1`, slug)
	c, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", notFound(err))
	}
	return c, nil
}

// IncrementViewCount adds one view to the record with the given slug and
// returns the record as it is after the increment. The increment happens in
// a single UPDATE so concurrent readers never lose a view.
func (s *ContentStore) IncrementViewCount(ctx context.Context, slug string) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE content SET view_count = view_count + 1
		WHERE slug = $1
		RETURNING `+contentColumns, slug)
	c, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("increment view count: %w", notFound(err))
	}
	return c, nil
}

// IncrementShareCount adds one share to the record with the given id.
func (s *ContentStore) IncrementShareCount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE content SET share_count = share_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment share count: %w", err)
	}
	return requireOneRow(res, "increment share count")
}

// SlugTaken reports whether slug belongs to a record other than exclude.
func (s *ContentStore) SlugTaken(ctx context.Context, slug string, exclude *uuid.UUID) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM content WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))
	`, slug, exclude).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check content slug: %w", err)
	}
	return taken, nil
}

// Create inserts a new content item and returns it with generated fields.
// A slug collision caught by the unique constraint returns ErrConflict.
func (s *ContentStore) Create(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO content (slug, title, excerpt, body, structured_body, type, status,
		                     tags, category_id, author_id, author_name, meta_title,
		                     meta_description, meta_keywords, canonical_url, indexable,
		                     published_at, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+contentColumns,
		c.Slug, c.Title, c.Excerpt, c.Body, nullJSON(c.StructuredBody), string(c.Type), string(c.Status),
		nonNil(c.Tags), c.CategoryID, c.AuthorID, c.AuthorName, c.MetaTitle,
		c.MetaDescription, nonNil(c.MetaKeywords), c.CanonicalURL, c.Indexable,
		c.PublishedAt, c.ScheduledAt,
	)
	created, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create content %q: %w", c.Slug, ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("create content: category %s: %w", c.CategoryID, ErrInvalidReference)
		}
		return nil, fmt.Errorf("create content: %w", err)
	}
	return created, nil
}

// Update overwrites the editable fields of c.ID. Inside one transaction it
// snapshots the current row into content_revisions, points
// parent_version_id at that snapshot and bumps version by one in SQL.
func (s *ContentStore) Update(ctx context.Context, c *models.Content) (*models.Content, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	if err := tx.QueryRowContext(ctx, `SELECT id FROM content WHERE id = $1 FOR UPDATE`, c.ID).Scan(&locked); err != nil {
		return nil, fmt.Errorf("lock content: %w", notFound(err))
	}

	var revisionID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO content_revisions (content_id, version, title, slug, excerpt, body,
		                               structured_body, status, tags)
		SELECT id, version, title, slug, excerpt, body, structured_body, status, tags
		FROM content WHERE id = $1
		RETURNING id
	`, c.ID).Scan(&revisionID)
	if err != nil {
		return nil, fmt.Errorf("snapshot content revision: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE content SET
			slug = $1, title = $2, excerpt = $3, body = $4, structured_body = $5,
			type = $6, status = $7, tags = $8, category_id = $9, author_id = $10,
			author_name = $11, meta_title = $12, meta_description = $13,
			meta_keywords = $14, canonical_url = $15, indexable = $16,
			published_at = $17, scheduled_at = $18, parent_version_id = $19,
			version = version + 1, updated_at = NOW()
		WHERE id = $20
		RETURNING `+contentColumns,
		c.Slug, c.Title, c.Excerpt, c.Body, nullJSON(c.StructuredBody),
		string(c.Type), string(c.Status), nonNil(c.Tags), c.CategoryID, c.AuthorID,
		c.AuthorName, c.MetaTitle, c.MetaDescription,
		nonNil(c.MetaKeywords), c.CanonicalURL, c.Indexable,
		c.PublishedAt, c.ScheduledAt, revisionID, c.ID,
	)
	updated, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update content %q: %w", c.Slug, ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("update content: category %s: %w", c.CategoryID, ErrInvalidReference)
		}
		return nil, fmt.Errorf("update content: %w", notFound(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit content update: %w", err)
	}
	return updated, nil
}

// SetStatus applies a lifecycle transition and bumps version by one.
func (s *ContentStore) SetStatus(ctx context.Context, id uuid.UUID, change models.StatusChange) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE content SET
			status = $1,
			published_at = COALESCE($2, published_at),
			scheduled_at = COALESCE($3, scheduled_at),
			version = version + 1,
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+contentColumns,
		string(change.Status), change.PublishedAt, change.ScheduledAt, id,
	)
	c, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("set content status: %w", notFound(err))
	}
	return c, nil
}

// PublishScheduled publishes id only if it is still scheduled and due at
// now. ErrNotFound means the record is gone or no longer qualifies.
func (s *ContentStore) PublishScheduled(ctx context.Context, id uuid.UUID, now time.Time) (*models.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE content SET
			status = 'published',
			published_at = $2,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND status = 'scheduled' AND scheduled_at <= $2
		RETURNING `+contentColumns,
		id, now,
	)
	c, err := scanContent(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("publish scheduled content: %w", notFound(err))
	}
	return c, nil
}

// Delete removes a content item by ID.
func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return requireOneRow(res, "delete content")
}

// CountByStatus returns how many records exist in each status.
func (s *ContentStore) CountByStatus(ctx context.Context) (map[models.ContentStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM content GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count content by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ContentStatus]int)
	for rows.Next() {
		var (
			status models.ContentStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// requireOneRow turns a zero-row result into ErrNotFound.
func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
