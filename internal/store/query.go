// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"

	"b3cms/internal/models"
)

// sortColumns maps API sort fields to SQL columns. Anything not listed is
// rejected so user input never reaches ORDER BY.
var sortColumns = map[models.SortField]string{
	models.SortByCreatedAt:   "created_at",
	models.SortByUpdatedAt:   "updated_at",
	models.SortByPublishedAt: "published_at",
	models.SortByTitle:       "title",
	models.SortBySlug:        "slug",
	models.SortByViewCount:   "view_count",
	models.SortByShareCount:  "share_count",
	models.SortByVersion:     "version",
}

// likeEscaper escapes LIKE wildcards in user-supplied search text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyContentFilter adds the ANDed filter conditions of q to sb.
func applyContentFilter(sb *sqlbuilder.SelectBuilder, q models.ContentQuery) {
	f := q.Filter
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		sb.Where(sb.Or(
			sb.Like("LOWER(title)", pattern),
			sb.Like("LOWER(excerpt)", pattern),
		))
	}
	if f.Type != "" {
		sb.Where(sb.Equal("type", string(f.Type)))
	}
	if f.Status != "" {
		sb.Where(sb.Equal("status", string(f.Status)))
	}
	if f.AuthorID != nil {
		sb.Where(sb.Equal("author_id", *f.AuthorID))
	}
	if f.CategoryID != nil {
		sb.Where(sb.Equal("category_id", *f.CategoryID))
	}
	if q.PublishedBefore != nil {
		sb.Where(
			sb.Equal("status", string(models.ContentStatusPublished)),
			sb.IsNotNull("published_at"),
			sb.LessEqualThan("published_at", *q.PublishedBefore),
		)
	}
}

// buildContentCount returns the COUNT(*) query for q, ignoring pagination.
func buildContentCount(q models.ContentQuery) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(*)").From("content")
	applyContentFilter(sb, q)
	return sb.Build()
}

// buildContentList returns the paged SELECT for q. q.Pagination must already
// be normalized.
func buildContentList(q models.ContentQuery) (string, []any, error) {
	p := q.Pagination
	col, ok := sortColumns[p.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort field %q", p.SortBy)
	}
	dir := "DESC"
	if p.SortOrder == models.SortAsc {
		dir = "ASC"
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(contentColumns).From("content")
	applyContentFilter(sb, q)
	sb.OrderBy(col+" "+dir+" NULLS LAST", "id "+dir)
	sb.Limit(p.Limit).Offset(p.Offset())

	query, args := sb.Build()
	return query, args, nil
}

// buildTagQuery returns the SELECT for published content sharing a tag.
func buildTagQuery(q models.TagQuery) (string, []any) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(contentColumns).From("content")
	sb.Where(
		sb.Equal("status", string(models.ContentStatusPublished)),
		"tags && "+sb.Var(q.Tags)+"::text[]",
	)
	if q.Type != "" {
		sb.Where(sb.Equal("type", string(q.Type)))
	}
	if q.ExcludeID != nil {
		sb.Where(sb.NotEqual("id", *q.ExcludeID))
	}
	sb.OrderBy("published_at DESC NULLS LAST", "created_at DESC", "id DESC")
	limit := q.Limit
	if limit < 1 {
		limit = models.DefaultLimit
	}
	sb.Limit(limit)
	return sb.Build()
}
