// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the content lifecycle and query logic. It validates
// input, stamps lifecycle timestamps and translates store errors into the
// NotFound/Conflict/Validation taxonomy the HTTP layer understands.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"b3cms/internal/models"
	"b3cms/internal/slug"
)

const (
	// DefaultTagLimit is the result size of GetByTags when none is given.
	DefaultTagLimit = 10
	// DefaultRelatedLimit is the result size of GetRelated when none is given.
	DefaultRelatedLimit = 5
)

// CreateContentInput carries the fields accepted when creating content.
// Zero values fall back to defaults: slug from title, type blog_post,
// status draft, indexable true.
type CreateContentInput struct {
	Title           string               `json:"title"`
	Slug            string               `json:"slug"`
	Excerpt         string               `json:"excerpt"`
	Body            string               `json:"body"`
	StructuredBody  json.RawMessage      `json:"structuredBody"`
	Type            models.ContentType   `json:"type"`
	Status          models.ContentStatus `json:"status"`
	Tags            []string             `json:"tags"`
	CategoryID      *uuid.UUID           `json:"categoryId"`
	AuthorID        *uuid.UUID           `json:"authorId"`
	AuthorName      string               `json:"authorName"`
	MetaTitle       string               `json:"metaTitle"`
	MetaDescription string               `json:"metaDescription"`
	MetaKeywords    []string             `json:"metaKeywords"`
	CanonicalURL    string               `json:"canonicalUrl"`
	Indexable       *bool                `json:"indexable"`
	ScheduledAt     *time.Time           `json:"scheduledAt"`
}

// UpdateContentInput is a partial update. Nil fields are left unchanged.
type UpdateContentInput struct {
	Title           *string               `json:"title"`
	Slug            *string               `json:"slug"`
	Excerpt         *string               `json:"excerpt"`
	Body            *string               `json:"body"`
	StructuredBody  json.RawMessage       `json:"structuredBody"`
	Type            *models.ContentType   `json:"type"`
	Status          *models.ContentStatus `json:"status"`
	Tags            []string              `json:"tags"`
	CategoryID      *uuid.UUID            `json:"categoryId"`
	AuthorID        *uuid.UUID            `json:"authorId"`
	AuthorName      *string               `json:"authorName"`
	MetaTitle       *string               `json:"metaTitle"`
	MetaDescription *string               `json:"metaDescription"`
	MetaKeywords    []string              `json:"metaKeywords"`
	CanonicalURL    *string               `json:"canonicalUrl"`
	Indexable       *bool                 `json:"indexable"`
	PublishedAt     *time.Time            `json:"publishedAt"`
	ScheduledAt     *time.Time            `json:"scheduledAt"`
}

// ContentService implements content queries and lifecycle transitions.
type ContentService struct {
	repo       ContentRepository
	categories CategoryRepository
	cache      ListingCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewContentService creates a ContentService. When categories is nil the
// categoryId of incoming content is not checked. cache may be nil.
func NewContentService(repo ContentRepository, categories CategoryRepository, cache ListingCache, logger *slog.Logger) *ContentService {
	if cache == nil {
		cache = noCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		repo:       repo,
		categories: categories,
		cache:      cache,
		logger:     logger.With(slog.String("component", "content_service")),
		now:        time.Now,
	}
}

// FindAll returns a filtered, sorted page of content of any status.
func (s *ContentService) FindAll(ctx context.Context, filter models.ContentFilter, p models.Pagination) (*models.ContentPage, error) {
	if err := validatePagination(p); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, validationError("unknown content type %q", filter.Type)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, validationError("unknown content status %q", filter.Status)
	}
	return s.list(ctx, models.ContentQuery{Filter: filter, Pagination: p.Normalize()})
}

// FindPublished returns live content, newest publication first. Records
// marked published with a future publishedAt are excluded.
func (s *ContentService) FindPublished(ctx context.Context, contentType models.ContentType, p models.Pagination) (*models.ContentPage, error) {
	if contentType != "" && !contentType.Valid() {
		return nil, validationError("unknown content type %q", contentType)
	}
	p = p.Normalize()
	p.SortBy = models.SortByPublishedAt
	p.SortOrder = models.SortDesc

	key := fmt.Sprintf("published:type=%s:page=%d:limit=%d", contentType, p.Page, p.Limit)
	if page, ok := s.cache.Get(ctx, key); ok {
		return page, nil
	}

	now := s.now()
	page, err := s.list(ctx, models.ContentQuery{
		Filter:          models.ContentFilter{Type: contentType},
		Pagination:      p,
		PublishedBefore: &now,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, page)
	return page, nil
}

func (s *ContentService) list(ctx context.Context, q models.ContentQuery) (*models.ContentPage, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return &models.ContentPage{
		Data:  items,
		Total: total,
		Page:  q.Pagination.Page,
		Limit: q.Pagination.Limit,
	}, nil
}

// FindOne returns the record with the given id.
func (s *ContentService) FindOne(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// FindBySlug returns the record with the given slug after counting one view.
// The returned record already includes that view.
func (s *ContentService) FindBySlug(ctx context.Context, slug string) (*models.Content, error) {
	c, err := s.repo.IncrementViewCount(ctx, slug)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// GetByTags returns published records sharing at least one of tags, newest
// first.
func (s *ContentService) GetByTags(ctx context.Context, tags []string, limit int) ([]models.Content, error) {
	tags = models.NormalizeTags(tags)
	if len(tags) == 0 {
		return []models.Content{}, nil
	}
	items, err := s.repo.ListByTags(ctx, models.TagQuery{
		Tags:  tags,
		Limit: clampLimit(limit, DefaultTagLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("get content by tags: %w", err)
	}
	return items, nil
}

// GetRelated returns other published records of the same type sharing a tag
// with id, newest first. A record without tags has no related content.
func (s *ContentService) GetRelated(ctx context.Context, id uuid.UUID, limit int) ([]models.Content, error) {
	src, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if len(src.Tags) == 0 {
		return []models.Content{}, nil
	}
	items, err := s.repo.ListByTags(ctx, models.TagQuery{
		Tags:      src.Tags,
		Type:      src.Type,
		ExcludeID: &src.ID,
		Limit:     clampLimit(limit, DefaultRelatedLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("get related content: %w", err)
	}
	return items, nil
}

func clampLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	return min(limit, models.MaxLimit)
}

// Create stores a new record. The slug is derived from the title when not
// supplied. Content created as published gets publishedAt set to now.
func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (*models.Content, error) {
	c := &models.Content{
		Title:           in.Title,
		Slug:            in.Slug,
		Excerpt:         in.Excerpt,
		Body:            in.Body,
		StructuredBody:  in.StructuredBody,
		Type:            in.Type,
		Status:          in.Status,
		Tags:            models.NormalizeTags(in.Tags),
		CategoryID:      in.CategoryID,
		AuthorID:        in.AuthorID,
		AuthorName:      in.AuthorName,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		MetaKeywords:    models.NormalizeTags(in.MetaKeywords),
		CanonicalURL:    in.CanonicalURL,
		Indexable:       true,
		ScheduledAt:     in.ScheduledAt,
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Title)
	}
	if c.Type == "" {
		c.Type = models.ContentTypeBlogPost
	}
	if c.Status == "" {
		c.Status = models.ContentStatusDraft
	}
	if in.Indexable != nil {
		c.Indexable = *in.Indexable
	}
	if c.Status == models.ContentStatusPublished {
		now := s.now()
		c.PublishedAt = &now
	}
	if err := validateContent(c); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, c.CategoryID); err != nil {
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, c.Slug, nil); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, translate(err)
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("content created", "id", created.ID, "slug", created.Slug, "status", created.Status)
	return created, nil
}

// Update applies a partial update. Moving into published from any other
// status stamps publishedAt with the current time, overriding a supplied
// value. Version is incremented by the store.
func (s *ContentService) Update(ctx context.Context, id uuid.UUID, in UpdateContentInput) (*models.Content, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	next := *cur
	applyPatch(&next, in)

	if next.Slug != cur.Slug {
		if err := s.ensureSlugFree(ctx, next.Slug, &cur.ID); err != nil {
			return nil, err
		}
	}
	if next.Status == models.ContentStatusPublished && cur.Status != models.ContentStatusPublished {
		now := s.now()
		next.PublishedAt = &now
	}
	if err := validateContent(&next); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, translate(err)
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("content updated", "id", updated.ID, "version", updated.Version)
	return updated, nil
}

// applyPatch copies every supplied field of in onto c.
func applyPatch(c *models.Content, in UpdateContentInput) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Slug != nil {
		c.Slug = *in.Slug
	}
	if in.Excerpt != nil {
		c.Excerpt = *in.Excerpt
	}
	if in.Body != nil {
		c.Body = *in.Body
	}
	if in.StructuredBody != nil {
		c.StructuredBody = in.StructuredBody
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Tags != nil {
		c.Tags = models.NormalizeTags(in.Tags)
	}
	if in.CategoryID != nil {
		c.CategoryID = in.CategoryID
	}
	if in.AuthorID != nil {
		c.AuthorID = in.AuthorID
	}
	if in.AuthorName != nil {
		c.AuthorName = *in.AuthorName
	}
	if in.MetaTitle != nil {
		c.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		c.MetaDescription = *in.MetaDescription
	}
	if in.MetaKeywords != nil {
		c.MetaKeywords = models.NormalizeTags(in.MetaKeywords)
	}
	if in.CanonicalURL != nil {
		c.CanonicalURL = *in.CanonicalURL
	}
	if in.Indexable != nil {
		c.Indexable = *in.Indexable
	}
	if in.PublishedAt != nil {
		c.PublishedAt = in.PublishedAt
	}
	if in.ScheduledAt != nil {
		c.ScheduledAt = in.ScheduledAt
	}
}

// checkCategory rejects a categoryId that names no category.
func (s *ContentService) checkCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil || s.categories == nil {
		return nil
	}
	_, err := s.categories.FindByID(ctx, *id)
	if err == nil {
		return nil
	}
	if errors.Is(translate(err), ErrNotFound) {
		return validationError("category %s does not exist", *id)
	}
	return fmt.Errorf("find category: %w", err)
}

// ensureSlugFree is the friendly pre-check; the store's unique constraint
// still catches races and surfaces them as ErrConflict.
func (s *ContentService) ensureSlugFree(ctx context.Context, slug string, exclude *uuid.UUID) error {
	taken, err := s.repo.SlugTaken(ctx, slug, exclude)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return fmt.Errorf("%w: slug %q already exists", ErrConflict, slug)
	}
	return nil
}

// Publish sets status to published and stamps publishedAt with the current
// time on every call.
func (s *ContentService) Publish(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	now := s.now()
	return s.transition(ctx, id, models.StatusChange{
		Status:      models.ContentStatusPublished,
		PublishedAt: &now,
	})
}

// Unpublish moves the record back to draft. publishedAt is kept.
func (s *ContentService) Unpublish(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	return s.transition(ctx, id, models.StatusChange{Status: models.ContentStatusDraft})
}

// Archive sets status to archived.
func (s *ContentService) Archive(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	return s.transition(ctx, id, models.StatusChange{Status: models.ContentStatusArchived})
}

// Schedule sets status to scheduled with the given publication time.
func (s *ContentService) Schedule(ctx context.Context, id uuid.UUID, at time.Time) (*models.Content, error) {
	if at.IsZero() {
		return nil, validationError("scheduledAt is required")
	}
	return s.transition(ctx, id, models.StatusChange{
		Status:      models.ContentStatusScheduled,
		ScheduledAt: &at,
	})
}

func (s *ContentService) transition(ctx context.Context, id uuid.UUID, change models.StatusChange) (*models.Content, error) {
	c, err := s.repo.SetStatus(ctx, id, change)
	if err != nil {
		return nil, translate(err)
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("content status changed", "id", c.ID, "status", c.Status, "version", c.Version)
	return c, nil
}

// IncrementShareCount counts one share of id. No other field changes.
func (s *ContentService) IncrementShareCount(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.IncrementShareCount(ctx, id))
}

// Remove hard-deletes the record.
func (s *ContentService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.cache.InvalidateAll(ctx)
	s.logger.Info("content deleted", "id", id)
	return nil
}

// PublishDue publishes every scheduled record whose scheduledAt has passed
// and returns how many were published. Records archived, unpublished or
// rescheduled after the listing are skipped. A failure stops the run;
// records already published stay published.
func (s *ContentService) PublishDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.repo.ListDueScheduled(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due content: %w", err)
	}

	published := 0
	for _, c := range due {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		_, err := s.repo.PublishScheduled(ctx, c.ID, now)
		if err = translate(err); errors.Is(err, ErrNotFound) {
			s.logger.Debug("scheduled content skipped", "id", c.ID, "slug", c.Slug)
			continue
		}
		if err != nil {
			return published, fmt.Errorf("publish scheduled %s: %w", c.ID, err)
		}
		published++
		s.logger.Info("scheduled content published", "id", c.ID, "slug", c.Slug, "scheduled_at", c.ScheduledAt)
	}
	if published > 0 {
		s.cache.InvalidateAll(ctx)
	}
	return published, nil
}

// Revisions returns the snapshots taken before each update, newest first.
func (s *ContentService) Revisions(ctx context.Context, id uuid.UUID) ([]models.ContentRevision, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, translate(err)
	}
	revs, err := s.repo.Revisions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return revs, nil
}

// StatusCounts returns how many records exist in each status. Statuses with
// no records are reported as zero.
func (s *ContentService) StatusCounts(ctx context.Context) (map[models.ContentStatus]int, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count content: %w", err)
	}
	for _, st := range []models.ContentStatus{
		models.ContentStatusDraft,
		models.ContentStatusPublished,
		models.ContentStatusArchived,
		models.ContentStatusScheduled,
	} {
		if _, ok := counts[st]; !ok {
			counts[st] = 0
		}
	}
	return counts, nil
}
