// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memory provides in-memory implementations of the content and
// category stores. They mirror the PostgreSQL stores' semantics, including
// slug uniqueness, atomic counters and revision snapshots, and are used for
// development without a database and in service tests.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"b3cms/internal/models"
	"b3cms/internal/store"
)

// ContentStore is a map-backed content store safe for concurrent use.
type ContentStore struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]*models.Content
	slugs     map[string]uuid.UUID
	revisions map[uuid.UUID][]models.ContentRevision
	now       func() time.Time
}

// Option configures a memory store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewContentStore returns an empty ContentStore.
func NewContentStore(opts ...Option) *ContentStore {
	o := buildOptions(opts)
	return &ContentStore{
		items:     make(map[uuid.UUID]*models.Content),
		slugs:     make(map[string]uuid.UUID),
		revisions: make(map[uuid.UUID][]models.ContentRevision),
		now:       o.now,
	}
}

// clone returns a deep copy so callers never share slices with the store.
func clone(c *models.Content) *models.Content {
	out := *c
	out.Tags = slices.Clone(nonNil(c.Tags))
	out.MetaKeywords = slices.Clone(nonNil(c.MetaKeywords))
	out.StructuredBody = slices.Clone(c.StructuredBody)
	return &out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// List returns one page of content matching q plus the total match count.
func (s *ContentStore) List(_ context.Context, q models.ContentQuery) ([]models.Content, int, error) {
	q.Pagination = q.Pagination.Normalize()
	p := q.Pagination
	if !p.SortBy.Valid() {
		return nil, 0, fmt.Errorf("unsupported sort field %q", p.SortBy)
	}

	s.mu.RLock()
	var matched []*models.Content
	for _, c := range s.items {
		if matches(c, q) {
			matched = append(matched, clone(c))
		}
	}
	s.mu.RUnlock()

	desc := p.SortOrder != models.SortAsc
	slices.SortFunc(matched, func(a, b *models.Content) int {
		return compareBy(a, b, p.SortBy, desc)
	})

	total := len(matched)
	start := min(p.Offset(), total)
	end := min(start+p.Limit, total)

	page := make([]models.Content, 0, end-start)
	for _, c := range matched[start:end] {
		page = append(page, *c)
	}
	return page, total, nil
}

// matches applies the ANDed filter conditions of q to c.
func matches(c *models.Content, q models.ContentQuery) bool {
	f := q.Filter
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Excerpt), needle) {
			return false
		}
	}
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.AuthorID != nil && (c.AuthorID == nil || *c.AuthorID != *f.AuthorID) {
		return false
	}
	if f.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *f.CategoryID) {
		return false
	}
	if q.PublishedBefore != nil && !c.IsLive(*q.PublishedBefore) {
		return false
	}
	return true
}

// compareBy orders a and b by field with id as the tie-breaker.
func compareBy(a, b *models.Content, field models.SortField, desc bool) int {
	r := compareField(a, b, field, desc)
	if r != 0 {
		return r
	}
	r = cmp.Compare(a.ID.String(), b.ID.String())
	if desc {
		return -r
	}
	return r
}

// compareField orders a and b by a single field. Missing published_at
// values sort last in either direction.
func compareField(a, b *models.Content, field models.SortField, desc bool) int {
	var r int
	switch field {
	case models.SortByPublishedAt:
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			r = 0
		case a.PublishedAt == nil:
			return 1
		case b.PublishedAt == nil:
			return -1
		default:
			r = a.PublishedAt.Compare(*b.PublishedAt)
		}
	case models.SortByUpdatedAt:
		r = a.UpdatedAt.Compare(b.UpdatedAt)
	case models.SortByTitle:
		r = cmp.Compare(a.Title, b.Title)
	case models.SortBySlug:
		r = cmp.Compare(a.Slug, b.Slug)
	case models.SortByViewCount:
		r = cmp.Compare(a.ViewCount, b.ViewCount)
	case models.SortByShareCount:
		r = cmp.Compare(a.ShareCount, b.ShareCount)
	case models.SortByVersion:
		r = cmp.Compare(a.Version, b.Version)
	default:
		r = a.CreatedAt.Compare(b.CreatedAt)
	}
	if desc {
		return -r
	}
	return r
}

// ListByTags returns published content whose tags intersect q.Tags, newest
// first.
func (s *ContentStore) ListByTags(_ context.Context, q models.TagQuery) ([]models.Content, error) {
	if len(q.Tags) == 0 {
		return []models.Content{}, nil
	}

	s.mu.RLock()
	var matched []*models.Content
	for _, c := range s.items {
		if !c.IsPublished() || !c.HasAnyTag(q.Tags) {
			continue
		}
		if q.Type != "" && c.Type != q.Type {
			continue
		}
		if q.ExcludeID != nil && c.ID == *q.ExcludeID {
			continue
		}
		matched = append(matched, clone(c))
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *models.Content) int {
		if r := compareField(a, b, models.SortByPublishedAt, true); r != 0 {
			return r
		}
		return compareBy(a, b, models.SortByCreatedAt, true)
	})

	limit := q.Limit
	if limit < 1 {
		limit = models.DefaultLimit
	}
	out := make([]models.Content, 0, min(limit, len(matched)))
	for _, c := range matched[:min(limit, len(matched))] {
		out = append(out, *c)
	}
	return out, nil
}

// ListDueScheduled returns scheduled content whose scheduledAt is at or
// before now, oldest first.
func (s *ContentStore) ListDueScheduled(_ context.Context, now time.Time) ([]models.Content, error) {
	s.mu.RLock()
	var due []models.Content
	for _, c := range s.items {
		if c.Status == models.ContentStatusScheduled && c.ScheduledAt != nil && !c.ScheduledAt.After(now) {
			due = append(due, *clone(c))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(due, func(a, b models.Content) int {
		if r := a.ScheduledAt.Compare(*b.ScheduledAt); r != 0 {
			return r
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return due, nil
}

// FindByID retrieves a content item by its UUID.
func (s *ContentStore) FindByID(_ context.Context, id uuid.UUID) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("find content by id: %w", store.ErrNotFound)
	}
	return clone(c), nil
}

// FindBySlug retrieves a content item by its slug regardless of status.
func (s *ContentStore) FindBySlug(_ context.Context, slug string) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	if !ok {
		return nil, fmt.Errorf("find content by slug: %w", store.ErrNotFound)
	}
	return clone(s.items[id]), nil
}

// IncrementViewCount adds one view to the record with the given slug and
// returns the record after the increment.
func (s *ContentStore) IncrementViewCount(_ context.Context, slug string) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.slugs[slug]
	if !ok {
		return nil, fmt.Errorf("increment view count: %w", store.ErrNotFound)
	}
	c := s.items[id]
	c.ViewCount++
	return clone(c), nil
}

// IncrementShareCount adds one share to the record with the given id.
func (s *ContentStore) IncrementShareCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return fmt.Errorf("increment share count: %w", store.ErrNotFound)
	}
	c.ShareCount++
	return nil
}

// SlugTaken reports whether slug belongs to a record other than exclude.
func (s *ContentStore) SlugTaken(_ context.Context, slug string, exclude *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	if !ok {
		return false, nil
	}
	return exclude == nil || id != *exclude, nil
}

// Create inserts a new content item.
func (s *ContentStore) Create(_ context.Context, c *models.Content) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slugs[c.Slug]; taken {
		return nil, fmt.Errorf("create content %q: %w", c.Slug, store.ErrConflict)
	}

	now := s.now()
	stored := clone(c)
	stored.ID = uuid.New()
	stored.Version = 1
	stored.ViewCount = 0
	stored.ShareCount = 0
	stored.ParentVersionID = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.items[stored.ID] = stored
	s.slugs[stored.Slug] = stored.ID
	return clone(stored), nil
}

// Update overwrites the editable fields of c.ID, snapshotting the previous
// state as a revision and bumping version by one.
func (s *ContentStore) Update(_ context.Context, c *models.Content) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[c.ID]
	if !ok {
		return nil, fmt.Errorf("update content: %w", store.ErrNotFound)
	}
	if owner, taken := s.slugs[c.Slug]; taken && owner != c.ID {
		return nil, fmt.Errorf("update content %q: %w", c.Slug, store.ErrConflict)
	}

	now := s.now()
	rev := models.NewRevision(cur)
	rev.ID = uuid.New()
	rev.CreatedAt = now
	s.revisions[c.ID] = append(s.revisions[c.ID], rev)

	next := clone(c)
	next.ViewCount = cur.ViewCount
	next.ShareCount = cur.ShareCount
	next.CreatedAt = cur.CreatedAt
	next.Version = cur.Version + 1
	next.ParentVersionID = &rev.ID
	next.UpdatedAt = now

	delete(s.slugs, cur.Slug)
	s.slugs[next.Slug] = next.ID
	s.items[next.ID] = next
	return clone(next), nil
}

// SetStatus applies a lifecycle transition and bumps version by one.
func (s *ContentStore) SetStatus(_ context.Context, id uuid.UUID, change models.StatusChange) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("set content status: %w", store.ErrNotFound)
	}
	c.Status = change.Status
	if change.PublishedAt != nil {
		t := *change.PublishedAt
		c.PublishedAt = &t
	}
	if change.ScheduledAt != nil {
		t := *change.ScheduledAt
		c.ScheduledAt = &t
	}
	c.Version++
	c.UpdatedAt = s.now()
	return clone(c), nil
}

// PublishScheduled publishes id only if it is still scheduled and due at
// now. ErrNotFound means the record is gone or no longer qualifies.
func (s *ContentStore) PublishScheduled(_ context.Context, id uuid.UUID, now time.Time) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok || c.Status != models.ContentStatusScheduled || c.ScheduledAt == nil || c.ScheduledAt.After(now) {
		return nil, fmt.Errorf("publish scheduled content: %w", store.ErrNotFound)
	}
	published := now
	c.Status = models.ContentStatusPublished
	c.PublishedAt = &published
	c.Version++
	c.UpdatedAt = s.now()
	return clone(c), nil
}

// Delete removes a content item and its revisions.
func (s *ContentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return fmt.Errorf("delete content: %w", store.ErrNotFound)
	}
	delete(s.slugs, c.Slug)
	delete(s.items, id)
	delete(s.revisions, id)
	return nil
}

// Revisions returns the snapshots recorded for a content item, newest first.
func (s *ContentStore) Revisions(_ context.Context, contentID uuid.UUID) ([]models.ContentRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.revisions[contentID]
	out := make([]models.ContentRevision, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		r := src[i]
		r.Tags = slices.Clone(r.Tags)
		out = append(out, r)
	}
	return out, nil
}

// CountByStatus returns how many records exist in each status.
func (s *ContentStore) CountByStatus(_ context.Context) (map[models.ContentStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.ContentStatus]int)
	for _, c := range s.items {
		counts[c.Status]++
	}
	return counts, nil
}
