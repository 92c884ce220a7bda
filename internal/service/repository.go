// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"b3cms/internal/models"
)

// ContentRepository is the persistence contract of ContentService. Both
// store.ContentStore (PostgreSQL) and memory.ContentStore satisfy it.
type ContentRepository interface {
	List(ctx context.Context, q models.ContentQuery) ([]models.Content, int, error)
	ListByTags(ctx context.Context, q models.TagQuery) ([]models.Content, error)
	ListDueScheduled(ctx context.Context, now time.Time) ([]models.Content, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	FindBySlug(ctx context.Context, slug string) (*models.Content, error)
	IncrementViewCount(ctx context.Context, slug string) (*models.Content, error)
	IncrementShareCount(ctx context.Context, id uuid.UUID) error
	SlugTaken(ctx context.Context, slug string, exclude *uuid.UUID) (bool, error)
	Create(ctx context.Context, c *models.Content) (*models.Content, error)
	Update(ctx context.Context, c *models.Content) (*models.Content, error)
	SetStatus(ctx context.Context, id uuid.UUID, change models.StatusChange) (*models.Content, error)
	PublishScheduled(ctx context.Context, id uuid.UUID, now time.Time) (*models.Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Revisions(ctx context.Context, contentID uuid.UUID) ([]models.ContentRevision, error)
	CountByStatus(ctx context.Context) (map[models.ContentStatus]int, error)
}

// CategoryRepository is the persistence contract of CategoryService.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	NextSortOrder(ctx context.Context, parentID *uuid.UUID) (int, error)
}

// ListingCache caches published listing pages. cache.ListingCache is the
// Valkey implementation. Failures must degrade to misses.
type ListingCache interface {
	Get(ctx context.Context, key string) (*models.ContentPage, bool)
	Set(ctx context.Context, key string, page *models.ContentPage)
	InvalidateAll(ctx context.Context)
}

// noCache is used when no listing cache is configured.
type noCache struct{}

func (noCache) Get(context.Context, string) (*models.ContentPage, bool) {
	return nil, false
}

func (noCache) Set(context.Context, string, *models.ContentPage) {}

func (noCache) InvalidateAll(context.Context) {}
