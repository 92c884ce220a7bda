// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b3cms/internal/models"
)

func TestCategoryStore_CRUD(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	next, err := s.NextSortOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	root, err := s.Create(ctx, &models.Category{Name: "Docs", Slug: "docs", IsActive: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, root.ID)

	next, err = s.NextSortOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	child, err := s.Create(ctx, &models.Category{Name: "API", Slug: "api", ParentID: &root.ID, IsActive: true})
	require.NoError(t, err)

	next, err = s.NextSortOrder(ctx, &root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	_, err = s.Create(ctx, &models.Category{Name: "Docs again", Slug: "docs"})
	assert.ErrorIs(t, err, ErrConflict)

	child.Name = "API Reference"
	child.Description = "Endpoints"
	updated, err := s.Update(ctx, child)
	require.NoError(t, err)
	assert.Equal(t, "API Reference", updated.Name)
	assert.Equal(t, "Endpoints", updated.Description)

	child.Slug = "docs"
	_, err = s.Update(ctx, child)
	assert.ErrorIs(t, err, ErrConflict)

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "API Reference", items[0].Name, "sort order 0 then name")

	// Deleting the parent re-parents the child and detaches content.
	contents := NewContentStore(db)
	c, err := contents.Create(ctx, &models.Content{
		Slug: "in-docs", Title: "In docs", Type: models.ContentTypeDocumentation,
		Status: models.ContentStatusDraft, CategoryID: &root.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, root.ID))
	assert.ErrorIs(t, s.Delete(ctx, root.ID), ErrNotFound)

	orphan, err := s.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	detached, err := contents.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.CategoryID)

	_, err = s.FindByID(ctx, root.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryStore_UnknownParent(t *testing.T) {
	s := NewCategoryStore(testDB(t))

	missing := uuid.New()
	_, err := s.Create(context.Background(), &models.Category{
		Name: "Orphan", Slug: "orphan", ParentID: &missing, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}
