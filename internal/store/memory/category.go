// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"b3cms/internal/models"
	"b3cms/internal/store"
)

// CategoryStore is a map-backed category store safe for concurrent use.
type CategoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Category
	now   func() time.Time
}

// NewCategoryStore returns an empty CategoryStore.
func NewCategoryStore(opts ...Option) *CategoryStore {
	o := buildOptions(opts)
	return &CategoryStore{
		items: make(map[uuid.UUID]models.Category),
		now:   o.now,
	}
}

// List returns all categories ordered by sort order, then name.
func (s *CategoryStore) List(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	out := make([]models.Category, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Category) int {
		if r := cmp.Compare(a.SortOrder, b.SortOrder); r != 0 {
			return r
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// FindByID retrieves a category by ID.
func (s *CategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("find category by id: %w", store.ErrNotFound)
	}
	return &c, nil
}

// slugOwner returns the id of the category using slug, if any.
// Callers must hold the lock.
func (s *CategoryStore) slugOwner(slug string) (uuid.UUID, bool) {
	for id, c := range s.items {
		if c.Slug == slug {
			return id, true
		}
	}
	return uuid.Nil, false
}

// Create inserts a new category.
func (s *CategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slugOwner(c.Slug); taken {
		return nil, fmt.Errorf("create category %q: %w", c.Slug, store.ErrConflict)
	}

	now := s.now()
	stored := *c
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.items[stored.ID] = stored
	return &stored, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[c.ID]
	if !ok {
		return nil, fmt.Errorf("update category: %w", store.ErrNotFound)
	}
	if owner, taken := s.slugOwner(c.Slug); taken && owner != c.ID {
		return nil, fmt.Errorf("update category %q: %w", c.Slug, store.ErrConflict)
	}

	next := *c
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.items[next.ID] = next
	return &next, nil
}

// Delete removes a category and re-parents its children to the root.
func (s *CategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("delete category: %w", store.ErrNotFound)
	}
	delete(s.items, id)
	for childID, c := range s.items {
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
			s.items[childID] = c
		}
	}
	return nil
}

// NextSortOrder returns the next sort order value for a given parent.
func (s *CategoryStore) NextSortOrder(_ context.Context, parentID *uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	next := 0
	for _, c := range s.items {
		sameParent := (parentID == nil && c.ParentID == nil) ||
			(parentID != nil && c.ParentID != nil && *parentID == *c.ParentID)
		if sameParent && c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}
	return next, nil
}
