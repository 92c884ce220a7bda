// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"b3cms/internal/models"
	"b3cms/internal/slug"
)

// CategoryInput carries the writable category fields. On update the whole
// category is replaced, except that a nil SortOrder or IsActive keeps the
// stored value.
type CategoryInput struct {
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	ParentID        *uuid.UUID `json:"parentId"`
	SortOrder       *int       `json:"sortOrder"`
	IsActive        *bool      `json:"isActive"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
}

// CategoryService manages the category lookup tree.
type CategoryService struct {
	repo   CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(repo CategoryRepository, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{
		repo:   repo,
		logger: logger.With(slog.String("component", "category_service")),
	}
}

// List returns all categories as a flat list.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// Tree returns the categories nested under their parents.
func (s *CategoryService) Tree(ctx context.Context) ([]models.CategoryNode, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Tree(), nil
}

func (s *CategoryService) index(ctx context.Context) (*models.CategoryIndex, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewCategoryIndex(items), nil
}

// FindOne returns the category with the given id.
func (s *CategoryService) FindOne(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// Create stores a new category. The slug is derived from the name when not
// supplied and the category is appended after its siblings unless a sort
// order is given.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	c := &models.Category{
		Name:            in.Name,
		Slug:            in.Slug,
		Description:     in.Description,
		ParentID:        in.ParentID,
		IsActive:        true,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	if err := s.checkParentExists(ctx, c.ParentID); err != nil {
		return nil, err
	}

	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	} else {
		next, err := s.repo.NextSortOrder(ctx, c.ParentID)
		if err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		c.SortOrder = next
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, translate(err)
	}
	s.logger.Info("category created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update replaces a category. Moving a category below itself or one of its
// descendants is rejected.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	next := *cur
	next.Name = in.Name
	next.Slug = in.Slug
	next.Description = in.Description
	next.ParentID = in.ParentID
	next.MetaTitle = in.MetaTitle
	next.MetaDescription = in.MetaDescription
	if next.Slug == "" {
		next.Slug = slug.Generate(next.Name)
	}
	if in.SortOrder != nil {
		next.SortOrder = *in.SortOrder
	}
	if in.IsActive != nil {
		next.IsActive = *in.IsActive
	}
	if err := validateCategory(&next); err != nil {
		return nil, err
	}

	if next.ParentID != nil {
		idx, err := s.index(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := idx.Get(*next.ParentID); !ok {
			return nil, validationError("parent category %s does not exist", *next.ParentID)
		}
		if idx.IsDescendant(*next.ParentID, id) {
			return nil, validationError("category cannot be moved below itself")
		}
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, translate(err)
	}
	s.logger.Info("category updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// Remove deletes a category. Its children become roots and content keeps
// existing without a category.
func (s *CategoryService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Info("category deleted", "id", id)
	return nil
}

func (s *CategoryService) checkParentExists(ctx context.Context, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	_, err := s.repo.FindByID(ctx, *parentID)
	if err == nil {
		return nil
	}
	if errors.Is(translate(err), ErrNotFound) {
		return validationError("parent category %s does not exist", *parentID)
	}
	return fmt.Errorf("find parent category: %w", err)
}
