// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"strings"
	"unicode/utf8"

	"b3cms/internal/models"
	"b3cms/internal/slug"
)

// Validation limits for content and category fields.
const (
	maxTitleLen        = 300
	maxBodyLen         = 100_000
	maxExcerptLen      = 1_000
	maxMetaTitleLen    = 300
	maxMetaDescLen     = 500
	maxMetaKeywords    = 50
	maxTags            = 50
	maxTagLen          = 100
	maxCanonicalURLLen = 500
	maxCategoryNameLen = 200
	maxAuthorNameLen   = 200
)

// validateContent checks a fully assembled record before it is persisted.
func validateContent(c *models.Content) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return validationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return validationError("title is too long (max %d characters)", maxTitleLen)
	}
	if !slug.Valid(c.Slug) {
		return validationError("slug %q must be lowercase letters, digits and single hyphens (max %d characters)", c.Slug, slug.MaxLen)
	}
	if utf8.RuneCountInString(c.Body) > maxBodyLen {
		return validationError("body is too long (max %d characters)", maxBodyLen)
	}
	if utf8.RuneCountInString(c.Excerpt) > maxExcerptLen {
		return validationError("excerpt is too long (max %d characters)", maxExcerptLen)
	}
	if !c.Type.Valid() {
		return validationError("unknown content type %q", c.Type)
	}
	if !c.Status.Valid() {
		return validationError("unknown content status %q", c.Status)
	}
	if c.Status == models.ContentStatusScheduled && c.ScheduledAt == nil {
		return validationError("scheduledAt is required for scheduled content")
	}
	if utf8.RuneCountInString(c.AuthorName) > maxAuthorNameLen {
		return validationError("author name is too long (max %d characters)", maxAuthorNameLen)
	}
	if len(c.Tags) > maxTags {
		return validationError("too many tags (max %d)", maxTags)
	}
	for _, t := range c.Tags {
		if utf8.RuneCountInString(t) > maxTagLen {
			return validationError("tag %q is too long (max %d characters)", t, maxTagLen)
		}
	}
	return validateMetadata(c)
}

// validateMetadata checks the optional SEO metadata fields.
func validateMetadata(c *models.Content) error {
	if utf8.RuneCountInString(c.MetaTitle) > maxMetaTitleLen {
		return validationError("meta title is too long (max %d characters)", maxMetaTitleLen)
	}
	if utf8.RuneCountInString(c.MetaDescription) > maxMetaDescLen {
		return validationError("meta description is too long (max %d characters)", maxMetaDescLen)
	}
	if len(c.MetaKeywords) > maxMetaKeywords {
		return validationError("too many meta keywords (max %d)", maxMetaKeywords)
	}
	if utf8.RuneCountInString(c.CanonicalURL) > maxCanonicalURLLen {
		return validationError("canonical URL is too long (max %d characters)", maxCanonicalURLLen)
	}
	return nil
}

// validatePagination rejects sort options outside the whitelist. Page and
// limit are clamped by Pagination.Normalize instead.
func validatePagination(p models.Pagination) error {
	if p.SortBy != "" && !p.SortBy.Valid() {
		return validationError("unsupported sortBy %q", p.SortBy)
	}
	if p.SortOrder != "" && p.SortOrder != models.SortAsc && p.SortOrder != models.SortDesc {
		return validationError("sortOrder must be ASC or DESC, got %q", p.SortOrder)
	}
	return nil
}

// validateCategory checks a category before it is persisted.
func validateCategory(c *models.Category) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return validationError("name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return validationError("name is too long (max %d characters)", maxCategoryNameLen)
	}
	if !slug.Valid(c.Slug) {
		return validationError("slug %q must be lowercase letters, digits and single hyphens", c.Slug)
	}
	if utf8.RuneCountInString(c.MetaTitle) > maxMetaTitleLen {
		return validationError("meta title is too long (max %d characters)", maxMetaTitleLen)
	}
	if utf8.RuneCountInString(c.MetaDescription) > maxMetaDescLen {
		return validationError("meta description is too long (max %d characters)", maxMetaDescLen)
	}
	return nil
}
