// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Pagination defaults and limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortField names a sortable content attribute as exposed over the API.
type SortField string

const (
	SortByCreatedAt   SortField = "createdAt"
	SortByUpdatedAt   SortField = "updatedAt"
	SortByPublishedAt SortField = "publishedAt"
	SortByTitle       SortField = "title"
	SortBySlug        SortField = "slug"
	SortByViewCount   SortField = "viewCount"
	SortByShareCount  SortField = "shareCount"
	SortByVersion     SortField = "version"
)

// Valid reports whether f is a whitelisted sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByPublishedAt, SortByTitle,
		SortBySlug, SortByViewCount, SortByShareCount, SortByVersion:
		return true
	}
	return false
}

// SortOrder is ASC or DESC.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ContentFilter narrows a content listing. All set fields are ANDed.
type ContentFilter struct {
	Search     string
	Type       ContentType
	Status     ContentStatus
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
}

// Pagination describes the requested window and ordering.
type Pagination struct {
	Page      int
	Limit     int
	SortBy    SortField
	SortOrder SortOrder
}

// Normalize fills in defaults and clamps the limit.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = SortByCreatedAt
	}
	if p.SortOrder == "" {
		p.SortOrder = SortDesc
	}
	return p
}

// Offset returns the number of rows to skip for the page window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ContentQuery is the full listing request handed to a store.
type ContentQuery struct {
	Filter     ContentFilter
	Pagination Pagination

	// PublishedBefore, when set, restricts to published records whose
	// publishedAt is at or before the given instant.
	PublishedBefore *time.Time
}

// TagQuery selects published records sharing at least one tag.
type TagQuery struct {
	Tags      []string
	Type      ContentType
	ExcludeID *uuid.UUID
	Limit     int
}

// ContentPage is a window of a content listing plus the total match count.
type ContentPage struct {
	Data  []Content `json:"data"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
