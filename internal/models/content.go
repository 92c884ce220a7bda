// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType classifies a content record.
type ContentType string

const (
	ContentTypeBlogPost      ContentType = "blog_post"
	ContentTypePage          ContentType = "page"
	ContentTypeAnnouncement  ContentType = "announcement"
	ContentTypeCaseStudy     ContentType = "case_study"
	ContentTypeDocumentation ContentType = "documentation"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeBlogPost, ContentTypePage, ContentTypeAnnouncement,
		ContentTypeCaseStudy, ContentTypeDocumentation:
		return true
	}
	return false
}

// ContentStatus represents the publishing state of a content record.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
	ContentStatusScheduled ContentStatus = "scheduled"
)

// Valid reports whether s is one of the known statuses.
func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived, ContentStatusScheduled:
		return true
	}
	return false
}

// Content is a single CMS record: a blog post, page, announcement, case
// study or documentation article.
type Content struct {
	ID             uuid.UUID       `json:"id"`
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Excerpt        string          `json:"excerpt"`
	Body           string          `json:"body"`
	StructuredBody json.RawMessage `json:"structuredBody,omitempty"`

	Type       ContentType   `json:"type"`
	Status     ContentStatus `json:"status"`
	Tags       []string      `json:"tags"`
	CategoryID *uuid.UUID    `json:"categoryId,omitempty"`

	AuthorID   *uuid.UUID `json:"authorId,omitempty"`
	AuthorName string     `json:"authorName"`

	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    []string `json:"metaKeywords"`
	CanonicalURL    string   `json:"canonicalUrl"`
	Indexable       bool     `json:"indexable"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`

	ViewCount  int64 `json:"viewCount"`
	ShareCount int64 `json:"shareCount"`

	Version         int        `json:"version"`
	ParentVersionID *uuid.UUID `json:"parentVersionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsPublished returns true if the record is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// IsLive reports whether the record is published with a publish time at or
// before now. Records whose publishedAt lies in the future are not live even
// when their status already says published.
func (c *Content) IsLive(now time.Time) bool {
	return c.IsPublished() && c.PublishedAt != nil && !c.PublishedAt.After(now)
}

// HasAnyTag reports whether the record carries at least one of tags.
func (c *Content) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if slices.Contains(c.Tags, t) {
			return true
		}
	}
	return false
}

// NormalizeTags trims, lower-cases, drops empties and deduplicates tags
// while keeping their first-seen order. A nil input yields an empty, non-nil
// slice so the JSON form is always an array.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ContentRevision stores a snapshot of a content record taken just before
// an update overwrote it.
type ContentRevision struct {
	ID             uuid.UUID       `json:"id"`
	ContentID      uuid.UUID       `json:"contentId"`
	Version        int             `json:"version"`
	Title          string          `json:"title"`
	Slug           string          `json:"slug"`
	Excerpt        string          `json:"excerpt"`
	Body           string          `json:"body"`
	StructuredBody json.RawMessage `json:"structuredBody,omitempty"`
	Status         ContentStatus   `json:"status"`
	Tags           []string        `json:"tags"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// NewRevision snapshots c.
func NewRevision(c *Content) ContentRevision {
	return ContentRevision{
		ContentID:      c.ID,
		Version:        c.Version,
		Title:          c.Title,
		Slug:           c.Slug,
		Excerpt:        c.Excerpt,
		Body:           c.Body,
		StructuredBody: c.StructuredBody,
		Status:         c.Status,
		Tags:           slices.Clone(c.Tags),
	}
}

// StatusChange describes a lifecycle transition. Nil timestamps leave the
// stored value untouched.
type StatusChange struct {
	Status      ContentStatus
	PublishedAt *time.Time
	ScheduledAt *time.Time
}
