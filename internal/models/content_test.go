package models

import (
	"testing"
	"time"
)

// TestContentIsPublished verifies that IsPublished returns true only for
// the "published" status.
func TestContentIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status ContentStatus
		want   bool
	}{
		{name: "published", status: ContentStatusPublished, want: true},
		{name: "draft", status: ContentStatusDraft, want: false},
		{name: "archived", status: ContentStatusArchived, want: false},
		{name: "scheduled", status: ContentStatusScheduled, want: false},
		{name: "empty status", status: ContentStatus(""), want: false},
		{name: "uppercase PUBLISHED", status: ContentStatus("PUBLISHED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Content{Status: tt.status}
			got := c.IsPublished()
			if got != tt.want {
				t.Errorf("Content{Status: %q}.IsPublished() = %v, want %v",
					tt.status, got, tt.want)
			}
		})
	}
}

func TestContentIsLive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      ContentStatus
		publishedAt *time.Time
		want        bool
	}{
		{name: "published in the past", status: ContentStatusPublished, publishedAt: &past, want: true},
		{name: "published exactly now", status: ContentStatusPublished, publishedAt: &now, want: true},
		{name: "published in the future", status: ContentStatusPublished, publishedAt: &future, want: false},
		{name: "published without timestamp", status: ContentStatusPublished, want: false},
		{name: "draft with timestamp", status: ContentStatusDraft, publishedAt: &past, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Content{Status: tt.status, PublishedAt: tt.publishedAt}
			if got := c.IsLive(now); got != tt.want {
				t.Errorf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentTypeValid(t *testing.T) {
	valid := []ContentType{
		ContentTypeBlogPost, ContentTypePage, ContentTypeAnnouncement,
		ContentTypeCaseStudy, ContentTypeDocumentation,
	}
	for _, ct := range valid {
		if !ct.Valid() {
			t.Errorf("%q should be valid", ct)
		}
	}
	for _, ct := range []ContentType{"", "post", "BLOG_POST"} {
		if ct.Valid() {
			t.Errorf("%q should be invalid", ct)
		}
	}
}

func TestContentStatusValid(t *testing.T) {
	for _, s := range []ContentStatus{"", "deleted", "Published"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
	if !ContentStatusScheduled.Valid() {
		t.Error("scheduled should be valid")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" go ", "", "ERP", "Go", "  "})
	if len(got) != 2 || got[0] != "go" || got[1] != "erp" {
		t.Errorf("NormalizeTags = %v, want [go erp]", got)
	}

	empty := NormalizeTags(nil)
	if empty == nil || len(empty) != 0 {
		t.Errorf("NormalizeTags(nil) = %#v, want empty non-nil slice", empty)
	}
}

func TestContentHasAnyTag(t *testing.T) {
	c := &Content{Tags: []string{"lean", "quality"}}
	if !c.HasAnyTag([]string{"safety", "quality"}) {
		t.Error("expected intersection on quality")
	}
	if c.HasAnyTag([]string{"safety"}) {
		t.Error("expected no intersection")
	}
	if c.HasAnyTag(nil) {
		t.Error("nil tags never intersect")
	}
}

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}.Normalize()
	if p.Page != 1 || p.Limit != 10 || p.SortBy != SortByCreatedAt || p.SortOrder != SortDesc {
		t.Errorf("defaults: got %+v", p)
	}

	p = Pagination{Page: 3, Limit: 500}.Normalize()
	if p.Limit != MaxLimit {
		t.Errorf("limit: got %d, want %d", p.Limit, MaxLimit)
	}
	if p.Offset() != 2*MaxLimit {
		t.Errorf("offset: got %d, want %d", p.Offset(), 2*MaxLimit)
	}
}

func TestNewRevisionCopiesTags(t *testing.T) {
	c := &Content{Title: "A", Version: 4, Tags: []string{"x"}}
	rev := NewRevision(c)
	c.Tags[0] = "mutated"

	if rev.Version != 4 {
		t.Errorf("version: got %d, want 4", rev.Version)
	}
	if rev.Tags[0] != "x" {
		t.Errorf("revision tags share storage with the record: %v", rev.Tags)
	}
}
