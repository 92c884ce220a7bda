// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"b3cms/internal/markdown"
	"b3cms/internal/models"
	"b3cms/internal/service"
)

// Content groups the /content handlers.
type Content struct {
	svc *service.ContentService
}

// NewContent creates the content handler group.
func NewContent(svc *service.ContentService) *Content {
	return &Content{svc: svc}
}

// RenderedContent is a record plus its body rendered to HTML.
type RenderedContent struct {
	models.Content
	BodyHTML string `json:"bodyHtml"`
}

// ScheduleRequest is the body of PATCH /content/{id}/schedule.
type ScheduleRequest struct {
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// List handles GET /content.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := queryPagination(q)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	authorID, err := queryUUID(q, "authorId")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	categoryID, err := queryUUID(q, "categoryId")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	page, err := h.svc.FindAll(r.Context(), models.ContentFilter{
		Search:     q.Get("search"),
		Type:       models.ContentType(q.Get("type")),
		Status:     models.ContentStatus(q.Get("status")),
		AuthorID:   authorID,
		CategoryID: categoryID,
	}, p)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, page)
}

// Published handles GET /content/published.
func (h *Content) Published(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := queryPagination(q)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	page, err := h.svc.FindPublished(r.Context(), models.ContentType(q.Get("type")), p)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, page)
}

// ByTags handles GET /content/tags?tags=a,b.
func (h *Content) ByTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	items, err := h.svc.GetByTags(r.Context(), queryList(q, "tags"), limit)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, items)
}

// Stats handles GET /content/stats.
func (h *Content) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.StatusCounts(r.Context())
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, counts)
}

// BySlug handles GET /content/slug/{slug}. Every call counts a view.
// With ?render=html the Markdown body is also returned as HTML.
func (h *Content) BySlug(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err, "content")
		return
	}

	if r.URL.Query().Get("render") != "html" {
		render.JSON(w, r, c)
		return
	}
	bodyHTML, err := markdown.ToHTML(c.Body)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, RenderedContent{Content: *c, BodyHTML: bodyHTML})
}

// Get handles GET /content/{id}.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	c, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, c)
}

// Related handles GET /content/{id}/related.
func (h *Content) Related(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	items, err := h.svc.GetRelated(r.Context(), id, limit)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, items)
}

// Revisions handles GET /content/{id}/revisions.
func (h *Content) Revisions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	revs, err := h.svc.Revisions(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, revs)
}

// Create handles POST /content.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateContentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// Update handles PUT /content/{id}. Omitted fields keep their values.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	var in service.UpdateContentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, c)
}

// Publish handles PATCH /content/{id}/publish.
func (h *Content) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Publish)
}

// Unpublish handles PATCH /content/{id}/unpublish.
func (h *Content) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Unpublish)
}

// Archive handles PATCH /content/{id}/archive.
func (h *Content) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Archive)
}

type transitionFunc func(ctx context.Context, id uuid.UUID) (*models.Content, error)

func (h *Content) transition(w http.ResponseWriter, r *http.Request, apply transitionFunc) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	c, err := apply(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, c)
}

// Schedule handles PATCH /content/{id}/schedule.
func (h *Content) Schedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	var req ScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ScheduledAt == nil {
		badRequest(w, r, "scheduledAt is required")
		return
	}
	c, err := h.svc.Schedule(r.Context(), id, *req.ScheduledAt)
	if err != nil {
		respondError(w, r, err, "content")
		return
	}
	render.JSON(w, r, c)
}

// Share handles PATCH /content/{id}/share.
func (h *Content) Share(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.IncrementShareCount(r.Context(), id); err != nil {
		respondError(w, r, err, "content")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /content/{id}.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondError(w, r, err, "content")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
