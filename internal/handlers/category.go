// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"b3cms/internal/service"
)

// Category groups the /categories handlers.
type Category struct {
	svc *service.CategoryService
}

// NewCategory creates the category handler group.
func NewCategory(svc *service.CategoryService) *Category {
	return &Category{svc: svc}
}

// List handles GET /categories.
func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, err, "category")
		return
	}
	render.JSON(w, r, items)
}

// Tree handles GET /categories/tree.
func (h *Category) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Tree(r.Context())
	if err != nil {
		respondError(w, r, err, "category")
		return
	}
	render.JSON(w, r, tree)
}

// Get handles GET /categories/{id}.
func (h *Category) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	c, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "category")
		return
	}
	render.JSON(w, r, c)
}

// Create handles POST /categories.
func (h *Category) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "category")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// Update handles PUT /categories/{id}.
func (h *Category) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	var in service.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err, "category")
		return
	}
	render.JSON(w, r, c)
}

// Delete handles DELETE /categories/{id}.
func (h *Category) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondError(w, r, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
