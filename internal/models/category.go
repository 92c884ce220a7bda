// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Category is a node in the content category tree. The tree is stored as a
// flat list of parent references.
type Category struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	ParentID        *uuid.UUID `json:"parentId,omitempty"`
	SortOrder       int        `json:"sortOrder"`
	IsActive        bool       `json:"isActive"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CategoryNode is a category with its resolved children, used only for
// presenting the tree.
type CategoryNode struct {
	Category
	Depth    int            `json:"depth"`
	Children []CategoryNode `json:"children"`
}

// CategoryIndex is an id-keyed arena over a flat category list. Parent and
// child lookups go through ids so no node holds a pointer to another.
type CategoryIndex struct {
	byID     map[uuid.UUID]Category
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

// NewCategoryIndex builds the index. Categories whose parent is missing from
// the list are treated as roots.
func NewCategoryIndex(flat []Category) *CategoryIndex {
	idx := &CategoryIndex{
		byID:     make(map[uuid.UUID]Category, len(flat)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, c := range flat {
		idx.byID[c.ID] = c
	}

	ordered := slices.Clone(flat)
	slices.SortStableFunc(ordered, func(a, b Category) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	for _, c := range ordered {
		if c.ParentID != nil {
			if _, ok := idx.byID[*c.ParentID]; ok {
				idx.children[*c.ParentID] = append(idx.children[*c.ParentID], c.ID)
				continue
			}
		}
		idx.roots = append(idx.roots, c.ID)
	}
	return idx
}

// Get returns the category with the given id.
func (idx *CategoryIndex) Get(id uuid.UUID) (Category, bool) {
	c, ok := idx.byID[id]
	return c, ok
}

// IsDescendant reports whether candidate sits somewhere below ancestor.
// A category counts as its own descendant.
func (idx *CategoryIndex) IsDescendant(candidate, ancestor uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool)
	cur := candidate
	for {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		c, ok := idx.byID[cur]
		if !ok || c.ParentID == nil {
			return false
		}
		cur = *c.ParentID
	}
}

// Tree returns the nested presentation of the index.
func (idx *CategoryIndex) Tree() []CategoryNode {
	return idx.build(idx.roots, 0, make(map[uuid.UUID]bool))
}

func (idx *CategoryIndex) build(ids []uuid.UUID, depth int, visited map[uuid.UUID]bool) []CategoryNode {
	nodes := make([]CategoryNode, 0, len(ids))
	for _, id := range ids {
		if visited[id] {
			continue
		}
		visited[id] = true
		nodes = append(nodes, CategoryNode{
			Category: idx.byID[id],
			Depth:    depth,
			Children: idx.build(idx.children[id], depth+1, visited),
		})
	}
	return nodes
}
