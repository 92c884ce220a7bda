// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"b3cms/internal/models"
)

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Missing values
// yield 0 so the service applies its default.
func queryInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(q url.Values, key string) (*uuid.UUID, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a UUID", key)
	}
	return &id, nil
}

// queryPagination reads page, limit, sortBy and sortOrder. sortOrder is
// case-insensitive.
func queryPagination(q url.Values) (models.Pagination, error) {
	page, err := queryInt(q, "page")
	if err != nil {
		return models.Pagination{}, err
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		return models.Pagination{}, err
	}
	return models.Pagination{
		Page:      page,
		Limit:     limit,
		SortBy:    models.SortField(q.Get("sortBy")),
		SortOrder: models.SortOrder(strings.ToUpper(q.Get("sortOrder"))),
	}, nil
}

// queryList splits a comma-separated query parameter.
func queryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
