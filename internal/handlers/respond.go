// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the content API.
// Handlers are grouped by resource and receive their services through the
// handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"b3cms/internal/service"
)

// Error codes of the API error envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// maxBodyBytes caps request bodies. Content bodies are limited to 100k
// characters, which is at most 400 KiB of UTF-8.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error response:
// {"error": {"code": "...", "message": "..."}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a single error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, CodeValidationError, message)
}

// respondError maps service errors onto HTTP statuses. resource names the
// thing that was looked up, for 404 messages. Unknown errors are logged and
// reported as a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		badRequest(w, r, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, r, http.StatusNotFound, CodeNotFound, resource+" not found")
	case errors.Is(err, service.ErrConflict):
		writeError(w, r, http.StatusConflict, CodeConflict, err.Error())
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
		)
		writeError(w, r, http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

// decodeJSON reads a JSON request body into v, rejecting oversized bodies.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, CodeValidationError, "request body too large")
			return false
		}
		badRequest(w, r, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
