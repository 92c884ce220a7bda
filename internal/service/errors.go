// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"errors"
	"fmt"

	"b3cms/internal/store"
)

var (
	// ErrNotFound is returned when an id or slug does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a slug already belongs to another record.
	ErrConflict = errors.New("conflict")
	// ErrValidation is returned for malformed input.
	ErrValidation = errors.New("validation failed")
)

// validationError wraps ErrValidation with a human-readable message.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps store sentinels onto service sentinels, keeping the store
// error in the chain for logging.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, store.ErrInvalidReference):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return err
	}
}
