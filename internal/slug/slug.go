// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

// MaxLen is the longest slug Generate will return.
const MaxLen = 100

// nonAlphanumericRun matches any run of characters outside [a-z0-9].
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLen {
		// Cutting may land right after a separator.
		result = strings.TrimRight(result[:MaxLen], "-")
	}
	return result
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
