// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
//
// Slugs are looked up by exact match, so the transform must stay stable
// across releases: changing it orphans every slug already stored.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace matches a run of whitespace in the broad sense used by
	// browsers: ASCII whitespace including vertical tab, every Unicode space
	// separator, the line/paragraph separators and the byte order mark.
	whitespace = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	// nonWord matches anything that isn't an ASCII word character or a hyphen.
	// Accented and non-Latin letters are dropped, not transliterated.
	nonWord = regexp.MustCompile(`[^\w-]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Underscores survive (they are word characters), so "snake_case" stays as is.
// The result may be empty when the input has no ASCII letters or digits.
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespace.ReplaceAllString(result, "-")
	result = nonWord.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.TrimLeft(result, "-")
	result = strings.TrimRight(result, "-")
	return result
}
