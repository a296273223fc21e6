// Package infer implements the natural-language heuristics that turn a
// free-text check description into structured fields: the behavioral
// group, the target service, the test name, and the GIVEN/WHEN/THEN
// clauses. Every heuristic is a pure function over the description text
// so each one can be exercised in isolation; the service/test cascade is
// a first-success fold over an ordered list of them.
package infer

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts arbitrary text into a canonical identifier token:
// lowercase ASCII letters and digits separated by single hyphens, with
// no boundary hyphens. Input with no alphanumeric content yields the
// empty string, which callers must treat as "no value". Slugify is
// idempotent.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = nonAlphanumeric.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}
