// Package naming derives the canonical normalized form of display labels.
//
// Normalized labels are the identity keys for every lookup in the engine:
// entity labels in the registry, element labels in input records, and
// transform labels in a descriptor's handler table. Two display labels are
// the same identity exactly when their Snake forms are equal.
package naming

import (
	"regexp"
	"strings"
)

var (
	camelBoundary  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	underscoreRuns = regexp.MustCompile(`__+`)
)

// Camel converts a snake_case or space-separated label to camelCase.
func Camel(label string) string {
	parts := strings.Split(strings.ToLower(strings.ReplaceAll(label, " ", "_")), "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Snake converts a display label to its canonical snake_case identity.
// Kebab-case, camelCase, and space-separated labels all normalize to the
// same form; runs of underscores collapse and the result is lowercase, so
// "IP Geolocation", "ip-geolocation" and "ipGeolocation" are one identity.
func Snake(label string) string {
	camel := Camel(strings.ReplaceAll(label, "-", "_"))
	out := camelBoundary.ReplaceAllString(camel, `${1}_${2}`)
	out = underscoreRuns.ReplaceAllString(out, "_")
	return strings.ToLower(out)
}
