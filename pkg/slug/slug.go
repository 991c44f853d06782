package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make derives a URL-safe slug from a collection or product name.
// Lowercases the input, collapses every run of non-alphanumeric characters
// into a single hyphen, and strips leading and trailing hyphens, so
// Make("New Arrivals") is "new-arrivals" and
// Make("Limited Edition (2026)") is "limited-edition-2026".
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
