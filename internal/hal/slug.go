package hal

import "strings"

// Slug derives a url name from a display name: lowercase with spaces
// replaced by dashes ("Mexico City" -> "mexico-city").
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
