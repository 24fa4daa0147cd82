package sitescrape

import "strings"

// Slugify derives a path segment from a page title. The transformation is
// purely textual so output paths stay stable across runs.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " - ", "-")
	s = strings.ReplaceAll(s, " – ", "-")
	s = strings.ReplaceAll(s, "?", "")
	return strings.ReplaceAll(s, " ", "-")
}
