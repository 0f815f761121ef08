// Package pathutil maps request paths onto route templates so that metrics
// and span names stay low-cardinality.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const hex24 = `[0-9a-fA-F]{24}`

// pathPatterns lists the routes carrying identities, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/countries/` + hex24 + `/cities/` + hex24 + `$`), Template: "/countries/:id/cities/:cityId"},
	{Pattern: regexp.MustCompile(`^/countries/` + hex24 + `/cities$`), Template: "/countries/:id/cities"},
	{Pattern: regexp.MustCompile(`^/countries/` + hex24 + `$`), Template: "/countries/:id"},

	{Pattern: regexp.MustCompile(`^/categories/` + hex24 + `/subcats/` + hex24 + `$`), Template: "/categories/:id/subcats/:subcatId"},
	{Pattern: regexp.MustCompile(`^/categories/` + hex24 + `/subcats$`), Template: "/categories/:id/subcats"},
	{Pattern: regexp.MustCompile(`^/categories/` + hex24 + `$`), Template: "/categories/:id"},

	{Pattern: regexp.MustCompile(`^/articles/` + hex24 + `/comments/` + hex24 + `$`), Template: "/articles/:id/comments/:commentId"},
	{Pattern: regexp.MustCompile(`^/articles/` + hex24 + `/comments$`), Template: "/articles/:id/comments"},
	{Pattern: regexp.MustCompile(`^/articles/` + hex24 + `$`), Template: "/articles/:id"},
}

// NormalizePath converts paths with identities to their route template.
// Static paths pass through unchanged. Any other path segment that is not a
// known route is collapsed to ":other" after the first segment, so malformed
// identities cannot grow the label set either.
//
//	NormalizePath("/countries/5f1a2b3c4d5e6f7a8b9c0d1e/cities") // "/countries/:id/cities"
//	NormalizePath("/countries/cities")                          // "/countries/cities"
//	NormalizePath("/articles/not-an-id")                        // "/articles/:other"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	if i := strings.IndexByte(path[min(1, len(path)):], '/'); i >= 0 {
		return path[:i+1] + "/:other"
	}
	return path
}

var staticPaths = map[string]struct{}{
	"/":                   {},
	"/countries":          {},
	"/countries/cities":   {},
	"/categories":         {},
	"/categories/subcats": {},
	"/articles":           {},
	"/health":             {},
	"/ready":              {},
	"/live":               {},
	"/metrics":            {},
}
