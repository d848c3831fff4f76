// Package pathutil maps request paths onto the route templates used as
// metrics labels, so each PDB ID does not become its own label value.
package pathutil

import (
	"strings"
)

// Route templates for the entry endpoints.
const (
	EntryTemplate = "/entries/:id"
	FASTATemplate = "/entries/:id/fasta"
)

// staticRoutes are served as-is.
var staticRoutes = []string{"/health", "/live", "/metrics"}

// NormalizePath converts a request path into its route template. Any id
// segment matches, so malformed identifiers (answered 400) share the label.
// Unknown paths are collapsed to "other".
//
// Examples:
//
//	NormalizePath("/entries/4HHB")        // "/entries/:id"
//	NormalizePath("/entries/1abc/fasta")  // "/entries/:id/fasta"
//	NormalizePath("/entries/4HHB/?x=1")   // "/entries/:id"
//	NormalizePath("/health")              // "/health"
//	NormalizePath("/wp-login.php")        // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if rest, ok := strings.CutPrefix(path, "/entries/"); ok {
		id, tail, nested := strings.Cut(rest, "/")
		switch {
		case id == "":
		case !nested:
			return EntryTemplate
		case tail == "fasta":
			return FASTATemplate
		}
	}

	for _, r := range staticRoutes {
		if path == r {
			return r
		}
	}
	return "other"
}

// GetExpectedCardinality returns the number of distinct path labels
// NormalizePath can produce.
func GetExpectedCardinality() int {
	return 2 + len(staticRoutes) + 1
}
