// Package media resolves stored picture references into displayable URLs.
package media

import "strings"

// PlaceholderURL is returned for empty picture references.
const PlaceholderURL = "https://via.placeholder.com/150"

const bucketPath = "/storage/v1/object/public/consultant-pictures/"

// ResolveImageURL turns a stored picture value into an absolute URL. Absolute
// URLs pass through unchanged; anything else is treated as a key relative to
// the consultant-pictures bucket under base. Total and deterministic: never
// errors, same input always yields the same output.
func ResolveImageURL(base, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return PlaceholderURL
	}
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return strings.TrimRight(base, "/") + bucketPath + strings.TrimPrefix(v, "/")
}
