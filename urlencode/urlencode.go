// Package urlencode escapes free-form text so it can be embedded as a value
// in a URL query string.
package urlencode

import (
	"net/url"
	"strings"
)

// Encode percent-encodes text for use as a query parameter value.
// Letters, digits, '-', '_', '.', '~' and '/' are left as they are; every
// other byte is escaped and a space becomes "%20".
func Encode(text string) string {
	if text == "" {
		return ""
	}

	// QueryEscape already turns a literal '+' into %2B, so any '+' left in
	// the output stands for a space.
	escaped := url.QueryEscape(text)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return strings.ReplaceAll(escaped, "%2F", "/")
}

// Decode reverses Encode.
func Decode(encoded string) (string, error) {
	return url.QueryUnescape(encoded)
}
