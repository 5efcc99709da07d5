// Package sanitize strips markup from user-provided free text before it is
// stored. Quote notes, client notes, and line descriptions all pass through
// here; they are rendered as plain text in the app and in quote emails.
package sanitize

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags from a string. Common entities are decoded and
// the result is stripped again, so an encoded tag does not survive the
// decode.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text cleans a free-text field for storage.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr applies Text through an optional pointer, keeping nil as nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
