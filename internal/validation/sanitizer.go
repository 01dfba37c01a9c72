package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}

// SanitizeText strips all markup and leaves plain text. The policy escapes
// entities on output, which the API does not want in JSON strings.
func SanitizeText(input string) string {
	return SanitizeString(html.UnescapeString(htmlPolicy.Sanitize(input)))
}
