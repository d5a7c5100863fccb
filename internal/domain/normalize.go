package domain

import (
	"strings"
)

// NormalizeName prepares a user-supplied name for storage and comparison:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into a single space
//
// Case is preserved.
func NormalizeName(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
