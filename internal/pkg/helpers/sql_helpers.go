package helpers

import "strings"

// NilIfBlank converts an optional string into a nullable column value.
// A nil pointer or whitespace-only string becomes nil.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// EscapeLike escapes LIKE wildcards so the value is matched literally by ILIKE.
func EscapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
