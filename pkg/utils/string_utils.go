package utils

import "strings"

// NewNullString trims s and returns nil when nothing is left.
// Useful for optional columns that should be NULL rather than empty.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NullStringValue dereferences an optional string, returning "" for nil.
func NullStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
