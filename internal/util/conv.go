package util

import (
	"strconv"
)

// ParseID parses a positive path identifier.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// OptionalID parses an optional query filter. An empty string is no filter.
func OptionalID(s string) (*uint, bool) {
	if s == "" {
		return nil, true
	}
	id, ok := ParseID(s)
	if !ok {
		return nil, false
	}
	return &id, true
}
