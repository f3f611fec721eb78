// Package http provides the HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data. It reduces code duplication by providing reusable functions for
// common id, date, and sort key extraction patterns.
package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"salvadanaio/internal/core"
)

// dateLayout is the wire format for transaction dates in forms and queries.
const dateLayout = "2006-01-02"

// ParseID extracts a positive int64 identifier from the named parameter.
func ParseID(values url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("missing %s parameter", key)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter: %q", key, raw)
	}
	return id, nil
}

// ParseDate parses a required YYYY-MM-DD value from the named parameter.
func ParseDate(values url.Values, key string) (time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing %s parameter", key)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s parameter: %q", key, raw)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD value. Returns nil when
// the parameter is absent or empty; malformed values are ignored the same way.
func ParseOptionalDate(values url.Values, key string) *time.Time {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// ParseSortKey extracts the dashboard sort key, falling back to name
// ascending for unknown values.
func ParseSortKey(values url.Values) core.SortKey {
	key := core.SortKey(strings.TrimSpace(values.Get("sort")))
	if !key.IsValid() {
		return core.SortNameAsc
	}
	return key
}

// Confirmed reports whether the named checkbox-style confirmation parameter
// was submitted with the value "yes".
func Confirmed(values url.Values, key string) bool {
	return values.Get(key) == "yes"
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
