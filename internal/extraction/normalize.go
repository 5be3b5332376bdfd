package extraction

import (
	"strconv"
	"strings"
	"time"
)

// stripCodeFence removes an optional leading markdown fence (with or without
// a json tag) and an optional trailing fence, then trims whitespace. Models
// regularly wrap output this way despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// toFloat coerces an untyped JSON value to a float, or nil when the value is
// absent, null or not convertible. A bad number never fails the extraction.
func toFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// toInt coerces an untyped JSON value to an int, falling back to def.
// Fractional quantities are truncated.
func toInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

// toStringPtr returns the value as a string pointer, or nil for null and
// non-string values.
func toStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// isISODate reports whether s parses as an ISO-8601 calendar date or
// date-time.
func isISODate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// normalizeItems validates the extracted items list: only objects carrying a
// name survive, quantity is coerced to an int (default 1), specifications to
// a string (default empty).
func normalizeItems(v any) []Item {
	items := []Item{}

	list, ok := v.([]any)
	if !ok {
		return items
	}

	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := toString(obj["name"])
		if name == "" {
			continue
		}
		items = append(items, Item{
			Name:           name,
			Quantity:       toInt(obj["quantity"], 1),
			Specifications: toString(obj["specifications"]),
		})
	}

	return items
}
