package wordpress

import (
	"encoding/json"
	"html"
	"strconv"
	"strings"
	"time"
)

// renderedText matches WordPress {"rendered": "..."} wrappers.
type renderedText struct {
	Rendered string `json:"rendered"`
}

// decode strips HTML entities from a human-readable field. This is the one
// place entity decoding happens; callers never re-decode.
func decode(s string) string {
	return html.UnescapeString(s)
}

// wordpress timestamps come without a zone offset, in site-local time.
const wpTimeLayout = "2006-01-02T15:04:05"

// isoDate normalizes a WordPress timestamp to RFC 3339 (UTC). Unparseable
// values pass through untouched rather than losing information.
func isoDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(wpTimeLayout, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return s
}

// toInt coerces the loosely typed values WordPress plugins emit (number,
// numeric string, null) to an int.
func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	case int:
		return n
	default:
		return 0
	}
}

// toFloat coerces a loosely typed value to a float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f
	case int:
		return float64(n)
	default:
		return 0
	}
}

// toBool coerces the loosely typed truthy values plugins emit (bool,
// "1", 1) to a bool.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b == "1" || b == "true"
	default:
		return false
	}
}
