package markdown

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The helpers below read loosely typed frontmatter values. Hand-edited notes
// may carry numbers as strings or unquoted dates, so each accepts several
// YAML shapes.

func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func AsFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		out, _ := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return out
	default:
		return 0
	}
}

func AsBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		out, _ := strconv.ParseBool(strings.TrimSpace(x))
		return out
	default:
		return false
	}
}

// AsIntPtr returns nil for missing or empty values.
func AsIntPtr(v any) *int {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
	}
	out := int(AsFloat(v))
	return &out
}

func AsStringSlice(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func AsMapSlice(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// AsTimePtr parses an RFC3339 timestamp.
func AsTimePtr(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		return &x
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		return &t
	default:
		return nil
	}
}

// AsDatePtr parses a YYYY-MM-DD calendar day at midnight UTC.
func AsDatePtr(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		y, m, d := x.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &day
	case string:
		value := strings.TrimSpace(x)
		if len(value) > len("2006-01-02") {
			value = value[:len("2006-01-02")]
		}
		day, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
		return &day
	default:
		return nil
	}
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
