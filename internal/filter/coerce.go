package filter

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Field reads a record field. Dotted keys walk into nested maps.
func Field(record models.Record, key string) (any, bool) {
	if v, ok := record[key]; ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var cur any = map[string]any(record)
	for _, part := range strings.Split(key, ".") {
		m, err := cast.ToStringMapE(cur)
		if err != nil {
			return nil, false
		}
		v, ok := m[part]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// asString accepts only real strings; numbers are not coerced into text
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case models.TextValue:
		return string(s), true
	}
	return "", false
}

// asNumber accepts numeric values and numeric strings
func asNumber(v any) (float64, bool) {
	if t, ok := v.(models.TextValue); ok {
		v = string(t)
	}
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case models.NumberValue:
		return float64(n), true
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, false
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// asTime accepts time values and strings in the common layouts
func asTime(v any) (time.Time, bool) {
	if s, ok := v.(models.TextValue); ok {
		v = string(s)
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case models.DateValue:
		return time.Time(t), true
	case time.Time:
		return t, !t.IsZero()
	case string:
		if parsed, err := time.Parse(models.DateLayout, t); err == nil {
			return parsed, true
		}
	}
	t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// asKey reads the comparable key of a membership field. Option records and
// nested objects are reduced to their value key.
func asKey(v any, valueKey string) (string, bool) {
	switch k := v.(type) {
	case nil:
		return "", false
	case string:
		return k, true
	case models.Option:
		return k.Field(valueKey)
	case map[string]any:
		return models.Option(k).Field(valueKey)
	case bool:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// asKeys reads a membership field that may hold one or many keys
func asKeys(v any, valueKey string) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		keys := make([]string, 0, len(list))
		for _, item := range list {
			k, ok := asKey(item, valueKey)
			if !ok {
				return nil, false
			}
			keys = append(keys, k)
		}
		return keys, true
	}
	k, ok := asKey(v, valueKey)
	if !ok {
		return nil, false
	}
	return []string{k}, true
}

// truncateDay reduces t to its wall-clock calendar day
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
