package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Cell renders a record field for display in a table or export.
// Numbers are shown in the unit filter values are typed in.
func Cell(record models.Record, col models.Column) string {
	v, ok := filter.Field(record, col.Key)
	if !ok || v == nil {
		return ""
	}

	switch p := col.Props.(type) {
	case models.NumberProps:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return strconv.FormatFloat(p.Display(f), 'f', -1, 64)

	case models.BooleanProps:
		b, ok := v.(bool)
		if !ok {
			return fmt.Sprint(v)
		}
		if b {
			return p.Labels().True
		}
		return p.Labels().False

	case models.DateProps:
		t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
		if err != nil {
			return fmt.Sprint(v)
		}
		if p.IsTimestamp {
			return t.Format("2006-01-02 15:04:05")
		}
		return t.Format("2006-01-02")

	case models.EnumProps:
		return strings.Join(mapItems(v, func(item any) string {
			return filter.StartCase(cast.ToString(item))
		}), ", ")

	case models.ObjectProps, models.AsyncListProps:
		labelKey, valueKey := models.OptionKeys(p)
		return strings.Join(mapItems(v, func(item any) string {
			return optionLabel(item, labelKey, valueKey)
		}), ", ")
	}

	switch v := v.(type) {
	case []any:
		return strings.Join(mapItems(v, cast.ToString), ", ")
	case map[string]any:
		return optionLabel(v, "label", "value")
	}
	return cast.ToString(v)
}

func mapItems(v any, fn func(any) string) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{fn(v)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// optionLabel shows the label of an option record, or its key, or the value itself
func optionLabel(item any, labelKey, valueKey string) string {
	m, ok := item.(map[string]any)
	if !ok {
		return cast.ToString(item)
	}
	if label, ok := models.Option(m).Field(labelKey); ok {
		return label
	}
	if key, ok := models.Option(m).Field(valueKey); ok {
		return key
	}
	return ""
}
