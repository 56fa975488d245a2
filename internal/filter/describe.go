package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Tag is the display form of one filter: column, condition and value
type Tag struct {
	Column    string
	Condition string
	Value     string
}

// String renders the tag as "column | condition | value"
func (t Tag) String() string {
	parts := []string{t.Column}
	if t.Condition != "" {
		parts = append(parts, t.Condition)
	}
	if t.Value != "" {
		parts = append(parts, t.Value)
	}
	return strings.Join(parts, " | ")
}

// Describe renders a filter for display. Filters still being built render
// whatever has been chosen so far.
func Describe(f models.ActiveFilter) Tag {
	tag := Tag{Column: f.Column.Label}
	if tag.Column == "" {
		tag.Column = StartCase(f.Column.Key)
	}

	switch {
	case f.DataType == models.DataTypeCustom && f.SubCondition != nil:
		tag.Condition = f.SubCondition.Label
	case f.SelectedCondition != "":
		tag.Condition = string(f.SelectedCondition)
	}

	if !f.SelectedValue.IsEmpty() {
		tag.Value = describeValue(f.EffectiveProps(), f.SelectedValue)
	}
	return tag
}

// Summary renders every active filter, joined with "and"
func Summary(filters []models.ActiveFilter) string {
	tags := lo.FilterMap(filters, func(f models.ActiveFilter, _ int) (string, bool) {
		return Describe(f).String(), f.IsActive()
	})
	return strings.Join(tags, " and ")
}

func describeValue(props models.ColumnProps, fv *models.FilterValue) string {
	switch v := fv.Value.(type) {
	case models.BoolValue:
		labels := models.BooleanProps{}.Labels()
		if p, ok := props.(models.BooleanProps); ok {
			labels = p.Labels()
		}
		if v {
			return labels.True
		}
		return labels.False

	case models.DateValue:
		layout := "Jan 02, 2006"
		if p, ok := props.(models.DateProps); ok && p.IsTimestamp {
			layout += " 15:04:05"
		}
		return time.Time(v).Format(layout)

	case models.NumberValue:
		n := float64(v)
		if p, ok := props.(models.NumberProps); ok {
			n = p.Display(n)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)

	case models.ListValue:
		return strings.Join(listLabels(props, v, fv.MetaData), ", ")

	default:
		return fv.Value.String()
	}
}

// listLabels resolves selected keys to labels. Enum keys are start-cased,
// option keys use the labels carried in metadata and fall back to the key.
func listLabels(props models.ColumnProps, keys models.ListValue, meta []models.Option) []string {
	if _, ok := props.(models.EnumProps); ok {
		return lo.Map(keys, func(k string, _ int) string {
			return StartCase(k)
		})
	}

	labelKey, valueKey := models.OptionKeys(props)
	return lo.Map(keys, func(k string, _ int) string {
		opt, found := lo.Find(meta, func(o models.Option) bool {
			v, ok := o.Field(valueKey)
			return ok && v == k
		})
		if !found {
			return k
		}
		if label, ok := opt.Field(labelKey); ok {
			return label
		}
		return k
	})
}
