package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// dateInputLayouts are tried in order when parsing an entered date
var dateInputLayouts = []string{
	models.DateLayout,
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"Jan 02, 2006",
}

// ParseValue turns text entered by the user into the value type paired with
// props. Number input is converted to the record unit and dates on
// non-timestamp columns are pinned to the start or end of the day cond needs.
func ParseValue(props models.ColumnProps, cond models.Condition, raw []string) (models.Value, error) {
	raw = lo.FilterMap(raw, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	if len(raw) == 0 {
		return nil, ErrEmptyValue
	}

	switch p := props.(type) {
	case models.StringProps:
		return models.TextValue(strings.Join(raw, " ")), nil

	case models.NumberProps:
		n, err := cast.ToFloat64E(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw[0])
		}
		return models.NumberValue(p.Canonical(n)), nil

	case models.BooleanProps:
		return parseBool(p, raw[0])

	case models.DateProps:
		t, err := ParseDate(raw[0])
		if err != nil {
			return nil, err
		}
		if !p.IsTimestamp {
			t = NormalizeDate(t, cond)
		}
		return models.DateValue(t), nil

	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		return models.ListValue(lo.Uniq(raw)), nil

	default:
		return nil, fmt.Errorf("%w: column has no value type", ErrInvalidValue)
	}
}

func parseBool(p models.BooleanProps, s string) (models.Value, error) {
	labels := p.Labels()
	switch {
	case strings.EqualFold(s, labels.True):
		return models.BoolValue(true), nil
	case strings.EqualFold(s, labels.False):
		return models.BoolValue(false), nil
	}
	b, err := cast.ToBoolE(strings.ToLower(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not %s or %s", ErrInvalidValue, s, labels.True, labels.False)
	}
	return models.BoolValue(b), nil
}

// ParseDate parses a date in one of the accepted input layouts
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, s)
}

// NormalizeDate pins t to the start of its day, or to the end of it for
// conditions whose boundary is the last moment of the day.
func NormalizeDate(t time.Time, cond models.Condition) time.Time {
	y, m, d := t.Date()
	switch cond {
	case models.CondIsAfter, models.CondIsOnOrBefore:
		return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}
