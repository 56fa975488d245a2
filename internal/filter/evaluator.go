package filter

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Evaluator decides whether records satisfy active filters.
// The zero value lets conditions it does not recognise pass every record;
// Strict makes them match nothing instead.
type Evaluator struct {
	Strict bool
}

var defaultEvaluator = Evaluator{}

// Match reports whether record satisfies f using the default evaluator
func Match(record models.Record, f models.ActiveFilter) bool {
	return defaultEvaluator.Match(record, f)
}

// Apply returns the records satisfying every filter using the default evaluator
func Apply(records []models.Record, filters []models.ActiveFilter) []models.Record {
	return defaultEvaluator.Apply(records, filters)
}

// Apply returns the records satisfying every filter, preserving order
func (e Evaluator) Apply(records []models.Record, filters []models.ActiveFilter) []models.Record {
	active := lo.Filter(filters, func(f models.ActiveFilter, _ int) bool {
		return f.IsActive()
	})
	if len(active) == 0 {
		return records
	}
	return lo.Filter(records, func(r models.Record, _ int) bool {
		return lo.EveryBy(active, func(f models.ActiveFilter) bool {
			return e.Match(r, f)
		})
	})
}

// Match reports whether record satisfies f. Filters still under construction
// match everything. Unknown conditions are decided before the field is read;
// otherwise fields that are missing or of the wrong shape match nothing.
func (e Evaluator) Match(record models.Record, f models.ActiveFilter) bool {
	if !f.IsActive() {
		return true
	}

	cond := EffectiveCondition(f)
	if !conditionKnown(f.EffectiveProps(), cond) {
		return !e.Strict
	}

	field, ok := Field(record, f.Column.Key)
	if !ok {
		return false
	}

	want := f.SelectedValue.Value

	var (
		matched bool
		known   bool
	)
	switch props := f.EffectiveProps().(type) {
	case models.StringProps:
		matched, known = matchString(field, cond, want)
	case models.NumberProps:
		matched, known = matchNumber(field, cond, want)
	case models.BooleanProps:
		matched, known = matchBoolean(field, cond, want)
	case models.DateProps:
		matched, known = matchDate(field, cond, want, props.IsTimestamp)
	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		_, valueKey := models.OptionKeys(props)
		matched, known = matchMember(field, cond, want, valueKey)
	default:
		return !e.Strict
	}

	if !known {
		return !e.Strict
	}
	return matched
}

func conditionKnown(props models.ColumnProps, cond models.Condition) bool {
	return props != nil && IsLegal(props.DataType(), cond)
}

// EffectiveCondition returns the operator the evaluator applies for f.
// Custom delegates may name their own operator when the selected custom
// value is not an operator of the delegate type.
func EffectiveCondition(f models.ActiveFilter) models.Condition {
	if f.DataType != models.DataTypeCustom || f.SubCondition == nil {
		return f.SelectedCondition
	}
	dt := f.SubCondition.DataType()
	if IsLegal(dt, f.SelectedCondition) {
		return f.SelectedCondition
	}
	if f.SubCondition.Condition != "" {
		return f.SubCondition.Condition
	}
	if conds := conditionsOf(dt); len(conds) > 0 {
		return conds[0]
	}
	return f.SelectedCondition
}

// The match helpers return (matched, known). known is false for a
// condition the data type does not define.

func matchString(field any, cond models.Condition, want models.Value) (bool, bool) {
	if cond != models.CondContains {
		return false, false
	}
	have, ok := asString(field)
	if !ok {
		return false, true
	}
	needle, ok := asString(want)
	if !ok {
		return false, true
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(needle)), true
}

func matchNumber(field any, cond models.Condition, want models.Value) (bool, bool) {
	if !lo.Contains(numberConditions, cond) {
		return false, false
	}
	have, ok := asNumber(field)
	if !ok {
		return false, true
	}
	target, ok := asNumber(want)
	if !ok {
		return false, true
	}

	switch cond {
	case models.CondEqual:
		return have == target, true
	case models.CondNotEqual:
		return have != target, true
	case models.CondGreaterThan:
		return have > target, true
	case models.CondGreaterOrEqual:
		return have >= target, true
	case models.CondLessThan:
		return have < target, true
	default:
		return have <= target, true
	}
}

func matchBoolean(field any, cond models.Condition, want models.Value) (bool, bool) {
	if cond != models.CondIs {
		return false, false
	}
	have, ok := field.(bool)
	if !ok {
		return false, true
	}

	var target bool
	switch v := want.(type) {
	case models.BoolValue:
		target = bool(v)
	case models.TextValue:
		target = string(v) == "true"
	default:
		return false, true
	}
	return have == target, true
}

func matchDate(field any, cond models.Condition, want models.Value, isTimestamp bool) (bool, bool) {
	if !lo.Contains(dateConditions, cond) {
		return false, false
	}
	have, ok := asTime(field)
	if !ok {
		return false, true
	}
	target, ok := asTime(want)
	if !ok {
		return false, true
	}

	if isTimestamp {
		have = have.Truncate(time.Second)
		target = target.Truncate(time.Second)
	} else {
		have = truncateDay(have)
		target = truncateDay(target)
	}

	switch cond {
	case models.CondIs:
		return have.Equal(target), true
	case models.CondIsAfter:
		return have.After(target), true
	case models.CondIsOnOrAfter:
		return !have.Before(target), true
	case models.CondIsBefore:
		return have.Before(target), true
	default:
		return !have.After(target), true
	}
}

func matchMember(field any, cond models.Condition, want models.Value, valueKey string) (bool, bool) {
	if !lo.Contains(memberConditions, cond) {
		return false, false
	}
	have, ok := asKeys(field, valueKey)
	if !ok {
		return false, true
	}

	var targets []string
	switch v := want.(type) {
	case models.ListValue:
		targets = v
	case models.TextValue:
		targets = []string{string(v)}
	default:
		return false, true
	}

	// The stored condition may disagree with the number of values; the
	// cardinality rule wins.
	switch ResolveCardinality(cond, len(targets)) {
	case models.CondIs:
		return len(targets) > 0 && lo.Contains(have, targets[0]), true
	case models.CondIsNot:
		return len(targets) > 0 && !lo.Contains(have, targets[0]), true
	case models.CondIsAnyOf:
		return lo.Some(have, targets), true
	default:
		return !lo.Some(have, targets), true
	}
}
