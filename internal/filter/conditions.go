package filter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// conditionKeys holds the enum key names conditions are labelled with
var conditionKeys = map[models.Condition]string{
	models.CondContains:       "CONTAINS",
	models.CondEqual:          "EQUALS",
	models.CondNotEqual:       "NOT_EQUALS",
	models.CondGreaterThan:    "GREATER_THAN",
	models.CondGreaterOrEqual: "GREATER_THAN_OR_EQUAL",
	models.CondLessThan:       "LESS_THAN",
	models.CondLessOrEqual:    "LESS_THAN_OR_EQUAL",
	models.CondIs:             "IS",
	models.CondIsNot:          "IS_NOT",
	models.CondIsAnyOf:        "IS_ANY_OF",
	models.CondIsNotAnyOf:     "IS_NOT_ANY_OF",
	models.CondIsAfter:        "IS_AFTER",
	models.CondIsOnOrAfter:    "IS_ON_OR_AFTER",
	models.CondIsBefore:       "IS_BEFORE",
	models.CondIsOnOrBefore:   "IS_ON_OR_BEFORE",
}

var (
	stringConditions  = []models.Condition{models.CondContains}
	numberConditions  = []models.Condition{models.CondEqual, models.CondNotEqual, models.CondGreaterThan, models.CondGreaterOrEqual, models.CondLessThan, models.CondLessOrEqual}
	dateConditions    = []models.Condition{models.CondIs, models.CondIsAfter, models.CondIsOnOrAfter, models.CondIsBefore, models.CondIsOnOrBefore}
	booleanConditions = []models.Condition{models.CondIs}
	memberConditions  = []models.Condition{models.CondIs, models.CondIsNot, models.CondIsAnyOf, models.CondIsNotAnyOf}
)

// uniqueByDefault lists the data types limited to one filter unless a column opts out
var uniqueByDefault = []models.DataType{
	models.DataTypeAsyncList,
	models.DataTypeEnum,
	models.DataTypeObject,
	models.DataTypeBoolean,
}

// StartCase turns identifiers like "in_progress" or "IS_ANY_OF" into "In Progress" / "Is Any Of"
func StartCase(s string) string {
	words := lo.Words(strings.ToLower(s))
	return strings.Join(lo.Map(words, func(w string, _ int) string {
		return lo.Capitalize(w)
	}), " ")
}

// ConditionLabel returns the menu label of a built-in condition
func ConditionLabel(c models.Condition) string {
	if key, ok := conditionKeys[c]; ok {
		return StartCase(key)
	}
	return string(c)
}

func toOptions(conds []models.Condition) []models.ConditionOption {
	return lo.Map(conds, func(c models.Condition, _ int) models.ConditionOption {
		return models.ConditionOption{Label: ConditionLabel(c), Value: string(c)}
	})
}

// conditionsOf returns the raw operator set of a data type
func conditionsOf(dt models.DataType) []models.Condition {
	switch dt {
	case models.DataTypeString:
		return stringConditions
	case models.DataTypeNumber:
		return numberConditions
	case models.DataTypeDate:
		return dateConditions
	case models.DataTypeBoolean:
		return booleanConditions
	case models.DataTypeEnum, models.DataTypeObject, models.DataTypeAsyncList:
		return memberConditions
	default:
		return nil
	}
}

// ConditionsForType returns the ordered operator menu of a data type.
// Custom columns offer exactly their authored delegate conditions.
func ConditionsForType(dt models.DataType, custom []models.CustomCondition) []models.ConditionOption {
	if dt == models.DataTypeCustom {
		return lo.Map(custom, func(c models.CustomCondition, _ int) models.ConditionOption {
			return models.ConditionOption{Label: c.Label, Value: c.Value}
		})
	}
	return toOptions(conditionsOf(dt))
}

// IsLegal reports whether cond belongs to the operator set of dt
func IsLegal(dt models.DataType, cond models.Condition) bool {
	return lo.Contains(conditionsOf(dt), cond)
}

// ShowsConditionStep reports whether the user picks a condition before the value.
// The other types resolve their condition implicitly.
func ShowsConditionStep(col models.Column) bool {
	switch dt := col.DataType(); dt {
	case models.DataTypeDate, models.DataTypeCustom, models.DataTypeNumber:
		return true
	case models.DataTypeEnum, models.DataTypeObject, models.DataTypeAsyncList:
		return models.NegativeConditionsEnabled(col.Props)
	default:
		return false
	}
}

// ImplicitCondition returns the condition assigned when no condition step is shown
func ImplicitCondition(col models.Column) models.Condition {
	switch col.DataType() {
	case models.DataTypeString:
		return models.CondContains
	case models.DataTypeBoolean, models.DataTypeEnum, models.DataTypeObject, models.DataTypeAsyncList:
		return models.CondIs
	default:
		return ""
	}
}

// ConditionsForColumn returns the condition menu for a column given how many
// values are currently selected. Membership columns without negative
// conditions have no menu at all.
func ConditionsForColumn(col models.Column, selected int) []models.ConditionOption {
	dt := col.DataType()
	if dt.IsMembership() {
		if !models.NegativeConditionsEnabled(col.Props) {
			return nil
		}
		if selected > 1 {
			return toOptions([]models.Condition{models.CondIsAnyOf, models.CondIsNotAnyOf})
		}
		return toOptions([]models.Condition{models.CondIs, models.CondIsNot})
	}

	var custom []models.CustomCondition
	if p, ok := col.Props.(models.CustomProps); ok {
		custom = p.Conditions
	}
	return ConditionsForType(dt, custom)
}

// ResolveCardinality upgrades or downgrades a membership condition to match the
// number of selected values, keeping its polarity. No selection leaves it as is.
func ResolveCardinality(cond models.Condition, count int) models.Condition {
	if cond == "" {
		cond = models.CondIs
	}
	switch {
	case count > 1:
		if cond.IsNegative() {
			return models.CondIsNotAnyOf
		}
		return models.CondIsAnyOf
	case count == 1:
		if cond.IsNegative() {
			return models.CondIsNot
		}
		return models.CondIs
	default:
		return cond
	}
}

// IsUnique reports whether at most one filter may reference the column
func IsUnique(col models.Column) bool {
	if col.IsUnique != nil {
		return *col.IsUnique
	}
	return lo.Contains(uniqueByDefault, col.DataType())
}

// AvailableColumns returns the columns that can still be picked, preserving order.
// Unique columns already referenced by a committed filter are left out.
func AvailableColumns(columns []models.Column, committed []models.ActiveFilter) []models.Column {
	return lo.Filter(columns, func(col models.Column, _ int) bool {
		if !IsUnique(col) {
			return true
		}
		return !lo.ContainsBy(committed, func(f models.ActiveFilter) bool {
			return f.Column.Key == col.Key
		})
	})
}
