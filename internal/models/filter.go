package models

// DataType identifies how a column is filtered
type DataType string

const (
	DataTypeString    DataType = "string"
	DataTypeNumber    DataType = "number"
	DataTypeBoolean   DataType = "boolean"
	DataTypeDate      DataType = "date"
	DataTypeEnum      DataType = "enum"
	DataTypeObject    DataType = "object"
	DataTypeAsyncList DataType = "async_list"
	DataTypeCustom    DataType = "custom"
)

// IsMembership reports whether values of this type are picked from a list of options
func (d DataType) IsMembership() bool {
	return d == DataTypeEnum || d == DataTypeObject || d == DataTypeAsyncList
}

// Condition represents a filter comparison operator
type Condition string

const (
	CondContains Condition = "contains"

	CondEqual          Condition = "="
	CondNotEqual       Condition = "!="
	CondGreaterThan    Condition = ">"
	CondGreaterOrEqual Condition = ">="
	CondLessThan       Condition = "<"
	CondLessOrEqual    Condition = "<="

	CondIs         Condition = "is"
	CondIsNot      Condition = "is not"
	CondIsAnyOf    Condition = "is any of"
	CondIsNotAnyOf Condition = "is not any of"

	CondIsAfter      Condition = "is after"
	CondIsOnOrAfter  Condition = "is on or after"
	CondIsBefore     Condition = "is before"
	CondIsOnOrBefore Condition = "is on or before"
)

// IsNegative reports whether the condition excludes the selected values
func (c Condition) IsNegative() bool {
	return c == CondIsNot || c == CondIsNotAnyOf
}

// ConditionOption is an entry in a condition menu
type ConditionOption struct {
	Label string
	Value string
}

// FilterValue is the value half of an active filter.
// MetaData carries the option records behind the raw keys held in Value,
// so tags can show labels without reloading options.
type FilterValue struct {
	Value    Value
	MetaData []Option
}

// IsEmpty reports whether no usable value has been entered
func (v *FilterValue) IsEmpty() bool {
	return v == nil || v.Value == nil || v.Value.IsEmpty()
}

// ActiveFilter is one entry of the working filter set
type ActiveFilter struct {
	ID       string
	Column   Column
	DataType DataType

	// Set only for custom columns once a delegate condition was chosen
	SubDataType  DataType
	SubCondition *CustomCondition

	SelectedCondition Condition
	SelectedValue     *FilterValue
}

// EffectiveDataType returns the type the filter behaves as
func (f ActiveFilter) EffectiveDataType() DataType {
	if f.DataType == DataTypeCustom {
		return f.SubDataType
	}
	return f.DataType
}

// EffectiveProps returns the value configuration the filter behaves as
func (f ActiveFilter) EffectiveProps() ColumnProps {
	if f.DataType == DataTypeCustom {
		if f.SubCondition == nil {
			return nil
		}
		return f.SubCondition.Props
	}
	return f.Column.Props
}

// IsActive reports whether the filter has both a condition and a value.
// Filters still under construction do not take part in evaluation.
func (f ActiveFilter) IsActive() bool {
	return f.SelectedCondition != "" && !f.SelectedValue.IsEmpty()
}

// Clone returns a copy that shares no mutable slices with f
func (f ActiveFilter) Clone() ActiveFilter {
	out := f
	if f.SelectedValue != nil {
		v := *f.SelectedValue
		if list, ok := v.Value.(ListValue); ok {
			v.Value = append(ListValue(nil), list...)
		}
		v.MetaData = append([]Option(nil), f.SelectedValue.MetaData...)
		out.SelectedValue = &v
	}
	return out
}
