package models

import "time"

// Column describes one filterable field of a record.
// The data type is derived from Props and cannot change once authored.
type Column struct {
	Key   string
	Label string
	Icon  string

	// IsUnique limits the column to a single active filter. When nil,
	// enum, object, async_list and boolean columns are unique by default.
	IsUnique *bool

	Props ColumnProps
}

// DataType returns the data type implied by the column's props
func (c Column) DataType() DataType {
	if c.Props == nil {
		return ""
	}
	return c.Props.DataType()
}

// ColumnProps is the per-type configuration of a column
type ColumnProps interface {
	DataType() DataType
	isColumnProps()
}

// StringProps configures a free-text column
type StringProps struct{}

// NumberProps configures a numeric column.
// Transform converts a number typed by the user into the unit the records
// hold; ReverseTransform converts record values and stored filter values back
// into the typed unit for display and editing. Record values are compared
// untransformed.
type NumberProps struct {
	Transform        func(float64) float64
	ReverseTransform func(float64) float64
}

// Canonical converts a typed number into the record unit
func (p NumberProps) Canonical(v float64) float64 {
	if p.Transform == nil {
		return v
	}
	return p.Transform(v)
}

// Display applies ReverseTransform when configured
func (p NumberProps) Display(v float64) float64 {
	if p.ReverseTransform == nil {
		return v
	}
	return p.ReverseTransform(v)
}

// BooleanLabels are the strings shown for each boolean state
type BooleanLabels struct {
	True  string
	False string
}

// BooleanProps configures a true/false column
type BooleanProps struct {
	DisplayLabels BooleanLabels
}

// Labels returns the display labels, falling back to True/False
func (p BooleanProps) Labels() BooleanLabels {
	labels := p.DisplayLabels
	if labels.True == "" {
		labels.True = "True"
	}
	if labels.False == "" {
		labels.False = "False"
	}
	return labels
}

// PresetsType selects whether date presets look backwards or forwards
type PresetsType string

const (
	PresetsPrevious PresetsType = "previous"
	PresetsFuture   PresetsType = "future"
)

// DatePreset is a quick-pick date offered by the date editor
type DatePreset struct {
	Label string
	Value time.Time
}

// DateProps configures a date column
type DateProps struct {
	// IsTimestamp keeps the time of day when comparing
	IsTimestamp bool
	PresetsType PresetsType
	Presets     []DatePreset
}

// EnumProps configures a column whose values come from a fixed string list
type EnumProps struct {
	Options                  []string
	EnableNegativeConditions bool
}

// ObjectProps configures a column whose values are picked from inline option records
type ObjectProps struct {
	Options                  []Option
	LabelKey                 string
	ValueKey                 string
	EnableNegativeConditions bool
}

// AsyncListProps configures a column whose options are loaded on demand.
// LoadOptionsOf names the loader registered by the host application.
type AsyncListProps struct {
	LoadOptionsOf            string
	LabelKey                 string
	ValueKey                 string
	EnableNegativeConditions bool
}

// CustomCondition is one delegate of a custom column
type CustomCondition struct {
	Label string
	Value string

	// Condition is the delegate operator used when Value is not itself an
	// operator of the delegate type
	Condition Condition

	Props ColumnProps
}

// DataType returns the delegate's data type
func (c CustomCondition) DataType() DataType {
	if c.Props == nil {
		return ""
	}
	return c.Props.DataType()
}

// CustomProps configures a column that is a menu of delegate columns
type CustomProps struct {
	Conditions []CustomCondition
}

func (StringProps) DataType() DataType    { return DataTypeString }
func (NumberProps) DataType() DataType    { return DataTypeNumber }
func (BooleanProps) DataType() DataType   { return DataTypeBoolean }
func (DateProps) DataType() DataType      { return DataTypeDate }
func (EnumProps) DataType() DataType      { return DataTypeEnum }
func (ObjectProps) DataType() DataType    { return DataTypeObject }
func (AsyncListProps) DataType() DataType { return DataTypeAsyncList }
func (CustomProps) DataType() DataType    { return DataTypeCustom }

func (StringProps) isColumnProps()    {}
func (NumberProps) isColumnProps()    {}
func (BooleanProps) isColumnProps()   {}
func (DateProps) isColumnProps()      {}
func (EnumProps) isColumnProps()      {}
func (ObjectProps) isColumnProps()    {}
func (AsyncListProps) isColumnProps() {}
func (CustomProps) isColumnProps()    {}

// NegativeConditionsEnabled reports whether "is not" style conditions are offered
func NegativeConditionsEnabled(p ColumnProps) bool {
	switch p := p.(type) {
	case EnumProps:
		return p.EnableNegativeConditions
	case ObjectProps:
		return p.EnableNegativeConditions
	case AsyncListProps:
		return p.EnableNegativeConditions
	}
	return false
}

// OptionKeys returns the label and value keys used to read option records
func OptionKeys(p ColumnProps) (labelKey, valueKey string) {
	switch p := p.(type) {
	case ObjectProps:
		labelKey, valueKey = p.LabelKey, p.ValueKey
	case AsyncListProps:
		labelKey, valueKey = p.LabelKey, p.ValueKey
	}
	if labelKey == "" {
		labelKey = "label"
	}
	if valueKey == "" {
		valueKey = "value"
	}
	return labelKey, valueKey
}
