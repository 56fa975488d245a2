package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout filter dates are stored and exchanged in
const DateLayout = "2006-01-02T15:04:05"

// Value is the selected value of a filter. Each data type pairs with one
// concrete value type: string with TextValue, number with NumberValue,
// boolean with BoolValue, date with DateValue and the membership types
// with ListValue.
type Value interface {
	IsEmpty() bool
	String() string
	isValue()
}

// TextValue holds free text
type TextValue string

// NumberValue holds a number in the unit the records hold
type NumberValue float64

// BoolValue holds a boolean state
type BoolValue bool

// DateValue holds a point in time
type DateValue time.Time

// ListValue holds the raw keys of selected options
type ListValue []string

func (v TextValue) IsEmpty() bool   { return strings.TrimSpace(string(v)) == "" }
func (v NumberValue) IsEmpty() bool { return false }
func (v BoolValue) IsEmpty() bool   { return false }
func (v DateValue) IsEmpty() bool   { return time.Time(v).IsZero() }
func (v ListValue) IsEmpty() bool   { return len(v) == 0 }

func (v TextValue) String() string { return string(v) }
func (v NumberValue) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }
func (v DateValue) String() string { return time.Time(v).Format(DateLayout) }
func (v ListValue) String() string { return strings.Join(v, ", ") }

func (TextValue) isValue()   {}
func (NumberValue) isValue() {}
func (BoolValue) isValue()   {}
func (DateValue) isValue()   {}
func (ListValue) isValue()   {}

// Option is an option record offered by object and async_list columns
type Option map[string]any

// Field returns the option's field formatted as a string.
// Only string and number fields are considered.
func (o Option) Field(key string) (string, bool) {
	switch v := o[key].(type) {
	case string:
		return v, true
	case int, int32, int64, float32, float64, uint, uint32, uint64:
		return fmt.Sprint(v), true
	}
	return "", false
}

// Record is one row of host data
type Record map[string]any
