package filter

import "errors"

// Controller contract violations. The evaluator itself never fails.
var (
	ErrNoDraft           = errors.New("no filter is being built")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnUnavailable = errors.New("column already has a filter")
	ErrIllegalCondition  = errors.New("condition not allowed for column")
	ErrNoCondition       = errors.New("no condition selected")
	ErrEmptyValue        = errors.New("filter value is empty")
	ErrInvalidValue      = errors.New("invalid filter value")
	ErrUnknownFilter     = errors.New("unknown filter")
)
