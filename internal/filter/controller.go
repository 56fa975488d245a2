package filter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Stage is where the filter being built currently stands
type Stage int

const (
	// StageIdle means no filter is being built
	StageIdle Stage = iota
	// StageCondition means a column was picked and a condition is still needed
	StageCondition
	// StageValue means the condition is known and a value is still needed
	StageValue
)

func (s Stage) String() string {
	switch s {
	case StageCondition:
		return "condition"
	case StageValue:
		return "value"
	default:
		return "idle"
	}
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithOnChange registers a callback run with the committed filters after every change
func WithOnChange(fn func([]models.ActiveFilter)) ControllerOption {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithIDGenerator replaces the generator of filter ids
func WithIDGenerator(fn func() string) ControllerOption {
	return func(c *Controller) {
		c.newID = fn
	}
}

// Controller owns the committed filters and the single filter being built.
// All mutation goes through its transitions; it is not safe for concurrent use.
type Controller struct {
	columns  []models.Column
	filters  []models.ActiveFilter
	draft    *models.ActiveFilter
	onChange func([]models.ActiveFilter)
	newID    func() string
}

// NewController creates a controller for the given columns
func NewController(columns []models.Column, opts ...ControllerOption) *Controller {
	c := &Controller{
		columns: columns,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Columns returns every column the controller knows about
func (c *Controller) Columns() []models.Column {
	return c.columns
}

// Filters returns a copy of the committed filters
func (c *Controller) Filters() []models.ActiveFilter {
	return lo.Map(c.filters, func(f models.ActiveFilter, _ int) models.ActiveFilter {
		return f.Clone()
	})
}

// SetFilters replaces the committed filters without notifying the change callback.
// Hosts that own the filter list use it to push their state back in.
func (c *Controller) SetFilters(filters []models.ActiveFilter) {
	c.filters = lo.Map(filters, func(f models.ActiveFilter, _ int) models.ActiveFilter {
		return f.Clone()
	})
}

// Draft returns the filter being built, if any
func (c *Controller) Draft() (models.ActiveFilter, bool) {
	if c.draft == nil {
		return models.ActiveFilter{}, false
	}
	return c.draft.Clone(), true
}

// Stage reports what the filter being built still needs
func (c *Controller) Stage() Stage {
	switch {
	case c.draft == nil:
		return StageIdle
	case c.draft.SelectedCondition == "":
		return StageCondition
	default:
		return StageValue
	}
}

// AvailableColumns returns the columns a new filter can be built on
func (c *Controller) AvailableColumns() []models.Column {
	return AvailableColumns(c.columns, c.filters)
}

// ConditionOptions returns the condition menu for the filter being built
func (c *Controller) ConditionOptions() []models.ConditionOption {
	if c.draft == nil {
		return nil
	}
	return ConditionsForColumn(c.draft.Column, selectedCount(c.draft))
}

// ColumnByKey finds a column by key, or by label ignoring case
func (c *Controller) ColumnByKey(key string) (models.Column, bool) {
	if col, ok := lo.Find(c.columns, func(col models.Column) bool {
		return col.Key == key
	}); ok {
		return col, true
	}
	return lo.Find(c.columns, func(col models.Column) bool {
		return strings.EqualFold(col.Label, key) || strings.EqualFold(col.Key, key)
	})
}

// SelectColumn starts a new filter on the column, replacing any filter being built.
// Columns without a condition step get their condition straight away.
func (c *Controller) SelectColumn(key string) error {
	col, ok := c.ColumnByKey(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if !lo.ContainsBy(c.AvailableColumns(), func(a models.Column) bool { return a.Key == col.Key }) {
		return fmt.Errorf("%w: %s", ErrColumnUnavailable, col.Key)
	}

	c.draft = &models.ActiveFilter{
		ID:       c.newID(),
		Column:   col,
		DataType: col.DataType(),
	}
	if !ShowsConditionStep(col) {
		c.draft.SelectedCondition = ImplicitCondition(col)
	}
	return nil
}

// SelectCondition sets the condition of the filter being built. For custom
// columns value names one of the column's custom conditions, by value or label.
func (c *Controller) SelectCondition(value string) error {
	if c.draft == nil {
		return ErrNoDraft
	}

	if props, ok := c.draft.Column.Props.(models.CustomProps); ok {
		custom, found := lo.Find(props.Conditions, func(cc models.CustomCondition) bool {
			return cc.Value == value || strings.EqualFold(cc.Label, value)
		})
		if !found {
			return fmt.Errorf("%w: %q on %s", ErrIllegalCondition, value, c.draft.Column.Key)
		}
		if c.draft.SubCondition == nil || c.draft.SubCondition.Value != custom.Value {
			c.draft.SelectedValue = nil
		}
		c.draft.SubCondition = &custom
		c.draft.SubDataType = custom.DataType()
		c.draft.SelectedCondition = models.Condition(custom.Value)
		return nil
	}

	cond := models.Condition(value)
	if !conditionAllowed(c.draft.Column, cond) {
		return fmt.Errorf("%w: %q on %s", ErrIllegalCondition, value, c.draft.Column.Key)
	}
	c.draft.SelectedCondition = cond
	return nil
}

// conditionAllowed accepts any operator of the column's type, except negative
// membership operators on columns that do not enable them
func conditionAllowed(col models.Column, cond models.Condition) bool {
	dt := col.DataType()
	if !IsLegal(dt, cond) {
		return false
	}
	if dt.IsMembership() && cond.IsNegative() {
		return models.NegativeConditionsEnabled(col.Props)
	}
	return true
}

// Apply parses raw into the value of the filter being built and commits it.
// meta carries the option records behind membership keys.
func (c *Controller) Apply(raw []string, meta []models.Option) error {
	if c.draft == nil {
		return ErrNoDraft
	}
	if c.draft.SelectedCondition == "" {
		return ErrNoCondition
	}

	v, err := ParseValue(c.draft.EffectiveProps(), EffectiveCondition(*c.draft), raw)
	if err != nil {
		return err
	}
	return c.ApplyValue(models.FilterValue{Value: v, MetaData: meta})
}

// ApplyValue commits the filter being built with an already typed value.
// Membership conditions are upgraded or downgraded to match the number of
// values, and a filter with an existing id is replaced in place.
func (c *Controller) ApplyValue(fv models.FilterValue) error {
	if c.draft == nil {
		return ErrNoDraft
	}
	if c.draft.SelectedCondition == "" {
		return ErrNoCondition
	}
	if fv.IsEmpty() {
		return ErrEmptyValue
	}

	f := *c.draft
	f.SelectedValue = &fv
	if list, ok := fv.Value.(models.ListValue); ok && f.DataType.IsMembership() {
		f.SelectedCondition = ResolveCardinality(f.SelectedCondition, len(list))
	}
	f = f.Clone()

	if _, i, ok := lo.FindIndexOf(c.filters, func(x models.ActiveFilter) bool { return x.ID == f.ID }); ok {
		c.filters[i] = f
	} else {
		c.filters = append(c.filters, f)
	}
	c.draft = nil
	c.notify()
	return nil
}

// ApplyClause builds and commits a filter from a parsed expression in one go.
// The filter being built is discarded if any step fails.
func (c *Controller) ApplyClause(cl Clause) error {
	if err := c.applyClause(cl); err != nil {
		c.Discard()
		return err
	}
	return nil
}

func (c *Controller) applyClause(cl Clause) error {
	if err := c.SelectColumn(cl.Column); err != nil {
		return err
	}
	col := c.draft.Column

	if c.Stage() == StageCondition {
		if err := c.SelectCondition(string(cl.Condition)); err != nil {
			return err
		}
	} else if !implicitMatches(col, cl.Condition) {
		return fmt.Errorf("%w: %q on %s", ErrIllegalCondition, cl.Condition, col.Key)
	}

	values, meta := resolveOptions(c.draft.EffectiveProps(), cl.Values)
	return c.Apply(values, meta)
}

// implicitMatches reports whether a written condition agrees with the one a
// column assigns by itself. Membership columns accept either cardinality.
func implicitMatches(col models.Column, cond models.Condition) bool {
	implicit := ImplicitCondition(col)
	if col.DataType().IsMembership() {
		return ResolveCardinality(cond, 1) == ResolveCardinality(implicit, 1)
	}
	return cond == implicit
}

// resolveOptions maps values written as option labels to their keys and
// collects the matching option records. Unknown values pass through unchanged.
func resolveOptions(props models.ColumnProps, values []string) ([]string, []models.Option) {
	p, ok := props.(models.ObjectProps)
	if !ok {
		return values, nil
	}
	labelKey, valueKey := models.OptionKeys(p)

	var meta []models.Option
	keys := lo.Map(values, func(v string, _ int) string {
		opt, found := lo.Find(p.Options, func(o models.Option) bool {
			key, _ := o.Field(valueKey)
			label, _ := o.Field(labelKey)
			return key == v || strings.EqualFold(label, v)
		})
		if !found {
			return v
		}
		meta = append(meta, opt)
		key, _ := opt.Field(valueKey)
		return key
	})
	return keys, meta
}

// Edit reopens a committed filter for changes under its existing id
func (c *Controller) Edit(id string) error {
	f, ok := lo.Find(c.filters, func(f models.ActiveFilter) bool { return f.ID == id })
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, id)
	}
	d := f.Clone()
	c.draft = &d
	return nil
}

// Discard drops the filter being built
func (c *Controller) Discard() {
	c.draft = nil
}

// Remove deletes a committed filter and drops the filter being built
func (c *Controller) Remove(id string) error {
	n := len(c.filters)
	c.filters = lo.Reject(c.filters, func(f models.ActiveFilter, _ int) bool { return f.ID == id })
	if len(c.filters) == n {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, id)
	}
	c.draft = nil
	c.notify()
	return nil
}

// ClearAll deletes every committed filter and drops the filter being built
func (c *Controller) ClearAll() {
	c.filters = nil
	c.draft = nil
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Filters())
	}
}

func selectedCount(f *models.ActiveFilter) int {
	if f.SelectedValue == nil {
		return 0
	}
	if list, ok := f.SelectedValue.Value.(models.ListValue); ok {
		return len(list)
	}
	return 0
}
