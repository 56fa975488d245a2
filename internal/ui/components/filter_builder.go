package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// FiltersChangedMsg is sent after a filter was committed, replaced or removed
type FiltersChangedMsg struct {
	Filters []models.ActiveFilter
}

// CloseFilterBuilderMsg is sent when the filter builder should close
type CloseFilterBuilderMsg struct{}

// builderMode is the step the builder shows. It follows the controller's
// stage except when the user goes back to change the condition.
type builderMode string

const (
	modeColumn    builderMode = "column"
	modeCondition builderMode = "condition"
	modeValue     builderMode = "value"
)

// FilterBuilder walks the user through column, condition and value
type FilterBuilder struct {
	Width    int
	Height   int
	Theme    theme.Theme
	Loaders  *options.Registry
	Debounce time.Duration
	Now      func() time.Time

	ctrl *filter.Controller

	mode            builderMode
	input           textinput.Model
	cursor          int
	validationError string

	// value editors
	boolIndex   int
	presets     []models.DatePreset
	presetIndex int
	picker      *MultiSelect
}

// NewFilterBuilder creates a builder driving ctrl
func NewFilterBuilder(th theme.Theme, ctrl *filter.Controller) *FilterBuilder {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return &FilterBuilder{
		Width:       60,
		Height:      20,
		Theme:       th,
		Loaders:     options.NewRegistry(),
		Now:         time.Now,
		ctrl:        ctrl,
		mode:        modeColumn,
		input:       ti,
		presetIndex: -1,
	}
}

// Open starts a new filter at the column step
func (fb *FilterBuilder) Open() {
	fb.ctrl.Discard()
	fb.reset(modeColumn)
	fb.input.Placeholder = "Search columns..."
}

// OpenEdit reopens a committed filter at its value step
func (fb *FilterBuilder) OpenEdit(id string) (tea.Cmd, error) {
	if err := fb.ctrl.Edit(id); err != nil {
		return nil, err
	}
	return fb.enterStage(), nil
}

// OpenColumn starts a new filter on a column, skipping the column step
func (fb *FilterBuilder) OpenColumn(key string) (tea.Cmd, error) {
	fb.Open()
	if err := fb.ctrl.SelectColumn(key); err != nil {
		return nil, err
	}
	return fb.enterStage(), nil
}

// Mode returns the step currently shown
func (fb *FilterBuilder) Mode() string {
	return string(fb.mode)
}

// Error returns the last validation error
func (fb *FilterBuilder) Error() string {
	return fb.validationError
}

func (fb *FilterBuilder) reset(mode builderMode) {
	fb.mode = mode
	fb.cursor = 0
	fb.validationError = ""
	fb.input.SetValue("")
	fb.input.Placeholder = ""
	fb.boolIndex = 0
	fb.presets = nil
	fb.presetIndex = -1
	fb.picker = nil
}

// enterStage moves to the step the controller needs next and prepares its editor
func (fb *FilterBuilder) enterStage() tea.Cmd {
	switch fb.ctrl.Stage() {
	case filter.StageIdle:
		fb.reset(modeColumn)
		fb.input.Placeholder = "Search columns..."
		return nil
	case filter.StageCondition:
		fb.reset(modeCondition)
		return nil
	}

	fb.reset(modeValue)
	draft, _ := fb.ctrl.Draft()
	return fb.prepareValue(draft)
}

// prepareValue sets up the editor of the draft's effective data type,
// prefilled with its current value
func (fb *FilterBuilder) prepareValue(draft models.ActiveFilter) tea.Cmd {
	props := draft.EffectiveProps()
	var current models.Value
	if draft.SelectedValue != nil {
		current = draft.SelectedValue.Value
	}

	switch p := props.(type) {
	case models.BooleanProps:
		if b, ok := current.(models.BoolValue); ok && !bool(b) {
			fb.boolIndex = 1
		}

	case models.DateProps:
		fb.presets = filter.DatePresets(p, fb.Now())
		fb.input.Placeholder = "YYYY-MM-DD"
		if p.IsTimestamp {
			fb.input.Placeholder = "YYYY-MM-DD HH:MM:SS"
		}
		if d, ok := current.(models.DateValue); ok {
			fb.input.SetValue(formatDateInput(time.Time(d), p.IsTimestamp))
		}

	case models.NumberProps:
		fb.input.Placeholder = "Number"
		if n, ok := current.(models.NumberValue); ok {
			fb.input.SetValue(strconv.FormatFloat(p.Display(float64(n)), 'f', -1, 64))
		}

	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		loader, ok := fb.Loaders.ForProps(p)
		if !ok {
			fb.validationError = "no option loader for " + draft.Column.Key
		}
		labelKey, valueKey := models.OptionKeys(p)
		fb.picker = NewMultiSelect(fb.Theme, loader, labelKey, valueKey)
		fb.picker.Debounce = fb.Debounce
		if list, ok := current.(models.ListValue); ok {
			fb.picker.SetSelected(list, draft.SelectedValue.MetaData)
		}
		if !ok {
			return nil
		}
		return fb.picker.Query()

	default:
		fb.input.Placeholder = "Value"
		if current != nil {
			fb.input.SetValue(current.String())
		}
	}
	return nil
}

func formatDateInput(t time.Time, timestamp bool) string {
	if timestamp {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02")
}

// Columns returns the columns matching the search text
func (fb *FilterBuilder) Columns() []models.Column {
	q := strings.ToLower(strings.TrimSpace(fb.input.Value()))
	return lo.Filter(fb.ctrl.AvailableColumns(), func(c models.Column, _ int) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(c.Label), q) ||
			strings.Contains(strings.ToLower(c.Key), q)
	})
}

// Update handles keys and the option messages of the value picker
func (fb *FilterBuilder) Update(msg tea.Msg) (*FilterBuilder, tea.Cmd) {
	switch msg := msg.(type) {
	case optionQueryMsg, OptionsLoadedMsg:
		if fb.picker == nil {
			return fb, nil
		}
		var cmd tea.Cmd
		fb.picker, cmd = fb.picker.Update(msg)
		return fb, cmd
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return fb.back()
		}
		switch fb.mode {
		case modeColumn:
			return fb.handleColumnMode(msg)
		case modeCondition:
			return fb.handleConditionMode(msg)
		default:
			return fb.handleValueMode(msg)
		}
	}
	return fb, nil
}

// back leaves the value step for the condition step when there is one,
// otherwise drops the draft and closes
func (fb *FilterBuilder) back() (*FilterBuilder, tea.Cmd) {
	if fb.mode == modeValue {
		if draft, ok := fb.ctrl.Draft(); ok && filter.ShowsConditionStep(draft.Column) {
			fb.reset(modeCondition)
			return fb, nil
		}
	}
	fb.ctrl.Discard()
	fb.reset(modeColumn)
	return fb, func() tea.Msg {
		return CloseFilterBuilderMsg{}
	}
}

func (fb *FilterBuilder) handleColumnMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	cols := fb.Columns()
	switch msg.String() {
	case "up", "ctrl+p":
		if fb.cursor > 0 {
			fb.cursor--
		}
		return fb, nil
	case "down", "ctrl+n":
		if fb.cursor < len(cols)-1 {
			fb.cursor++
		}
		return fb, nil
	case "enter":
		if len(cols) == 0 {
			fb.validationError = "no matching column"
			return fb, nil
		}
		if err := fb.ctrl.SelectColumn(cols[fb.cursor].Key); err != nil {
			fb.validationError = err.Error()
			return fb, nil
		}
		return fb, fb.enterStage()
	}

	var cmd tea.Cmd
	fb.input, cmd = fb.input.Update(msg)
	fb.cursor = min(fb.cursor, max(len(fb.Columns())-1, 0))
	return fb, cmd
}

func (fb *FilterBuilder) handleConditionMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	opts := fb.ctrl.ConditionOptions()
	switch msg.String() {
	case "up", "k":
		if fb.cursor > 0 {
			fb.cursor--
		}
	case "down", "j":
		if fb.cursor < len(opts)-1 {
			fb.cursor++
		}
	case "enter":
		if len(opts) == 0 {
			return fb, nil
		}
		if err := fb.ctrl.SelectCondition(opts[fb.cursor].Value); err != nil {
			fb.validationError = err.Error()
			return fb, nil
		}
		fb.reset(modeValue)
		draft, _ := fb.ctrl.Draft()
		return fb, fb.prepareValue(draft)
	}
	return fb, nil
}

func (fb *FilterBuilder) handleValueMode(msg tea.KeyMsg) (*FilterBuilder, tea.Cmd) {
	draft, ok := fb.ctrl.Draft()
	if !ok {
		fb.reset(modeColumn)
		return fb, nil
	}

	switch p := draft.EffectiveProps().(type) {
	case models.BooleanProps:
		switch msg.String() {
		case "up", "down", "left", "right", "h", "l", "k", "j", "tab":
			fb.boolIndex = 1 - fb.boolIndex
			return fb, nil
		case "enter":
			labels := p.Labels()
			value := labels.True
			if fb.boolIndex == 1 {
				value = labels.False
			}
			return fb.commit([]string{value}, nil)
		}
		return fb, nil

	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		if fb.picker == nil {
			return fb, nil
		}
		if msg.String() == "enter" {
			keys, meta := fb.picker.Selected()
			return fb.commit(keys, meta)
		}
		var cmd tea.Cmd
		fb.picker, cmd = fb.picker.Update(msg)
		return fb, cmd

	case models.DateProps:
		switch msg.String() {
		case "tab", "shift+tab":
			if len(fb.presets) == 0 {
				return fb, nil
			}
			step := 1
			if msg.String() == "shift+tab" {
				step = len(fb.presets) - 1
			}
			fb.presetIndex = (fb.presetIndex + step) % len(fb.presets)
			fb.input.SetValue(formatDateInput(fb.presets[fb.presetIndex].Value, p.IsTimestamp))
			return fb, nil
		}
	}

	if msg.String() == "enter" {
		return fb.commit([]string{fb.input.Value()}, nil)
	}
	var cmd tea.Cmd
	fb.input, cmd = fb.input.Update(msg)
	return fb, cmd
}

// commit applies the value and reports the new filter list. The builder
// stays on the value step when the value is rejected.
func (fb *FilterBuilder) commit(raw []string, meta []models.Option) (*FilterBuilder, tea.Cmd) {
	if err := fb.ctrl.Apply(raw, meta); err != nil {
		if errors.Is(err, filter.ErrEmptyValue) {
			fb.validationError = "enter a value"
		} else {
			fb.validationError = err.Error()
		}
		return fb, nil
	}

	filters := fb.ctrl.Filters()
	fb.reset(modeColumn)
	return fb, tea.Batch(
		func() tea.Msg { return FiltersChangedMsg{Filters: filters} },
		func() tea.Msg { return CloseFilterBuilderMsg{} },
	)
}

// View renders the builder
func (fb *FilterBuilder) View() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Background).
		Background(fb.Theme.Info).
		Padding(0, 1).
		Bold(true)
	title := "Add filter"
	if draft, ok := fb.ctrl.Draft(); ok {
		title = filter.Describe(draft).String()
	}
	sections = append(sections, titleStyle.Render(title))

	instructionStyle := lipgloss.NewStyle().
		Foreground(fb.Theme.Muted).
		Padding(0, 1)
	sections = append(sections, instructionStyle.Render(fb.instructions()))

	if fb.validationError != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(fb.Theme.Error).
			Padding(0, 1).
			Bold(true)
		sections = append(sections, errorStyle.Render("Error: "+fb.validationError))
	}

	sections = append(sections, "")
	switch fb.mode {
	case modeColumn:
		sections = append(sections, fb.input.View())
		sections = append(sections, fb.columnList()...)
	case modeCondition:
		sections = append(sections, fb.conditionList()...)
	default:
		sections = append(sections, fb.valueEditor()...)
	}

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fb.Theme.BorderFocused).
		Width(fb.Width).
		Padding(0, 1)

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (fb *FilterBuilder) instructions() string {
	switch fb.mode {
	case modeColumn:
		return "Type to search, ↑↓ select, Enter to confirm, Esc to cancel"
	case modeCondition:
		return "↑↓ select condition, Enter to confirm, Esc to cancel"
	}

	draft, _ := fb.ctrl.Draft()
	switch draft.EffectiveProps().(type) {
	case models.BooleanProps:
		return "←→ choose, Enter to apply, Esc to go back"
	case models.DateProps:
		return "Type a date or Tab through presets, Enter to apply"
	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		return "Type to search, Space to toggle, Enter to apply"
	default:
		return "Type value, Enter to apply, Esc to go back"
	}
}

func (fb *FilterBuilder) selectable(i int, text string) string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if i == fb.cursor {
		style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground)
	}
	return style.Render(text)
}

func (fb *FilterBuilder) columnList() []string {
	cols := fb.Columns()
	if len(cols) == 0 {
		return []string{lipgloss.NewStyle().Foreground(fb.Theme.Muted).Italic(true).Render("No columns available")}
	}

	lines := make([]string, 0, len(cols))
	for i, c := range cols {
		label := c.Label
		if label == "" {
			label = filter.StartCase(c.Key)
		}
		if c.Icon != "" {
			label = c.Icon + " " + label
		}
		kind := lipgloss.NewStyle().Foreground(fb.Theme.ForType(c.DataType())).Render(string(c.DataType()))
		lines = append(lines, fb.selectable(i, fmt.Sprintf("%-24s", label))+" "+kind)
	}
	return lines
}

func (fb *FilterBuilder) conditionList() []string {
	opts := fb.ctrl.ConditionOptions()
	return lo.Map(opts, func(o models.ConditionOption, i int) string {
		return fb.selectable(i, o.Label)
	})
}

func (fb *FilterBuilder) valueEditor() []string {
	draft, _ := fb.ctrl.Draft()
	switch p := draft.EffectiveProps().(type) {
	case models.BooleanProps:
		labels := p.Labels()
		choices := []string{labels.True, labels.False}
		return lo.Map(choices, func(c string, i int) string {
			style := lipgloss.NewStyle().Padding(0, 1)
			if i == fb.boolIndex {
				style = style.Background(fb.Theme.Selection).Foreground(fb.Theme.Foreground)
			}
			return style.Render(c)
		})

	case models.EnumProps, models.ObjectProps, models.AsyncListProps:
		if fb.picker == nil {
			return nil
		}
		return []string{fb.picker.View()}

	case models.DateProps:
		lines := []string{fb.input.View()}
		for i, preset := range fb.presets {
			style := lipgloss.NewStyle().Foreground(fb.Theme.Muted).Padding(0, 1)
			if i == fb.presetIndex {
				style = style.Foreground(fb.Theme.Info).Bold(true)
			}
			lines = append(lines, style.Render(preset.Label))
		}
		return lines

	default:
		return []string{fb.input.View()}
	}
}
