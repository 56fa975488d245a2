package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// Zone IDs for mouse click detection
const (
	ZoneFilterTagPrefix = "filter-tag-"
	ZoneAddFilter       = "filter-add"
)

// AddFilterMsg asks the host to open the builder for a new filter
type AddFilterMsg struct{}

// EditFilterMsg asks the host to reopen a filter in the builder
type EditFilterMsg struct {
	ID string
}

// RemoveFilterMsg asks the host to remove a filter
type RemoveFilterMsg struct {
	ID string
}

// ClearFiltersMsg asks the host to remove every filter
type ClearFiltersMsg struct{}

// FilterTags shows the active filters as a row of tags
type FilterTags struct {
	Width   int
	Theme   theme.Theme
	Focused bool

	filters []models.ActiveFilter
	cursor  int
}

// NewFilterTags creates an empty tag bar
func NewFilterTags(th theme.Theme) *FilterTags {
	return &FilterTags{Theme: th}
}

// SetFilters replaces the shown filters, keeping the cursor in range
func (ft *FilterTags) SetFilters(filters []models.ActiveFilter) {
	ft.filters = lo.Filter(filters, func(f models.ActiveFilter, _ int) bool {
		return f.IsActive()
	})
	if ft.cursor >= len(ft.filters) {
		ft.cursor = len(ft.filters) - 1
	}
	if ft.cursor < 0 {
		ft.cursor = 0
	}
}

// Len returns the number of tags
func (ft *FilterTags) Len() int {
	return len(ft.filters)
}

// Selected returns the filter under the cursor
func (ft *FilterTags) Selected() (models.ActiveFilter, bool) {
	if ft.cursor < 0 || ft.cursor >= len(ft.filters) {
		return models.ActiveFilter{}, false
	}
	return ft.filters[ft.cursor], true
}

// Move shifts the cursor, stopping at either end
func (ft *FilterTags) Move(delta int) {
	ft.cursor += delta
	if ft.cursor >= len(ft.filters) {
		ft.cursor = len(ft.filters) - 1
	}
	if ft.cursor < 0 {
		ft.cursor = 0
	}
}

// Update handles keys while focused
func (ft *FilterTags) Update(msg tea.KeyMsg) (*FilterTags, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		ft.Move(-1)
	case "right", "l":
		ft.Move(1)
	case "f", "+":
		return ft, func() tea.Msg { return AddFilterMsg{} }
	case "X":
		if len(ft.filters) == 0 {
			return ft, nil
		}
		return ft, func() tea.Msg { return ClearFiltersMsg{} }
	case "enter":
		if f, ok := ft.Selected(); ok {
			return ft, func() tea.Msg { return EditFilterMsg{ID: f.ID} }
		}
	case "d", "backspace", "delete":
		if f, ok := ft.Selected(); ok {
			return ft, func() tea.Msg { return RemoveFilterMsg{ID: f.ID} }
		}
	}
	return ft, nil
}

// HandleMouseClick selects the clicked tag and asks to edit it, or opens the
// builder when the add button was clicked
func (ft *FilterTags) HandleMouseClick(msg tea.MouseMsg) (bool, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false, nil
	}

	if zone.Get(ZoneAddFilter).InBounds(msg) {
		return true, func() tea.Msg { return AddFilterMsg{} }
	}
	for i, f := range ft.filters {
		if zone.Get(ZoneFilterTagPrefix + f.ID).InBounds(msg) {
			ft.cursor = i
			id := f.ID
			return true, func() tea.Msg { return EditFilterMsg{ID: id} }
		}
	}
	return false, nil
}

// View renders the tags followed by the add button
func (ft *FilterTags) View() string {
	parts := make([]string, 0, len(ft.filters)+1)
	for i, f := range ft.filters {
		parts = append(parts, zone.Mark(ZoneFilterTagPrefix+f.ID, ft.renderTag(f, ft.Focused && i == ft.cursor)))
	}

	addStyle := lipgloss.NewStyle().
		Foreground(ft.Theme.Muted).
		Padding(0, 1)
	if len(ft.filters) == 0 {
		parts = append(parts, zone.Mark(ZoneAddFilter, addStyle.Render("+ Filter")))
	} else {
		parts = append(parts, zone.Mark(ZoneAddFilter, addStyle.Render("+")))
	}

	line := strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(max(ft.Width, 1)).Render(line)
}

func (ft *FilterTags) renderTag(f models.ActiveFilter, selected bool) string {
	tag := filter.Describe(f)

	bg := ft.Theme.Background
	if selected {
		bg = ft.Theme.Selection
	}
	segment := func(fg lipgloss.Color, s string) string {
		return lipgloss.NewStyle().Foreground(fg).Background(bg).Padding(0, 1).Render(s)
	}

	segments := []string{segment(ft.Theme.TagColumn, tag.Column)}
	if tag.Condition != "" {
		segments = append(segments, segment(ft.Theme.TagCondition, tag.Condition))
	}
	if tag.Value != "" {
		segments = append(segments, segment(ft.Theme.TagValue, tag.Value))
	}

	border := ft.Theme.Border
	if selected {
		border = ft.Theme.BorderFocused
	}
	sep := lipgloss.NewStyle().Foreground(border).Background(bg).Render("│")
	return strings.Join(segments, sep)
}
