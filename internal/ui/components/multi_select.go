package components

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// OptionsLoadedMsg carries the outcome of one option query
type OptionsLoadedMsg struct {
	Result options.Result
}

// optionQueryMsg fires once the debounce delay of a query has elapsed
type optionQueryMsg struct {
	ticket options.Ticket
}

// MultiSelect picks option keys from a searchable, possibly remote, list.
// Selected options stay on top while the search text changes.
type MultiSelect struct {
	Input    textinput.Model
	Theme    theme.Theme
	Height   int
	Debounce time.Duration
	Timeout  time.Duration

	loader   options.Loader
	labelKey string
	valueKey string
	search   options.Search

	results  []models.Option
	selected []models.Option
	cursor   int
	loading  bool
	err      error
}

// NewMultiSelect creates a picker reading options through loader
func NewMultiSelect(th theme.Theme, loader options.Loader, labelKey, valueKey string) *MultiSelect {
	ti := textinput.New()
	ti.Placeholder = "Search options..."
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return &MultiSelect{
		Input:    ti,
		Theme:    th,
		Height:   8,
		Timeout:  5 * time.Second,
		loader:   loader,
		labelKey: labelKey,
		valueKey: valueKey,
	}
}

// SetSelected preselects keys. Keys without a matching option record are
// kept with the key as label.
func (m *MultiSelect) SetSelected(keys []string, meta []models.Option) {
	m.selected = lo.Map(keys, func(k string, _ int) models.Option {
		if o, ok := lo.Find(meta, func(o models.Option) bool {
			v, _ := o.Field(m.valueKey)
			return v == k
		}); ok {
			return o
		}
		return models.Option{m.labelKey: k, m.valueKey: k}
	})
}

// Selected returns the selected keys and their option records
func (m *MultiSelect) Selected() ([]string, []models.Option) {
	keys := lo.Map(m.selected, func(o models.Option, _ int) string {
		return m.key(o)
	})
	return keys, append([]models.Option(nil), m.selected...)
}

// Items returns the options in display order
func (m *MultiSelect) Items() []models.Option {
	return options.MergeSelected(m.selected, m.results, m.valueKey)
}

// Loading reports whether the latest query is still outstanding
func (m *MultiSelect) Loading() bool {
	return m.loading
}

// Query starts a search for the current input text
func (m *MultiSelect) Query() tea.Cmd {
	t := m.search.Begin(m.Input.Value())
	m.loading = true
	if m.Debounce <= 0 {
		return m.load(t)
	}
	return tea.Tick(m.Debounce, func(time.Time) tea.Msg {
		return optionQueryMsg{ticket: t}
	})
}

func (m *MultiSelect) load(t options.Ticket) tea.Cmd {
	loader, timeout := m.loader, m.Timeout
	return func() tea.Msg {
		if loader == nil {
			return OptionsLoadedMsg{Result: options.Result{Ticket: t, Err: fmt.Errorf("no option loader")}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return OptionsLoadedMsg{Result: options.Run(ctx, loader, t)}
	}
}

// Toggle selects or deselects the option under the cursor
func (m *MultiSelect) Toggle() {
	items := m.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return
	}
	o := items[m.cursor]
	k := m.key(o)
	if lo.ContainsBy(m.selected, func(s models.Option) bool { return m.key(s) == k }) {
		m.selected = lo.Reject(m.selected, func(s models.Option, _ int) bool { return m.key(s) == k })
		return
	}
	m.selected = append(m.selected, o)
}

func (m *MultiSelect) key(o models.Option) string {
	k, _ := o.Field(m.valueKey)
	return k
}

func (m *MultiSelect) label(o models.Option) string {
	if l, ok := o.Field(m.labelKey); ok && l != "" {
		return l
	}
	return m.key(o)
}

func (m *MultiSelect) isSelected(o models.Option) bool {
	k := m.key(o)
	return lo.ContainsBy(m.selected, func(s models.Option) bool { return m.key(s) == k })
}

// Update handles keys and option query messages
func (m *MultiSelect) Update(msg tea.Msg) (*MultiSelect, tea.Cmd) {
	switch msg := msg.(type) {
	case optionQueryMsg:
		if !m.search.Accept(msg.ticket) {
			return m, nil
		}
		return m, m.load(msg.ticket)

	case OptionsLoadedMsg:
		if !m.search.Accept(msg.Result.Ticket) {
			log.Printf("Dropping stale options for %q", msg.Result.Ticket.Query)
			return m, nil
		}
		m.loading = false
		m.err = msg.Result.Err
		if msg.Result.Err != nil {
			log.Printf("Loading options for %q failed: %v", msg.Result.Ticket.Query, msg.Result.Err)
			m.results = nil
		} else {
			m.results = msg.Result.Options
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.Items())-1 {
				m.cursor++
			}
			return m, nil
		case " ":
			m.Toggle()
			return m, nil
		}

		before := m.Input.Value()
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		if m.Input.Value() != before {
			m.cursor = 0
			return m, tea.Batch(cmd, m.Query())
		}
		return m, cmd
	}
	return m, nil
}

func (m *MultiSelect) clampCursor() {
	n := len(m.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the search box and the visible options
func (m *MultiSelect) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted).Italic(true)
	items := m.Items()

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Error).Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading && len(items) == 0:
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(items) == 0:
		b.WriteString(mutedStyle.Render("No options"))
		b.WriteString("\n")
	}

	height := m.Height
	if height <= 0 {
		height = len(items)
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(items))

	for i := start; i < end; i++ {
		o := items[i]
		box := "[ ]"
		if m.isSelected(o) {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.cursor {
			style = style.Background(m.Theme.Selection).Foreground(m.Theme.Foreground)
		}
		b.WriteString(style.Render(box + " " + m.label(o)))
		b.WriteString("\n")
	}

	if len(m.selected) > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d selected", len(m.selected))))
	}
	return strings.TrimRight(b.String(), "\n")
}
