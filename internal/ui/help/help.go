package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of key bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Tab", "Switch between filters and records"},
		{"y", "Copy filter summary"},
		{"Y", "Copy filters as a list command"},
		{"e", "Export records to file"},
	}
}

// GetFilterKeys returns key bindings of the filter bar
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"f, +", "Add filter"},
		{"/", "Type a filter expression (Tab: text search)"},
		{"←/h, →/l", "Select filter"},
		{"Enter", "Edit selected filter"},
		{"d, Backspace", "Remove selected filter"},
		{"Shift+X", "Clear all filters"},
	}
}

// GetBuilderKeys returns key bindings of the filter builder
func GetBuilderKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/↓", "Move selection"},
		{"Type", "Search columns and options"},
		{"Enter", "Choose or apply"},
		{"Space", "Toggle option"},
		{"Tab", "Next preset (dates)"},
		{"Esc", "Cancel"},
	}
}

// GetTableKeys returns key bindings of the record table
func GetTableKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "First/last record"},
	}
}

// Sections returns every help section in display order
func Sections() []Section {
	return []Section{
		{"Global", GetGlobalKeys()},
		{"Filters", GetFilterKeys()},
		{"Filter Builder", GetBuilderKeys()},
		{"Records", GetTableKeys()},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyfilter - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, s := range Sections() {
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, kb := range s.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 20)).
		Height(max(height-4, 10))

	return boxStyle.Render(b.String())
}
