package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// Search modes
const (
	SearchModeExpr = "expr"
	SearchModeText = "text"
)

// SearchInputMsg is sent when the typed query should be applied
type SearchInputMsg struct {
	Query string
	Mode  string // "expr" or "text"
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput reads a filter expression such as "status is any of todo, done",
// or plain text matched against the first text column
type SearchInput struct {
	Input   textinput.Model
	Mode    string
	Theme   theme.Theme
	Width   int
	Visible bool
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "column condition value, ..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Mode:  SearchModeExpr,
		Theme: th,
	}
}

// ToggleMode switches between expression and text search
func (s *SearchInput) ToggleMode() {
	if s.Mode == SearchModeExpr {
		s.Mode = SearchModeText
		s.Input.Placeholder = "Search text..."
	} else {
		s.Mode = SearchModeExpr
		s.Input.Placeholder = "column condition value, ..."
	}
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
	s.Mode = SearchModeText
	s.ToggleMode()
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.ToggleMode()
			return s, nil
		case "enter":
			query := s.Input.Value()
			mode := s.Mode
			if query != "" {
				return s, func() tea.Msg {
					return SearchInputMsg{Query: query, Mode: mode}
				}
			}
			return s, nil
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	modeIndicator := "[Expr]"
	modeColor := s.Theme.Success
	if s.Mode == SearchModeText {
		modeIndicator = "[Text]"
		modeColor = s.Theme.Info
	}

	modeStyle := lipgloss.NewStyle().
		Foreground(modeColor).
		Bold(true)

	inputWidth := s.Width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	content := modeStyle.Render(modeIndicator) + " " + s.Input.View()
	helpText := helpStyle.Render("Tab: toggle mode │ Enter: apply │ Esc: close")

	return boxStyle.Render(content + "\n" + helpText)
}
