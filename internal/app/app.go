package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/samber/lo"

	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/export"
	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/ui/components"
	"github.com/rebeliceyang/lazyfilter/internal/ui/help"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// App is the main application model
type App struct {
	state     models.AppState
	config    *config.Config
	theme     theme.Theme
	data      *dataset.Dataset
	ctrl      *filter.Controller
	evaluator filter.Evaluator

	filters []models.ActiveFilter
	matched []models.Record

	tagsPanel  components.Panel
	tablePanel components.Panel
	tags       *components.FilterTags
	builder    *components.FilterBuilder
	tableView  *components.TableView

	// Expression / text search bar
	showSearch  bool
	searchInput *components.SearchInput

	// Error overlay
	showError    bool
	errorOverlay *components.ErrorOverlay

	statusMessage string

	// datasetPath is passed to -d in copied commands; empty for the demo
	datasetPath string

	// copy writes the filter summary to the system clipboard
	copy func(string) error
	now  func() time.Time
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// ExportedMsg is sent when an export finished
type ExportedMsg struct {
	Path  string
	Count int
	Err   error
}

// New creates a new App over data. loaders serves the option lists of
// async columns; it may be nil when the dataset has none.
func New(cfg *config.Config, data *dataset.Dataset, loaders *options.Registry) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	if loaders == nil {
		loaders = options.NewRegistry()
	}
	th := theme.ByName(cfg.UI.Theme)

	a := &App{
		state:        models.NewAppState(),
		config:       cfg,
		theme:        th,
		data:         data,
		evaluator:    filter.Evaluator{Strict: cfg.Filter.StrictConditions},
		tags:         components.NewFilterTags(th),
		tableView:    components.NewTableView(th),
		searchInput:  components.NewSearchInput(th),
		errorOverlay: components.NewErrorOverlay(th),
		tagsPanel:    components.Panel{Title: "Filters", Theme: th},
		tablePanel:   components.Panel{Title: data.Title, Theme: th},
		copy:         clipboard.WriteAll,
		now:          time.Now,
	}
	a.state.Title = data.Title
	a.state.TotalRecords = len(data.Records)

	a.ctrl = filter.NewController(data.Columns, filter.WithOnChange(a.setFilters))
	a.builder = components.NewFilterBuilder(th, a.ctrl)
	a.builder.Loaders = loaders
	a.builder.Debounce = time.Duration(cfg.Options.DebounceMS) * time.Millisecond
	a.tableView.MaxCellWidth = cfg.UI.MaxCellWidth

	a.setFilters(nil)
	a.updatePanelDimensions()
	a.updatePanelStyles()
	return a
}

// Filters returns the committed filters
func (a *App) Filters() []models.ActiveFilter {
	return a.filters
}

// Matched returns the records passing every filter
func (a *App) Matched() []models.Record {
	return a.matched
}

// SetDatasetPath records the file the dataset was loaded from
func (a *App) SetDatasetPath(path string) {
	a.datasetPath = path
}

// setFilters re-runs the evaluator whenever the committed filters change
func (a *App) setFilters(filters []models.ActiveFilter) {
	a.filters = filters
	a.matched = a.evaluator.Apply(a.data.Records, filters)
	a.state.MatchCount = len(a.matched)
	a.tags.SetFilters(filters)
	a.tableView.SetRecords(a.data.Columns, a.matched, len(a.data.Records))
	log.Printf("Filters changed: %d active, %d of %d records match", len(filters), len(a.matched), len(a.data.Records))
}

// ShowError displays an error overlay
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case ExportedMsg:
		if msg.Err != nil {
			a.ShowError("Export Failed", msg.Err.Error())
			return a, nil
		}
		a.statusMessage = fmt.Sprintf("Exported %d records to %s", msg.Count, msg.Path)
		return a, nil

	case components.AddFilterMsg:
		a.openBuilder()
		return a, nil

	case components.EditFilterMsg:
		cmd, err := a.builder.OpenEdit(msg.ID)
		if err != nil {
			a.ShowError("Edit Filter", err.Error())
			return a, nil
		}
		a.state.ViewMode = models.BuilderMode
		return a, cmd

	case components.RemoveFilterMsg:
		if err := a.ctrl.Remove(msg.ID); err != nil {
			a.ShowError("Remove Filter", err.Error())
		}
		return a, nil

	case components.ClearFiltersMsg:
		a.ctrl.ClearAll()
		a.statusMessage = "Cleared all filters"
		return a, nil

	case components.FiltersChangedMsg:
		a.statusMessage = fmt.Sprintf("%d of %d records match", len(a.matched), len(a.data.Records))
		return a, nil

	case components.CloseFilterBuilderMsg:
		a.state.ViewMode = models.NormalMode
		return a, nil

	case components.SearchInputMsg:
		a.showSearch = false
		a.searchInput.Reset()
		a.updatePanelDimensions()
		if err := a.applySearch(msg); err != nil {
			a.ShowError("Invalid Filter", err.Error())
		}
		return a, nil

	case components.CloseSearchMsg:
		a.showSearch = false
		a.searchInput.Reset()
		a.updatePanelDimensions()
		return a, nil

	case tea.MouseMsg:
		if a.config.UI.MouseEnabled && a.state.ViewMode == models.NormalMode && !a.showError {
			if handled, cmd := a.tags.HandleMouseClick(msg); handled {
				a.state.FocusedPanel = models.TagsPanel
				a.updatePanelStyles()
				return a, cmd
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
		return a, nil
	}

	// Option query results arrive while or after the builder is open
	var cmd tea.Cmd
	a.builder, cmd = a.builder.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showError {
		switch msg.String() {
		case "esc", "enter":
			a.DismissError()
			return a, nil
		case "ctrl+c":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.state.ViewMode == models.BuilderMode {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.builder, cmd = a.builder.Update(msg)
		return a, cmd
	}

	if a.showSearch {
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if a.state.ViewMode == models.HelpMode {
			a.state.ViewMode = models.NormalMode
			return a, nil
		}
		return a, tea.Quit
	case "?":
		if a.state.ViewMode == models.HelpMode {
			a.state.ViewMode = models.NormalMode
		} else {
			a.state.ViewMode = models.HelpMode
		}
		return a, nil
	case "esc":
		a.state.ViewMode = models.NormalMode
		return a, nil
	}

	if a.state.ViewMode == models.HelpMode {
		return a, nil
	}

	switch msg.String() {
	case "tab":
		if a.state.FocusedPanel == models.TagsPanel {
			a.state.FocusedPanel = models.TablePanel
		} else {
			a.state.FocusedPanel = models.TagsPanel
		}
		a.updatePanelStyles()
		return a, nil
	case "f", "+":
		a.openBuilder()
		return a, nil
	case "/":
		a.showSearch = true
		a.updatePanelDimensions()
		return a, nil
	case "y":
		a.copySummary()
		return a, nil
	case "Y":
		a.copyCommand()
		return a, nil
	case "e":
		return a, a.exportCmd()
	}

	if a.state.FocusedPanel == models.TagsPanel {
		var cmd tea.Cmd
		a.tags, cmd = a.tags.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
	case "pgup", "ctrl+u":
		a.tableView.PageUp()
	case "pgdown", "ctrl+d":
		a.tableView.PageDown()
	case "g", "home":
		a.tableView.Home()
	case "G", "end":
		a.tableView.End()
	}
	return a, nil
}

func (a *App) openBuilder() {
	if len(a.ctrl.AvailableColumns()) == 0 {
		a.statusMessage = "Every column already has a filter"
		return
	}
	a.builder.Open()
	a.statusMessage = ""
	a.state.ViewMode = models.BuilderMode
}

// applySearch commits a filter typed into the search bar. Text mode searches
// the first text column.
func (a *App) applySearch(msg components.SearchInputMsg) error {
	if msg.Mode == components.SearchModeText {
		col, ok := lo.Find(a.data.Columns, func(c models.Column) bool {
			return c.DataType() == models.DataTypeString
		})
		if !ok {
			return fmt.Errorf("%s has no text column to search", a.data.Title)
		}
		return a.ctrl.ApplyClause(filter.Clause{
			Column:    col.Key,
			Condition: models.CondContains,
			Values:    []string{msg.Query},
		})
	}

	cl, err := filter.ParseExpr(msg.Query)
	if err != nil {
		return err
	}
	return a.ctrl.ApplyClause(cl)
}

func (a *App) copySummary() {
	summary := filter.Summary(a.filters)
	if summary == "" {
		a.statusMessage = "No filters to copy"
		return
	}
	if err := a.copy(summary); err != nil {
		log.Printf("Copy to clipboard failed: %v", err)
		a.ShowError("Clipboard", fmt.Sprintf("Could not copy the filter summary:\n\n%v", err))
		return
	}
	a.statusMessage = "Copied: " + summary
}

// copyCommand copies a shell command that prints the matching records
func (a *App) copyCommand() {
	exprs := filter.FormatExprs(a.filters)
	if len(exprs) == 0 {
		a.statusMessage = "No filters to copy"
		return
	}

	args := []string{"lazyfilter", "list"}
	if a.datasetPath != "" {
		args = append(args, "-d", a.datasetPath)
	}
	for _, expr := range exprs {
		args = append(args, "-w", expr)
	}
	command := shellescape.QuoteCommand(args)

	if err := a.copy(command); err != nil {
		log.Printf("Copy to clipboard failed: %v", err)
		a.ShowError("Clipboard", fmt.Sprintf("Could not copy the command:\n\n%v", err))
		return
	}
	a.statusMessage = "Copied: " + command
}

// exportCmd writes the matching records to a CSV file named after the dataset
func (a *App) exportCmd() tea.Cmd {
	name := strings.ToLower(strings.Join(strings.Fields(a.data.Title), "-"))
	if name == "" {
		name = "records"
	}
	path := fmt.Sprintf("%s-%s.csv", name, a.now().Format("20060102-150405"))
	columns, records := a.data.Columns, a.matched

	return func() tea.Msg {
		err := export.ToFile(path, export.FormatCSV, columns, records)
		return ExportedMsg{Path: path, Count: len(records), Err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	return zone.Scan(a.render())
}

func (a *App) render() string {
	if a.showError {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	}

	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.theme)
	}

	if a.state.ViewMode == models.BuilderMode {
		a.builder.Width = min(70, max(a.state.Width-4, 20))
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.builder.View(),
		)
	}

	return a.renderNormalView()
}

func (a *App) renderNormalView() string {
	topBarContent := a.formatStatusBar(
		"lazyfilter · "+a.data.Title,
		fmt.Sprintf("%d of %d records", a.state.MatchCount, a.state.TotalRecords),
	)
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(topBarContent)

	bottomLeft := "[f] Filter | [/] Expression | [tab] Switch panel | [?] Help | [q] Quit"
	if a.statusMessage != "" {
		bottomLeft = a.statusMessage
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomLeft, "[y] Copy [Y] Command [e] Export"))

	a.tags.Width = a.tagsPanel.Width - 2
	a.tagsPanel.Content = a.tags.View()

	a.tableView.Width = a.tablePanel.Width - 2
	a.tableView.Height = a.tablePanel.Height - 3
	a.tablePanel.Content = a.tableView.View()

	sections := []string{topBar, a.tagsPanel.View()}
	if a.showSearch {
		a.searchInput.Width = a.state.Width - 4
		sections = append(sections, a.searchInput.View())
	}
	sections = append(sections, a.tablePanel.View(), bottomBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Top bar, bottom bar and the tags panel (border + title + tags)
	tagsHeight := 4
	tableHeight := a.state.Height - 2 - tagsHeight
	if a.showSearch {
		tableHeight -= 4
	}
	if tableHeight < 5 {
		tableHeight = 5
	}

	a.tagsPanel.Width = a.state.Width
	a.tagsPanel.Height = tagsHeight
	a.tablePanel.Width = a.state.Width
	a.tablePanel.Height = tableHeight
}

// updatePanelStyles updates panel styling based on focus
func (a *App) updatePanelStyles() {
	a.tags.Focused = a.state.FocusedPanel == models.TagsPanel
	a.tagsPanel.Focused = a.tags.Focused
	a.tablePanel.Focused = !a.tags.Focused
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	availableWidth := max(a.state.Width-4, 0)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return truncate(left, availableWidth-rightLen) + right
		}
		return truncate(left, availableWidth)
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
