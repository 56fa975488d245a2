package app

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func init() {
	zone.NewGlobal()
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	data, err := dataset.Demo()
	if err != nil {
		t.Fatalf("Demo dataset failed: %v", err)
	}
	a := New(config.GetDefaults(), data, nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

// send feeds msg to the app and keeps feeding the messages its commands produce
func send(a *App, msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if batch, ok := next.(tea.BatchMsg); ok {
			for _, cmd := range batch {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		}
		_, cmd := a.Update(next)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
}

func typeText(a *App, s string) {
	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestApp_StartsUnfiltered(t *testing.T) {
	a := newTestApp(t)

	if len(a.Matched()) != 12 {
		t.Errorf("Expected all 12 demo records, got %d", len(a.Matched()))
	}
	if !strings.Contains(a.View(), "12 of 12 records") {
		t.Error("Expected record count in the top bar")
	}
}

func TestApp_ExpressionSearch(t *testing.T) {
	a := newTestApp(t)

	typeText(a, "/")
	if !a.showSearch {
		t.Fatal("Expected search bar to open")
	}
	typeText(a, "priority is any of high, urgent")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.showSearch {
		t.Error("Expected search bar to close")
	}
	if len(a.Filters()) != 1 {
		t.Fatalf("Expected 1 filter, got %d", len(a.Filters()))
	}
	if len(a.Matched()) != 4 {
		t.Errorf("Expected 4 high or urgent issues, got %d", len(a.Matched()))
	}
}

func TestApp_InvalidExpressionShowsError(t *testing.T) {
	a := newTestApp(t)

	typeText(a, "/")
	typeText(a, "nosuchcolumn contains x")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	if !a.showError {
		t.Fatal("Expected an error overlay")
	}
	if len(a.Filters()) != 0 {
		t.Error("Expected no filter committed")
	}

	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.showError {
		t.Error("Expected Esc to dismiss the error")
	}
}

func TestApp_BuilderFlow(t *testing.T) {
	a := newTestApp(t)

	typeText(a, "f")
	if a.state.ViewMode != models.BuilderMode {
		t.Fatal("Expected builder to open")
	}
	typeText(a, "State")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	send(a, tea.KeyMsg{Type: tea.KeyDown})
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.state.ViewMode != models.NormalMode {
		t.Errorf("Expected builder to close after applying, got mode %v", a.state.ViewMode)
	}
	if len(a.Matched()) != 9 {
		t.Errorf("Expected 9 open issues, got %d", len(a.Matched()))
	}
}

func TestApp_RemoveAndClear(t *testing.T) {
	a := newTestApp(t)
	for _, expr := range []string{"closed is open", "title contains login"} {
		typeText(a, "/")
		typeText(a, expr)
		send(a, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if len(a.Filters()) != 2 {
		t.Fatalf("Expected 2 filters, got %d", len(a.Filters()))
	}

	send(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.state.FocusedPanel != models.TagsPanel {
		t.Fatal("Expected tags panel focus")
	}
	typeText(a, "d")
	if len(a.Filters()) != 1 {
		t.Fatalf("Expected 1 filter after removal, got %d", len(a.Filters()))
	}

	typeText(a, "X")
	if len(a.Filters()) != 0 || len(a.Matched()) != 12 {
		t.Error("Expected clear to restore every record")
	}
}

func TestApp_CopySummary(t *testing.T) {
	a := newTestApp(t)
	var copied string
	a.copy = func(s string) error {
		copied = s
		return nil
	}

	typeText(a, "/")
	typeText(a, "closed is open")
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(a, "y")

	if copied != "State | is | Open" {
		t.Errorf("Unexpected summary %q", copied)
	}

	a.copy = func(string) error { return errors.New("no clipboard") }
	typeText(a, "y")
	if !a.showError {
		t.Error("Expected clipboard failure to show an error")
	}
}

func TestApp_Export(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	a := newTestApp(t)
	a.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	typeText(a, "e")

	data, err := os.ReadFile("issues-20240315-100000.csv")
	if err != nil {
		t.Fatalf("Expected export file: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 13 {
		t.Errorf("Expected header plus 12 rows, got %d lines", lines)
	}
	if !strings.Contains(a.statusMessage, "Exported 12 records") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}

func TestApp_CopyCommand(t *testing.T) {
	a := newTestApp(t)
	a.SetDatasetPath("my issues.yaml")
	var copied string
	a.copy = func(s string) error {
		copied = s
		return nil
	}

	typeText(a, "Y")
	if a.statusMessage != "No filters to copy" {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}

	for _, expr := range []string{"priority is any of high, urgent", "title contains login"} {
		typeText(a, "/")
		typeText(a, expr)
		send(a, tea.KeyMsg{Type: tea.KeyEnter})
	}
	typeText(a, "Y")

	want := `lazyfilter list -d 'my issues.yaml' -w 'priority is any of high, urgent' -w 'title contains "login"'`
	if copied != want {
		t.Errorf("Copied %q, want %q", copied, want)
	}
}
