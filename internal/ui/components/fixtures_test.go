package components

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func init() {
	// Initialize bubblezone for tests that call View() methods
	zone.NewGlobal()
}

var testColumns = []models.Column{
	{Key: "title", Label: "Title", Props: models.StringProps{}},
	{Key: "closed", Label: "State", Props: models.BooleanProps{DisplayLabels: models.BooleanLabels{True: "Closed", False: "Open"}}},
	{Key: "status", Label: "Status", Props: models.EnumProps{Options: []string{"todo", "in_progress", "done"}}},
	{Key: "assignee", Label: "Assignee", Props: models.ObjectProps{
		LabelKey: "name",
		ValueKey: "id",
		Options: []models.Option{
			{"id": "u1", "name": "Ada Lovelace"},
			{"id": "u2", "name": "Alan Turing"},
		},
	}},
	{Key: "created", Label: "Created", Props: models.DateProps{}},
	{Key: "rate", Label: "Rate", Props: models.NumberProps{
		Transform:        func(v float64) float64 { return v / 100 },
		ReverseTransform: func(v float64) float64 { return v * 100 },
	}},
	{Key: "estimate", Label: "Estimate", Props: models.CustomProps{Conditions: []models.CustomCondition{
		{Label: "Is Exactly", Value: "=", Props: models.NumberProps{}},
		{Label: "Is At Least", Value: "at least", Condition: models.CondGreaterOrEqual, Props: models.NumberProps{}},
	}}},
}

func newTestController() *filter.Controller {
	n := 0
	return filter.NewController(testColumns, filter.WithIDGenerator(func() string {
		n++
		return "f" + strconv.Itoa(n)
	}))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func mustClause(t *testing.T, expr string) filter.Clause {
	t.Helper()
	cl, err := filter.ParseExpr(expr)
	if err != nil {
		t.Fatalf("ParseExpr(%q) failed: %v", expr, err)
	}
	return cl
}
