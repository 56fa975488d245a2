package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

func committedFilters(t *testing.T) []models.ActiveFilter {
	t.Helper()
	ctrl := newTestController()
	if err := ctrl.ApplyClause(mustClause(t, "status is todo")); err != nil {
		t.Fatalf("ApplyClause failed: %v", err)
	}
	if err := ctrl.ApplyClause(mustClause(t, "title contains login")); err != nil {
		t.Fatalf("ApplyClause failed: %v", err)
	}
	return ctrl.Filters()
}

func TestFilterTags_SkipsIncompleteFilters(t *testing.T) {
	ft := NewFilterTags(theme.DefaultTheme())
	filters := append(committedFilters(t), models.ActiveFilter{ID: "draft", Column: testColumns[0]})

	ft.SetFilters(filters)
	if ft.Len() != 2 {
		t.Errorf("Expected 2 tags, got %d", ft.Len())
	}
}

func TestFilterTags_View(t *testing.T) {
	ft := NewFilterTags(theme.DefaultTheme())
	ft.Width = 200

	if !strings.Contains(ft.View(), "+ Filter") {
		t.Error("Expected add button when empty")
	}

	ft.SetFilters(committedFilters(t))
	view := ft.View()
	for _, want := range []string{"Status", "is", "Todo", "Title", "contains", "login"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in tag bar", want)
		}
	}
}

func TestFilterTags_Keys(t *testing.T) {
	ft := NewFilterTags(theme.DefaultTheme())
	filters := committedFilters(t)
	ft.SetFilters(filters)

	ft.Update(key(tea.KeyRight))
	selected, ok := ft.Selected()
	if !ok || selected.ID != filters[1].ID {
		t.Fatalf("Expected second tag selected, got %v", selected.ID)
	}
	ft.Update(key(tea.KeyRight))
	if selected, _ := ft.Selected(); selected.ID != filters[1].ID {
		t.Error("Expected cursor to stop at the last tag")
	}

	_, cmd := ft.Update(key(tea.KeyEnter))
	if msg, ok := cmd().(EditFilterMsg); !ok || msg.ID != filters[1].ID {
		t.Errorf("Expected EditFilterMsg for %s", filters[1].ID)
	}

	_, cmd = ft.Update(keyRunes("d"))
	if msg, ok := cmd().(RemoveFilterMsg); !ok || msg.ID != filters[1].ID {
		t.Errorf("Expected RemoveFilterMsg for %s", filters[1].ID)
	}

	_, cmd = ft.Update(keyRunes("X"))
	if _, ok := cmd().(ClearFiltersMsg); !ok {
		t.Error("Expected ClearFiltersMsg")
	}

	_, cmd = ft.Update(keyRunes("f"))
	if _, ok := cmd().(AddFilterMsg); !ok {
		t.Error("Expected AddFilterMsg")
	}
}

func TestFilterTags_CursorClampedOnRemoval(t *testing.T) {
	ft := NewFilterTags(theme.DefaultTheme())
	filters := committedFilters(t)
	ft.SetFilters(filters)
	ft.Move(1)

	ft.SetFilters(filters[:1])
	if selected, ok := ft.Selected(); !ok || selected.ID != filters[0].ID {
		t.Error("Expected cursor to move back to the remaining tag")
	}

	ft.SetFilters(nil)
	if _, ok := ft.Selected(); ok {
		t.Error("Expected no selection without tags")
	}
	if _, cmd := ft.Update(keyRunes("X")); cmd != nil {
		t.Error("Expected clear to do nothing without tags")
	}
}
