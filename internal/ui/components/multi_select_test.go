package components

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

func echoLoader() options.Loader {
	return options.LoaderFunc(func(_ context.Context, query string) ([]models.Option, error) {
		return []models.Option{
			{"label": "result for " + query, "value": query},
		}, nil
	})
}

func TestMultiSelect_LatestQueryWins(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), echoLoader(), "label", "value")

	m.Input.SetValue("a")
	first := m.Query()
	m.Input.SetValue("ab")
	second := m.Query()

	m.Update(second())
	m.Update(first())

	items := m.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if v, _ := items[0].Field("value"); v != "ab" {
		t.Errorf("Expected results of the latest query, got %q", v)
	}
	if m.Loading() {
		t.Error("Expected loading to end with the latest response")
	}
}

func TestMultiSelect_DebouncedQuerySkipsSuperseded(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), echoLoader(), "label", "value")
	m.Debounce = 1

	m.Input.SetValue("a")
	m.Query()
	stale := optionQueryMsg{ticket: options.Ticket{Seq: 1, Query: "a"}}
	m.Input.SetValue("ab")
	m.Query()

	if _, cmd := m.Update(stale); cmd != nil {
		t.Error("Expected a superseded query not to load")
	}
	fresh := optionQueryMsg{ticket: options.Ticket{Seq: 2, Query: "ab"}}
	if _, cmd := m.Update(fresh); cmd == nil {
		t.Error("Expected the latest query to load")
	}
}

func TestMultiSelect_SelectedStayOnTop(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), echoLoader(), "label", "value")
	m.SetSelected([]string{"kept"}, nil)

	m.Input.SetValue("other")
	m.Update(m.Query()())

	items := m.Items()
	if len(items) != 2 {
		t.Fatalf("Expected selected plus result, got %d", len(items))
	}
	if v, _ := items[0].Field("value"); v != "kept" {
		t.Errorf("Expected selected option first, got %q", v)
	}

	keys, meta := m.Selected()
	if len(keys) != 1 || keys[0] != "kept" || len(meta) != 1 {
		t.Errorf("Unexpected selection %v %v", keys, meta)
	}
}

func TestMultiSelect_Toggle(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), echoLoader(), "label", "value")
	m.Input.SetValue("x")
	m.Update(m.Query()())

	m.Toggle()
	if keys, _ := m.Selected(); len(keys) != 1 {
		t.Fatalf("Expected 1 selected, got %v", keys)
	}
	m.Toggle()
	if keys, _ := m.Selected(); len(keys) != 0 {
		t.Errorf("Expected toggle to deselect, got %v", keys)
	}
}

func TestMultiSelect_TypingStartsQuery(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), echoLoader(), "label", "value")

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("Expected typing to start a query")
	}
	if !m.Loading() {
		t.Error("Expected loading while the query is outstanding")
	}
}

func TestMultiSelect_LoaderError(t *testing.T) {
	failing := options.LoaderFunc(func(context.Context, string) ([]models.Option, error) {
		return nil, errors.New("connection refused")
	})
	m := NewMultiSelect(theme.DefaultTheme(), failing, "label", "value")
	m.Update(m.Query()())

	if !strings.Contains(m.View(), "connection refused") {
		t.Error("Expected the loader error in the view")
	}
}

func TestMultiSelect_NilLoader(t *testing.T) {
	m := NewMultiSelect(theme.DefaultTheme(), nil, "label", "value")
	msg := m.Query()()

	loaded, ok := msg.(OptionsLoadedMsg)
	if !ok {
		t.Fatalf("Expected OptionsLoadedMsg, got %T", msg)
	}
	if loaded.Result.Err == nil {
		t.Error("Expected an error without a loader")
	}
}
