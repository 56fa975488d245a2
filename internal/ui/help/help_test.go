package help

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

func TestRenderListsEverySection(t *testing.T) {
	out := Render(100, 60, theme.DefaultTheme())

	for _, s := range Sections() {
		if !strings.Contains(out, s.Title) {
			t.Errorf("help is missing section %q", s.Title)
		}
		for _, kb := range s.Keys {
			if !strings.Contains(out, kb.Description) {
				t.Errorf("help is missing %q", kb.Description)
			}
		}
	}
}
