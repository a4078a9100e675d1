package components

import (
	"strings"
	"testing"

	"github.com/wexinc/todos/internal/todo"
)

func TestFooterView(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		want      string
	}{
		{"singular", 1, "1 item left"},
		{"plural", 3, "3 items left"},
		{"none", 0, "0 items left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetState(tt.remaining, todo.FilterActive, true)

			view := f.View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("View should contain %q, got %q", tt.want, view)
			}
		})
	}
}

func TestFooterShowsFiltersAndClear(t *testing.T) {
	f := NewFooter()
	f.SetWidth(80)
	f.SetState(2, todo.FilterAll, false)

	view := f.View()
	for _, label := range []string{"All", "Active", "Completed", "Clear completed"} {
		if !strings.Contains(view, label) {
			t.Errorf("View should contain %q", label)
		}
	}
}
