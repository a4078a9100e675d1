package todo

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name      string
		owner     int
		title     string
		wantTitle string
		wantErr   bool
	}{
		{"trims title", 7, "  buy milk  ", "buy milk", false},
		{"empty title", 7, "", "", true},
		{"blank title", 7, " \t ", "", true},
		{"zero owner", 0, "buy milk", "", true},
		{"negative owner", -1, "buy milk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTask(tt.owner, tt.title)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if !got.IsPlaceholder() {
				t.Error("new task should be a placeholder until the server assigns an id")
			}
			if got.Completed {
				t.Error("new task should not be completed")
			}
		})
	}
}

func TestTask_ValidateMessage(t *testing.T) {
	err := Task{ID: 1, UserID: 1}.Validate()
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if !strings.Contains(err.Error(), "Title") {
		t.Errorf("error = %q, should name the failing field", err)
	}
}

func TestTask_JSON(t *testing.T) {
	data, err := json.Marshal(Task{ID: 3, UserID: 9, Title: "x", Completed: true})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":3,"userId":9,"title":"x","completed":true}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestPatch(t *testing.T) {
	base := Task{ID: 1, UserID: 1, Title: "old", Completed: false}

	t.Run("title only", func(t *testing.T) {
		p := TitlePatch("new")
		got := p.Apply(base)
		if got.Title != "new" || got.Completed {
			t.Errorf("Apply() = %+v", got)
		}
		data, _ := json.Marshal(p)
		if string(data) != `{"title":"new"}` {
			t.Errorf("Marshal() = %s, want only the title", data)
		}
	})

	t.Run("completed only", func(t *testing.T) {
		p := CompletedPatch(true)
		got := p.Apply(base)
		if got.Title != "old" || !got.Completed {
			t.Errorf("Apply() = %+v", got)
		}
		data, _ := json.Marshal(p)
		if string(data) != `{"completed":true}` {
			t.Errorf("Marshal() = %s, want only completed", data)
		}
	})

	t.Run("completed false is still sent", func(t *testing.T) {
		data, _ := json.Marshal(CompletedPatch(false))
		if string(data) != `{"completed":false}` {
			t.Errorf("Marshal() = %s", data)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if !(Patch{}).IsEmpty() {
			t.Error("zero Patch should be empty")
		}
		if TitlePatch("").IsEmpty() {
			t.Error("title patch should not be empty")
		}
	})
}
