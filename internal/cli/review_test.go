package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrale/upmeta/pkg/upstream"
)

func testData() []upstream.Datum {
	return []upstream.Datum{
		upstream.NewText(upstream.FieldName, "demo").With(upstream.CertaintyCertain, "./Cargo.toml"),
		upstream.NewText(upstream.FieldVersion, "1.0").With(upstream.CertaintyCertain, "./Cargo.toml"),
		upstream.NewText(upstream.FieldHomepage, "https://demo.example.org").With(upstream.CertaintyLikely, "./Cargo.toml"),
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{}
}

func TestFieldListToggle(t *testing.T) {
	m := NewFieldListModel(testData())

	updated, _ := m.Update(key(" "))
	m = updated.(FieldListModel)
	if !m.Dropped[0] {
		t.Error("space should drop the field under the cursor")
	}

	updated, _ = m.Update(key(" "))
	m = updated.(FieldListModel)
	if m.Dropped[0] {
		t.Error("space again should restore it")
	}
}

func TestFieldListNavigation(t *testing.T) {
	m := NewFieldListModel(testData())

	updated, _ := m.Update(key("down"))
	m = updated.(FieldListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	updated, _ = m.Update(key("up"))
	m = updated.(FieldListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Cursor clamps at the edges.
	updated, _ = m.Update(key("up"))
	m = updated.(FieldListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}
}

func TestFieldListAccept(t *testing.T) {
	m := NewFieldListModel(testData())

	updated, cmd := m.Update(key("enter"))
	m = updated.(FieldListModel)
	if !m.Accepted {
		t.Error("enter should accept")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short kept", "hello", 60, "hello"},
		{"exact kept", "abcde", 5, "abcde"},
		{"ascii cut", "abcdefgh", 7, "abcd..."},
		{"multibyte cut", strings.Repeat("ü", 10), 8, "üüüüü..."},
		{"accented summary", "Résumé généré automatiquement pour voir", 20, "Résumé généré aut..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) is not valid UTF-8", tt.in, tt.max)
			}
		})
	}
}

func TestFieldListViewRenders(t *testing.T) {
	m := NewFieldListModel(testData())
	view := m.View()
	if view == "" {
		t.Error("View should render something")
	}
}
