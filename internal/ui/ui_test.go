package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/config"
	"taskman/internal/task"
	"taskman/internal/view"
)

func testConfig() config.Config {
	return config.Config{
		DataPath:      "unused",
		DefaultFilter: "all",
		DateInput:     "text",
		Keys: config.Keymap{
			Quit: "q", Add: "a", Edit: "e", Up: "k", Down: "j",
			Toggle: " ", Delete: "d", ClearCompleted: "c",
			Search: "/", Filter: "f", Export: "x",
			Confirm: "enter", Cancel: "esc",
			DueForward: "]", DueBack: "[",
		},
	}
}

func newTestModel(t *testing.T, seed []task.Task) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo_data.json")
	if seed != nil {
		if err := task.Save(path, seed); err != nil {
			t.Fatalf("seed save: %v", err)
		}
	}
	store, err := task.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    testConfig(),
		filter: view.FilterAll,
		input:  ti,
	}
	m.refresh()
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	switch key {
	case "enter":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	case "tab":
		return press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	default:
		return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFilterKeyCycles(t *testing.T) {
	m := newTestModel(t, []task.Task{
		{ID: "1", Text: "pending", Priority: task.PriorityMedium, Created: "2024-01-01 08:00"},
		{ID: "2", Text: "done", Priority: task.PriorityMedium, Completed: true, Created: "2024-01-02 08:00"},
	})

	m = pressKey(t, m, "f")
	if m.filter != view.FilterPending {
		t.Fatalf("filter = %s, want Pending", m.filter)
	}
	if len(m.proj.Rows) != 1 || m.proj.Rows[0].Task.Text != "pending" {
		t.Errorf("pending filter shows %d rows", len(m.proj.Rows))
	}

	m = pressKey(t, m, "f")
	if m.filter != view.FilterCompleted {
		t.Fatalf("filter = %s, want Completed", m.filter)
	}
}

func TestToggleCompletesAndPersists(t *testing.T) {
	m := newTestModel(t, []task.Task{
		{ID: "1", Text: "toggle me", Priority: task.PriorityMedium, Created: "2024-01-01 08:00"},
	})

	m = pressKey(t, m, " ")
	got, ok := m.store.Find("1")
	if !ok || !got.Completed {
		t.Fatal("toggle did not complete the task")
	}

	reloaded, err := task.Load(m.store.Path())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reloaded[0].Completed {
		t.Error("toggle was not persisted")
	}
}

func TestAddFlow(t *testing.T) {
	m := newTestModel(t, nil)

	m = pressKey(t, m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %d, want modeAdd", m.mode)
	}

	m = typeText(t, m, "new task")
	m = pressKey(t, m, "enter") // to priority
	m = pressKey(t, m, " ")     // Medium -> Low
	m = pressKey(t, m, "enter") // to due date
	m = pressKey(t, m, "enter") // submit

	if m.mode != modeList {
		t.Fatalf("mode = %d, want modeList after submit", m.mode)
	}
	got, ok := m.store.Find("1")
	if !ok {
		t.Fatal("task was not added")
	}
	if got.Text != "new task" || got.Priority != task.PriorityLow {
		t.Errorf("added task = %+v", got)
	}
}

func TestAddEmptyTextStaysInForm(t *testing.T) {
	m := newTestModel(t, nil)

	m = pressKey(t, m, "a")
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "enter") // submit with empty text

	if m.mode != modeAdd {
		t.Fatalf("mode = %d, want modeAdd (validation failed)", m.mode)
	}
	if len(m.store.Tasks()) != 0 {
		t.Error("empty task was added")
	}
	if !strings.Contains(m.status, "empty") {
		t.Errorf("status = %q, want a validation message", m.status)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, []task.Task{
		{ID: "1", Text: "goner", Priority: task.PriorityMedium, Created: "2024-01-01 08:00"},
	})

	m = pressKey(t, m, "d")
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode = %d, want modeConfirmDelete", m.mode)
	}

	// Declining leaves the task alone.
	m = pressKey(t, m, "n")
	if _, ok := m.store.Find("1"); !ok {
		t.Fatal("declined delete removed the task")
	}

	m = pressKey(t, m, "d")
	m = pressKey(t, m, "y")
	if _, ok := m.store.Find("1"); ok {
		t.Error("confirmed delete did not remove the task")
	}
	if len(m.store.Tasks()) != 1 {
		t.Error("delete removed the record instead of soft-deleting")
	}
}

func TestClearCompletedWithNothingToDo(t *testing.T) {
	m := newTestModel(t, []task.Task{
		{ID: "1", Text: "pending", Priority: task.PriorityMedium, Created: "2024-01-01 08:00"},
	})

	m = pressKey(t, m, "c")
	if m.mode != modeList {
		t.Errorf("mode = %d, want modeList (no confirmation when nothing to clear)", m.mode)
	}
	if !strings.Contains(m.status, "No completed tasks") {
		t.Errorf("status = %q, want nothing-to-do message", m.status)
	}
}

func TestSearchFiltersLive(t *testing.T) {
	m := newTestModel(t, []task.Task{
		{ID: "1", Text: "Write report", Priority: task.PriorityMedium, Created: "2024-01-01 08:00"},
		{ID: "2", Text: "buy milk", Priority: task.PriorityMedium, Created: "2024-01-02 08:00"},
	})

	m = pressKey(t, m, "/")
	if m.mode != modeSearch {
		t.Fatalf("mode = %d, want modeSearch", m.mode)
	}

	m = typeText(t, m, "report")
	if len(m.proj.Rows) != 1 || m.proj.Rows[0].Task.Text != "Write report" {
		t.Errorf("live search shows %d rows", len(m.proj.Rows))
	}

	// Esc clears the search entirely.
	m = pressKey(t, m, "esc")
	if m.search != "" || len(m.proj.Rows) != 2 {
		t.Errorf("search = %q, rows = %d; want cleared", m.search, len(m.proj.Rows))
	}
}

func TestQuitWithoutUnsavedChanges(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit with a clean store should quit immediately")
	}
	if _, ok := next.(Model); !ok {
		t.Fatalf("Update returned %T", next)
	}
}
