package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"taskman/internal/config"
	"taskman/internal/task"
)

type formField int

const (
	fieldText formField = iota
	fieldPriority
	fieldDue
	formFieldCount
)

func (f formField) label() string {
	switch f {
	case fieldPriority:
		return "Priority"
	case fieldDue:
		return "Due date"
	default:
		return "Task"
	}
}

// taskForm holds the add/edit dialog state: description, priority, and due
// date. editID is empty while adding a new task.
type taskForm struct {
	editID   string
	text     textinput.Model
	priority task.Priority
	due      DateInput
	field    formField
}

func newTaskForm(cfg config.Config) *taskForm {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 256
	ti.Width = 40

	f := &taskForm{
		text:     ti,
		priority: task.PriorityMedium,
		due:      NewDateInput(cfg),
	}
	f.setField(fieldText)
	return f
}

func editTaskForm(cfg config.Config, t task.Task) *taskForm {
	f := newTaskForm(cfg)
	f.editID = t.ID
	f.text.SetValue(t.Text)
	f.priority = t.Priority
	f.due.SetValue(t.Due())
	return f
}

func (f *taskForm) setField(field formField) {
	f.field = field
	f.text.Blur()
	f.due.Blur()
	switch field {
	case fieldText:
		f.text.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

func (f *taskForm) nextField() {
	f.setField((f.field + 1) % formFieldCount)
}

func (f *taskForm) prevField() {
	f.setField((f.field + formFieldCount - 1) % formFieldCount)
}
