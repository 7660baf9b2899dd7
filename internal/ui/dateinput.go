package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/config"
	"taskman/internal/task"
)

// DateInput is the due-date entry capability used by the add/edit form. Both
// implementations yield a validated ISO date string (or an error); the store
// never sees the difference.
type DateInput interface {
	// SetValue loads an existing due date ("" for none).
	SetValue(iso string)
	// Value returns the entered date as "YYYY-MM-DD", "" for no due date,
	// or a validation error.
	Value() (string, error)
	Focus()
	Blur()
	// HandleKey consumes a key press while the field is focused and reports
	// whether it was handled.
	HandleKey(msg tea.KeyMsg) (bool, tea.Cmd)
	View() string
	// Hint describes how to operate the field, shown next to it.
	Hint() string
}

// NewDateInput picks the implementation named in the config. Free-text entry
// is the default; "stepper" gives a key-driven date field that is always valid.
func NewDateInput(cfg config.Config) DateInput {
	if strings.EqualFold(cfg.DateInput, "stepper") {
		return newStepperDateInput(cfg.Keys)
	}
	return newTextDateInput()
}

// textDateInput is a free-text field validated on read.
type textDateInput struct {
	in textinput.Model
}

func newTextDateInput() *textDateInput {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (optional)"
	ti.CharLimit = 10
	ti.Width = 16
	return &textDateInput{in: ti}
}

func (d *textDateInput) SetValue(iso string) { d.in.SetValue(iso) }

func (d *textDateInput) Value() (string, error) {
	v := strings.TrimSpace(d.in.Value())
	if err := task.ValidateDueDate(v); err != nil {
		return "", err
	}
	return v, nil
}

func (d *textDateInput) Focus() { d.in.Focus() }
func (d *textDateInput) Blur()  { d.in.Blur() }

func (d *textDateInput) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	var cmd tea.Cmd
	d.in, cmd = d.in.Update(msg)
	return true, cmd
}

func (d *textDateInput) View() string { return d.in.View() }
func (d *textDateInput) Hint() string { return "type a date or leave empty" }

// stepperDateInput edits the date with the due_forward/due_back keys, one day
// per press, so it can only ever hold a valid date.
type stepperDateInput struct {
	date    *time.Time
	forward string
	back    string
	focused bool
	now     func() time.Time
}

func newStepperDateInput(keys config.Keymap) *stepperDateInput {
	return &stepperDateInput{
		forward: keys.DueForward,
		back:    keys.DueBack,
		now:     time.Now,
	}
}

func (d *stepperDateInput) SetValue(iso string) {
	if iso == "" {
		d.date = nil
		return
	}
	t, err := time.Parse(task.DateLayout, iso)
	if err != nil {
		d.date = nil
		return
	}
	d.date = &t
}

func (d *stepperDateInput) Value() (string, error) {
	if d.date == nil {
		return "", nil
	}
	return d.date.Format(task.DateLayout), nil
}

func (d *stepperDateInput) Focus() { d.focused = true }
func (d *stepperDateInput) Blur()  { d.focused = false }

func (d *stepperDateInput) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case d.forward:
		d.step(1)
		return true, nil
	case d.back:
		d.step(-1)
		return true, nil
	case "backspace", "delete":
		d.date = nil
		return true, nil
	default:
		return false, nil
	}
}

func (d *stepperDateInput) step(days int) {
	if d.date == nil {
		today := d.now()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		d.date = &t
		return
	}
	t := d.date.AddDate(0, 0, days)
	d.date = &t
}

func (d *stepperDateInput) View() string {
	if d.date == nil {
		return "(no due date)"
	}
	return d.date.Format(task.DateLayout)
}

func (d *stepperDateInput) Hint() string {
	return d.forward + "/" + d.back + " adjust, backspace clears"
}
