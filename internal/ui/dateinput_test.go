package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskman/internal/config"
	"taskman/internal/task"
)

func testKeys() config.Keymap {
	return config.Keymap{DueForward: "]", DueBack: "["}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestTextDateInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{"empty is no due date", "", "", nil},
		{"valid date", "2024-06-15", "2024-06-15", nil},
		{"surrounding spaces", "  2024-06-15 ", "2024-06-15", nil},
		{"impossible date", "2024-02-30", "", task.ErrBadDueDate},
		{"garbage", "tomorrow", "", task.ErrBadDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTextDateInput()
			d.SetValue(tt.value)
			got, err := d.Value()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Value() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Value() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStepperDateInputSteps(t *testing.T) {
	d := newStepperDateInput(testKeys())
	d.now = func() time.Time {
		return time.Date(2024, 6, 15, 13, 45, 0, 0, time.Local)
	}

	// First press seeds today's date.
	d.HandleKey(keyRune(']'))
	if got, _ := d.Value(); got != "2024-06-15" {
		t.Fatalf("after first forward, Value() = %q, want today", got)
	}

	d.HandleKey(keyRune(']'))
	if got, _ := d.Value(); got != "2024-06-16" {
		t.Errorf("after second forward, Value() = %q, want 2024-06-16", got)
	}

	d.HandleKey(keyRune('['))
	d.HandleKey(keyRune('['))
	if got, _ := d.Value(); got != "2024-06-14" {
		t.Errorf("after stepping back twice, Value() = %q, want 2024-06-14", got)
	}

	// Backspace clears the due date entirely.
	d.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	if got, _ := d.Value(); got != "" {
		t.Errorf("after clear, Value() = %q, want empty", got)
	}
}

func TestStepperDateInputStepsAcrossMonths(t *testing.T) {
	d := newStepperDateInput(testKeys())
	d.SetValue("2024-02-29")

	d.HandleKey(keyRune(']'))
	if got, _ := d.Value(); got != "2024-03-01" {
		t.Errorf("Value() = %q, want 2024-03-01", got)
	}
	d.HandleKey(keyRune('['))
	if got, _ := d.Value(); got != "2024-02-29" {
		t.Errorf("Value() = %q, want 2024-02-29", got)
	}
}

func TestStepperDateInputIgnoresOtherKeys(t *testing.T) {
	d := newStepperDateInput(testKeys())
	d.SetValue("2024-06-15")

	handled, _ := d.HandleKey(keyRune('z'))
	if handled {
		t.Error("stepper claimed to handle an unrelated key")
	}
	if got, _ := d.Value(); got != "2024-06-15" {
		t.Errorf("Value() = %q, want unchanged", got)
	}
}

func TestNewDateInputPicksImplementation(t *testing.T) {
	cfg := config.Config{DateInput: "stepper", Keys: testKeys()}
	if _, ok := NewDateInput(cfg).(*stepperDateInput); !ok {
		t.Error("date_input=stepper did not yield the stepper implementation")
	}

	cfg.DateInput = "text"
	if _, ok := NewDateInput(cfg).(*textDateInput); !ok {
		t.Error("date_input=text did not yield the text implementation")
	}

	cfg.DateInput = ""
	if _, ok := NewDateInput(cfg).(*textDateInput); !ok {
		t.Error("empty date_input did not default to text entry")
	}
}
