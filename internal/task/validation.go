package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyText is returned when a task description is empty or whitespace.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrBadDueDate is returned when a due date is not a valid YYYY-MM-DD date.
	ErrBadDueDate = errors.New("due date must be a valid date in YYYY-MM-DD format")

	// ErrCorruptFile is returned when the data file exists but cannot be read
	// or parsed. The caller recovers with an empty list; the file is left as-is.
	ErrCorruptFile = errors.New("task file is unreadable")

	// ErrTaskNotFound is returned when no live task has the given id.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidateText checks that a task description is non-empty.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

// ValidateDueDate checks that due is "" (no due date) or a real calendar date
// in YYYY-MM-DD form. Impossible dates such as 2024-02-30 are rejected.
func ValidateDueDate(due string) error {
	if due == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, due); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDueDate, due)
	}
	return nil
}
