// Package task owns the authoritative task list: record definition, id
// generation, validation, soft-delete bookkeeping, and the JSON file that
// persists it all.
package task

import "strconv"

// DateLayout is the format for due dates.
const DateLayout = "2006-01-02"

// CreatedLayout is the minute-precision format for creation timestamps.
const CreatedLayout = "2006-01-02 15:04"

// Priority is the task priority level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns all valid priorities in rank order.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank for a priority. Unknown values rank as Medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Next cycles to the next priority: High -> Medium -> Low -> High.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Task is one to-do item. The JSON tags are the on-disk contract and must not
// change: the data file is shared with prior versions of the app.
type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	DueDate   *string  `json:"due_date"`
	Completed bool     `json:"completed"`
	Created   string   `json:"created"`
	Deleted   bool     `json:"deleted"`
}

// Due returns the due date string, or "" if the task has none.
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// NextID returns the id for a new task: one more than the highest numeric id
// ever issued, including ids of soft-deleted records, so ids are never reused.
// Non-numeric ids count as 0. An empty list yields "1".
func NextID(tasks []Task) string {
	max := 0
	for _, t := range tasks {
		n, err := strconv.Atoi(t.ID)
		if err != nil {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
