package view

import (
	"strings"

	"taskman/internal/task"
)

// Filter selects which live tasks are visible.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterCompleted
	FilterHigh
	FilterMedium
	FilterLow
	filterCount
)

// String returns the display name of the filter.
func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	case FilterHigh:
		return "High Priority"
	case FilterMedium:
		return "Medium Priority"
	case FilterLow:
		return "Low Priority"
	default:
		return "All"
	}
}

// Next cycles through the filters in display order.
func (f Filter) Next() Filter {
	return (f + 1) % filterCount
}

// Matches reports whether a live task passes the filter.
func (f Filter) Matches(t task.Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterHigh:
		return t.Priority == task.PriorityHigh
	case FilterMedium:
		return t.Priority == task.PriorityMedium
	case FilterLow:
		return t.Priority == task.PriorityLow
	default:
		return true
	}
}

// ParseFilter maps a config value like "all" or "high priority" to a Filter.
// Unknown values fall back to FilterAll.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return FilterPending
	case "completed":
		return FilterCompleted
	case "high", "high priority":
		return FilterHigh
	case "medium", "medium priority":
		return FilterMedium
	case "low", "low priority":
		return FilterLow
	default:
		return FilterAll
	}
}
