// Package view derives the presentation list from the task store: filtering,
// search, sorting, and per-row annotations. It is a pure projection and never
// mutates the store; every refresh recomputes from scratch, which is fine at
// the tens-to-hundreds of tasks this app manages.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taskman/internal/task"
)

// Tasks without a due date sort after every dated task.
const noDueSortKey = "9999-12-31"

// Tag classifies a row for display styling.
type Tag string

const (
	TagCompleted      Tag = "completed"
	TagHighPriority   Tag = "high_priority"
	TagMediumPriority Tag = "medium_priority"
	TagLowPriority    Tag = "low_priority"
	TagOverdue        Tag = "overdue"
)

// Query is the immutable view state a projection is computed from.
type Query struct {
	Filter Filter
	Search string
	// Today is the reference date for overdue and days-left computation,
	// at midnight UTC. See Date.
	Today time.Time
}

// Date truncates t to its calendar day, midnight UTC, matching the zone of
// due dates parsed from the store.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Row is one visible task plus its derived display fields.
type Row struct {
	Task       task.Task
	DueLabel   string // due date, or "No due date"
	DaysLeft   string
	Status     string // "Done" or "Pending"
	CreatedDay string // date part of the creation timestamp
	Overdue    bool
	Tags       []Tag
}

// HasTag reports whether the row carries the given display tag.
func (r Row) HasTag(tag Tag) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Projection is the derived list plus aggregate counts over all live tasks
// (the aggregates ignore filter and search).
type Projection struct {
	Rows      []Row
	Total     int
	Completed int
	Pending   int
}

// Project computes the visible, ordered, annotated rows for the given query.
func Project(tasks []task.Task, q Query) Projection {
	var p Projection

	search := strings.ToLower(strings.TrimSpace(q.Search))
	visible := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		p.Total++
		if t.Completed {
			p.Completed++
		}
		if !q.Filter.Matches(t) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		visible = append(visible, t)
	}
	p.Pending = p.Total - p.Completed

	// Incomplete before completed, then priority rank, then due date with
	// undated tasks last, then creation time as the tie-break.
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
			return ar < br
		}
		if ad, bd := dueSortKey(a), dueSortKey(b); ad != bd {
			return ad < bd
		}
		return a.Created < b.Created
	})

	p.Rows = make([]Row, 0, len(visible))
	for _, t := range visible {
		p.Rows = append(p.Rows, annotate(t, q.Today))
	}
	return p
}

func dueSortKey(t task.Task) string {
	if due := t.Due(); due != "" {
		return due
	}
	return noDueSortKey
}

func annotate(t task.Task, today time.Time) Row {
	r := Row{
		Task:     t,
		DueLabel: "No due date",
		DaysLeft: "N/A",
		Status:   "Pending",
	}
	if t.Completed {
		r.Status = "Done"
	}
	if i := strings.IndexByte(t.Created, ' '); i >= 0 {
		r.CreatedDay = t.Created[:i]
	} else {
		r.CreatedDay = t.Created
	}

	if due := t.Due(); due != "" {
		r.DueLabel = due
		dueDate, err := time.Parse(task.DateLayout, due)
		if err != nil {
			// Should not happen: dates are validated on write. Guard anyway
			// since the file can be edited by hand.
			r.DaysLeft = "Invalid date"
		} else {
			days := int(dueDate.Sub(today).Hours() / 24)
			if days >= 0 {
				r.DaysLeft = fmt.Sprintf("%d day(s)", days)
			} else {
				r.DaysLeft = fmt.Sprintf("%d day(s) overdue", -days)
			}
			r.Overdue = days < 0 && !t.Completed
		}
	}

	// Completed tasks get only the completed tag, never priority or overdue.
	if t.Completed {
		r.Tags = []Tag{TagCompleted}
		return r
	}
	switch t.Priority {
	case task.PriorityHigh:
		r.Tags = []Tag{TagHighPriority}
	case task.PriorityMedium:
		r.Tags = []Tag{TagMediumPriority}
	default:
		r.Tags = []Tag{TagLowPriority}
	}
	if r.Overdue {
		r.Tags = append(r.Tags, TagOverdue)
	}
	return r
}
