package task

import (
	"fmt"
	"time"
)

// Store owns the in-memory task list and keeps it in sync with the data file.
// Every mutation is persisted immediately; there is no write batching. When a
// save fails the in-memory change is kept rather than rolled back, so the
// user's input is not lost, and the next successful save reconverges disk.
type Store struct {
	path  string
	tasks []Task
	dirty bool
	now   func() time.Time
}

// Open loads the task file at path. If the file is corrupt the returned error
// wraps ErrCorruptFile and the store starts empty but remains usable; the file
// on disk is not overwritten until the next mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	tasks, err := Load(path)
	s.tasks = tasks
	return s, err
}

// Tasks returns the full list, soft-deleted records included.
func (s *Store) Tasks() []Task {
	return s.tasks
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether the in-memory list has changes the last save failed
// to persist.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Find returns the live (non-deleted) task with the given id.
func (s *Store) Find(id string) (*Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id && !s.tasks[i].Deleted {
			return &s.tasks[i], true
		}
	}
	return nil, false
}

// Add validates text and due date, assigns the next id, appends the new task,
// and persists. Validation failures leave the store unchanged.
func (s *Store) Add(text string, priority Priority, due string) (Task, error) {
	if err := ValidateText(text); err != nil {
		return Task{}, err
	}
	if err := ValidateDueDate(due); err != nil {
		return Task{}, err
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}

	t := Task{
		ID:       NextID(s.tasks),
		Text:     text,
		Priority: priority,
		Created:  s.now().Format(CreatedLayout),
	}
	if due != "" {
		t.DueDate = &due
	}
	s.tasks = append(s.tasks, t)
	return t, s.persist()
}

// Update edits the text, priority, and due date of the task with the given id.
// Id and creation timestamp never change. Validation failures leave the task
// untouched.
func (s *Store) Update(id, text string, priority Priority, due string) error {
	t, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err := ValidateText(text); err != nil {
		return err
	}
	if err := ValidateDueDate(due); err != nil {
		return err
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}

	t.Text = text
	t.Priority = priority
	if due == "" {
		t.DueDate = nil
	} else {
		t.DueDate = &due
	}
	return s.persist()
}

// SetCompleted sets the completion flag of the task with the given id.
func (s *Store) SetCompleted(id string, done bool) error {
	t, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t.Completed = done
	return s.persist()
}

// SoftDelete marks the task with the given id as deleted. The record stays in
// the file forever so its id is never reissued.
func (s *Store) SoftDelete(id string) error {
	t, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t.Deleted = true
	return s.persist()
}

// CountCompleted returns the number of live completed tasks.
func (s *Store) CountCompleted() int {
	n := 0
	for i := range s.tasks {
		if s.tasks[i].Completed && !s.tasks[i].Deleted {
			n++
		}
	}
	return n
}

// ClearCompleted soft-deletes every live completed task and returns how many
// were affected. With nothing to clear it returns 0 without touching the file.
func (s *Store) ClearCompleted() (int, error) {
	n := 0
	for i := range s.tasks {
		if s.tasks[i].Completed && !s.tasks[i].Deleted {
			s.tasks[i].Deleted = true
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.persist()
}

// Flush saves the current list unconditionally.
func (s *Store) Flush() error {
	return s.persist()
}

func (s *Store) persist() error {
	if err := Save(s.path, s.tasks); err != nil {
		s.dirty = true
		return fmt.Errorf("save tasks: %w", err)
	}
	s.dirty = false
	return nil
}
