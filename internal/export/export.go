// Package export writes a single task to an external file, as plain text or
// pretty-printed JSON depending on the destination extension.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"taskman/internal/task"
)

// Text writes the fixed six-line plain-text form of a task.
func Text(w io.Writer, t task.Task) error {
	due := t.Due()
	if due == "" {
		due = "No due date"
	}
	status := "Pending"
	if t.Completed {
		status = "Done"
	}
	_, err := fmt.Fprintf(w, "Task ID: %s\nTask: %s\nPriority: %s\nDue Date: %s\nStatus: %s\nCreated: %s\n",
		t.ID, t.Text, t.Priority, due, status, t.Created)
	return err
}

// JSON writes the raw task record, pretty-printed.
func JSON(w io.Writer, t task.Task) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ToFile exports the task to path, choosing JSON for a .json extension and
// plain text otherwise. A failed export leaves no state behind beyond a
// possibly partial destination file.
func ToFile(path string, t task.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = JSON(f, t)
	} else {
		err = Text(f, t)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
