package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the task file at path. A missing file is not an error: the app
// starts with an empty list. An unreadable or unparsable file returns an error
// wrapping ErrCorruptFile and leaves the file untouched so nothing is lost.
func Load(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	// Older files may omit keys; fill the documented defaults.
	for i := range tasks {
		if tasks[i].Priority == "" {
			tasks[i].Priority = PriorityMedium
		}
	}
	return tasks, nil
}

// Save writes the full task list, soft-deleted records included, as a
// pretty-printed JSON array. The write goes to a temp file first and is moved
// into place, so a crash mid-write cannot clobber the previous version.
func Save(path string, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
