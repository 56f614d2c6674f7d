// Package store persists the task list as a single JSON file. The file is
// read once at startup and rewritten after every mutation; between those
// points the in-memory list owns the truth.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"taskmuse/task"
)

// Store reads and writes the task list file
type Store struct {
	path string
}

// NewStore creates a store for the given file path. An empty path falls
// back to ~/.taskmuse/tasks.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".taskmuse", "tasks.json")
	}
	return &Store{path: path}, nil
}

// Path returns the file the store reads and writes
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted task list. A missing file, corrupt JSON, or
// content that is not an array is discarded and treated as an empty list.
func (s *Store) Load() []task.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read task list, starting empty", "path", s.path, "err", err)
		}
		return nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.Warn("task list file is corrupt, starting empty", "path", s.path, "err", err)
		return nil
	}

	return tasks
}

// Save rewrites the whole task list file
func (s *Store) Save(tasks []task.Task) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if tasks == nil {
		tasks = []task.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal task list: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write task list: %w", err)
	}

	return nil
}
