package store

import (
	"os"
	"path/filepath"
	"testing"

	"taskmuse/task"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	tasks := []task.Task{task.NewTask("Buy milk"), task.NewTask("Walk the dog")}
	tasks[1].Completed = true

	if err := st.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := st.Load()
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(loaded))
	}
	if loaded[0].Text != "Buy milk" || loaded[0].Completed {
		t.Errorf("Unexpected first task: %+v", loaded[0])
	}
	if loaded[1].Text != "Walk the dog" || !loaded[1].Completed {
		t.Errorf("Unexpected second task: %+v", loaded[1])
	}
	if loaded[0].ID != tasks[0].ID {
		t.Errorf("Expected id to survive the round trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	st, err := NewStore(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if tasks := st.Load(); len(tasks) != 0 {
		t.Errorf("Expected empty list for a missing file, got %v", tasks)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if tasks := st.Load(); len(tasks) != 0 {
		t.Errorf("Expected corrupt content to be discarded, got %v", tasks)
	}
}

func TestLoadNonArrayContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`{"tasks":[]}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if tasks := st.Load(); len(tasks) != 0 {
		t.Errorf("Expected non-array content to be discarded, got %v", tasks)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	st, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := st.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected file to exist: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Expected an empty array for a nil list, got %q", string(data))
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	st, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if filepath.Base(st.Path()) != "tasks.json" {
		t.Errorf("Expected default path to end in tasks.json, got %s", st.Path())
	}
}
