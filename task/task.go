package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do item
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask creates a task with a fresh unique id
func NewTask(text string) Task {
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
	}
}

// ValidationError indicates user input failed a local constraint.
// It is rejected before anything is sent to an external call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
