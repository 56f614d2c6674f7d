package task

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"taskmuse/intent"
)

// Saver persists the task list after each mutation. The persisted copy is
// a passive mirror of the in-memory list, not a source of truth.
type Saver interface {
	Save(tasks []Task) error
}

// Session owns the in-memory task list for one user session. All mutation
// flows through it; concurrent callers are serialized by its mutex.
type Session struct {
	mu          sync.Mutex
	tasks       []Task
	saver       Saver
	nextSeq     uint64
	lastApplied uint64
}

// NewSession creates a session seeded with tasks loaded at startup.
// saver may be nil, in which case nothing is persisted.
func NewSession(tasks []Task, saver Saver) *Session {
	return &Session{
		tasks: append([]Task(nil), tasks...),
		saver: saver,
	}
}

// Tasks returns a snapshot of the current task list
func (s *Session) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Task(nil), s.tasks...)
}

// Counts returns the total, completed, and remaining task counts
func (s *Session) Counts() (total, completed, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countsLocked()
}

func (s *Session) countsLocked() (total, completed, remaining int) {
	total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return total, completed, total - completed
}

// AddTasks appends new tasks to the front of the list, preserving input
// order, and returns the created tasks.
func (s *Session) AddTasks(texts []string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTasksLocked(texts)
}

func (s *Session) addTasksLocked(texts []string) []Task {
	if len(texts) == 0 {
		return nil
	}

	created := make([]Task, 0, len(texts))
	for _, text := range texts {
		created = append(created, NewTask(text))
	}

	s.tasks = append(append([]Task(nil), created...), s.tasks...)
	s.persistLocked()
	return created
}

// ClearAll empties the list and reports whether any task existed beforehand
func (s *Session) ClearAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAllLocked()
}

func (s *Session) clearAllLocked() bool {
	had := len(s.tasks) > 0
	s.tasks = nil
	if had {
		s.persistLocked()
	}
	return had
}

// CompleteAll marks every task completed and reports whether any task
// existed and was not already complete.
func (s *Session) CompleteAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeAllLocked()
}

func (s *Session) completeAllLocked() bool {
	changed := false
	for i := range s.tasks {
		if !s.tasks[i].Completed {
			s.tasks[i].Completed = true
			changed = true
		}
	}
	if changed {
		s.persistLocked()
	}
	return changed
}

// QueryCount formats one of three response templates from live counts.
// subtype is "total", "remaining", or "completed"; anything else falls
// back to the total template.
func (s *Session) QueryCount(subtype string) string {
	total, completed, remaining := s.Counts()

	switch subtype {
	case "remaining":
		return fmt.Sprintf("You have %d tasks remaining out of %d.", remaining, total)
	case "completed":
		return fmt.Sprintf("You have completed %d of %d tasks.", completed, total)
	default:
		return fmt.Sprintf("You have %d tasks in total: %d completed and %d remaining.", total, completed, remaining)
	}
}

// Toggle flips the completed state of one task by id
func (s *Session) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persistLocked()
			return true
		}
	}
	return false
}

// EditText replaces the text of one task by id. Empty text is rejected
// locally and never reaches an external call.
func (s *Session) EditText(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &ValidationError{Field: "text", Reason: "task text cannot be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Text = text
			s.persistLocked()
			return nil
		}
	}
	return &ValidationError{Field: "id", Reason: fmt.Sprintf("no task with id %s", id)}
}

// Delete removes one task by id
func (s *Session) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// BeginRequest issues a monotonic sequence number for one classification
// request. Results are fenced by this number so a stale response arriving
// after a newer one has been applied is ignored.
func (s *Session) BeginRequest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// ApplyClassification routes a normalized classification result to the
// list operations and returns the user-facing message plus whether the
// result was applied. Stale results (older than the newest applied one)
// are dropped.
func (s *Session) ApplyClassification(seq uint64, res intent.Result) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.lastApplied {
		log.Debug("dropping stale classification result", "seq", seq, "lastApplied", s.lastApplied)
		return "", false
	}
	s.lastApplied = seq

	switch res.Action {
	case intent.ActionClearAll:
		if s.clearAllLocked() {
			return "All tasks cleared.", true
		}
		return "Your list is already empty.", true

	case intent.ActionCompleteAll:
		if len(s.tasks) == 0 {
			return "There are no tasks to complete.", true
		}
		if s.completeAllLocked() {
			return "All tasks marked as complete.", true
		}
		return "Everything was already done.", true

	case intent.ActionQueryCount:
		// The classifier's own count is advisory only; answer from
		// live state at apply time.
		total, completed, remaining := s.countsLocked()
		switch querySubtype(res.Reasoning) {
		case "remaining":
			return fmt.Sprintf("You have %d tasks remaining out of %d.", remaining, total), true
		case "completed":
			return fmt.Sprintf("You have completed %d of %d tasks.", completed, total), true
		default:
			return fmt.Sprintf("You have %d tasks in total: %d completed and %d remaining.", total, completed, remaining), true
		}

	case intent.ActionConversation:
		return res.Reasoning, true

	default: // intent.ActionAddTasks
		s.addTasksLocked(res.TaskList)
		return res.Reasoning, true
	}
}

// querySubtype picks the count sub-type encoded in the classifier's
// reasoning text.
func querySubtype(reasoning string) string {
	lower := strings.ToLower(reasoning)
	switch {
	case strings.Contains(lower, "remaining"):
		return "remaining"
	case strings.Contains(lower, "completed"):
		return "completed"
	default:
		return "total"
	}
}

// persistLocked mirrors the list to the saver. Persistence failures are
// logged, never fatal; the in-memory list is the source of truth.
func (s *Session) persistLocked() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(append([]Task(nil), s.tasks...)); err != nil {
		log.Warn("failed to persist task list", "err", err)
	}
}
