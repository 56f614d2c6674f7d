// Package intent turns free-form user text into structured task-list
// operations by way of a hosted LLM call plus a repair layer for the
// model's occasionally inconsistent output.
package intent

// Action is one of the five recognized user intents
type Action string

const (
	ActionAddTasks     Action = "add_tasks"
	ActionClearAll     Action = "clear_all_tasks"
	ActionCompleteAll  Action = "complete_all_tasks"
	ActionQueryCount   Action = "query_task_count"
	ActionConversation Action = "no_action_conversational_reply"
)

// ParseAction maps a raw action string to a known Action.
// The second return value reports whether the string was recognized.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionAddTasks, ActionClearAll, ActionCompleteAll, ActionQueryCount, ActionConversation:
		return Action(s), true
	}
	return ActionAddTasks, false
}

// Result is the normalized outcome of one classification request.
// It is produced per request, consumed immediately, and never stored.
type Result struct {
	TaskList  []string `json:"taskList"`
	Reasoning string   `json:"reasoning"`
	Action    Action   `json:"action"`
}
