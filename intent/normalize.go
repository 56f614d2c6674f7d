package intent

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// Default reasoning per action, used when the model omits its own.
var defaultReasoning = map[Action]string{
	ActionAddTasks:     "Added the requested tasks to your list.",
	ActionClearAll:     "Cleared every task from your list.",
	ActionCompleteAll:  "Marked all of your tasks as complete.",
	ActionQueryCount:   "Here is where your task list stands.",
	ActionConversation: "Happy to chat! Let me know when you want to add some tasks.",
}

// fallbackReasoning is shown when the classification call itself failed.
const fallbackReasoning = "Sorry, I couldn't reach the assistant just now. Your tasks are untouched, so please try again in a moment."

// FallbackResult is the action-preserving result used when the classifier
// fails outright. The UI never receives a malformed result.
func FallbackResult() Result {
	return Result{
		TaskList:  nil,
		Reasoning: fallbackReasoning,
		Action:    ActionAddTasks,
	}
}

// Normalize makes a raw classification safe to apply regardless of model
// misbehavior. This is a best-effort repair layer, not a correctness
// guarantee: the echo-collapse heuristic in particular is fuzzy matching
// on natural-language output.
func Normalize(raw RawResult, prompt string) Result {
	list := coerceStrings(raw.TaskList)

	action := ActionAddTasks
	if raw.Action != "" {
		parsed, known := ParseAction(raw.Action)
		if !known {
			log.Warn("classifier returned unknown action, defaulting to add_tasks", "action", raw.Action)
		}
		action = parsed
	}

	// The action result takes precedence over a stray task list
	if action != ActionAddTasks && len(list) > 0 {
		log.Warn("classifier returned tasks for a non-add action, dropping them", "action", action, "dropped", len(list))
		list = nil
	}

	if action == ActionAddTasks {
		list = collapseEcho(list, prompt)
		list = cleanTasks(list)
	}

	reasoning := strings.TrimSpace(raw.Reasoning)
	if reasoning == "" {
		reasoning = defaultReasoning[action]
	}

	return Result{
		TaskList:  list,
		Reasoning: reasoning,
		Action:    action,
	}
}

// coerceStrings decodes a raw taskList value into a string slice.
// Anything that is not an array of strings becomes an empty list.
func coerceStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Warn("classifier taskList is not an array of strings, treating as empty")
		return nil
	}
	return list
}

// collapseEcho collapses the model echoing the prompt as several identical
// entries into a single entry. It only fires when every entry is the same
// after trimming and case folding and the prompt itself does not look like
// a list of items.
func collapseEcho(list []string, prompt string) []string {
	if len(list) < 2 {
		return list
	}

	first := strings.ToLower(strings.TrimSpace(list[0]))
	for _, entry := range list[1:] {
		if strings.ToLower(strings.TrimSpace(entry)) != first {
			return list
		}
	}

	if hasListTokens(prompt) {
		return list
	}

	return list[:1]
}

// hasListTokens reports whether the prompt contains tokens that usually
// indicate the user actually asked for several items.
func hasListTokens(prompt string) bool {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, ",") {
		return true
	}
	for _, token := range []string{" and ", "plan", "list of"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// cleanTasks trims whitespace, drops empty entries, capitalizes the first
// letter, and de-duplicates while preserving order.
func cleanTasks(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, entry := range list {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = capitalizeFirst(entry)
		key := strings.ToLower(entry)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, entry)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// capitalizeFirst upper-cases the first rune of s
func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
