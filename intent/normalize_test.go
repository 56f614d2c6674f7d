package intent

import (
	"encoding/json"
	"testing"
)

func rawList(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal raw list: %v", err)
	}
	return data
}

func TestNormalizeNonAddActionForcesEmptyList(t *testing.T) {
	// The action result takes precedence over whatever the model put in
	// taskList, for every non-add action.
	actions := []Action{ActionClearAll, ActionCompleteAll, ActionQueryCount, ActionConversation}

	for _, action := range actions {
		raw := RawResult{
			TaskList: rawList(t, []string{"stray", "tasks"}),
			Action:   string(action),
		}

		res := Normalize(raw, "whatever")
		if res.Action != action {
			t.Errorf("Expected action %s, got %s", action, res.Action)
		}
		if len(res.TaskList) != 0 {
			t.Errorf("Expected empty taskList for action %s, got %v", action, res.TaskList)
		}
	}
}

func TestNormalizeDefaultsActionToAddTasks(t *testing.T) {
	raw := RawResult{TaskList: rawList(t, []string{"buy milk"})}

	res := Normalize(raw, "buy milk")
	if res.Action != ActionAddTasks {
		t.Errorf("Expected add_tasks when action is absent, got %s", res.Action)
	}
	if len(res.TaskList) != 1 || res.TaskList[0] != "Buy milk" {
		t.Errorf("Expected [Buy milk], got %v", res.TaskList)
	}
}

func TestNormalizeUnknownActionDefaultsToAddTasks(t *testing.T) {
	raw := RawResult{Action: "summon_tasks", TaskList: rawList(t, []string{"x"})}

	res := Normalize(raw, "x")
	if res.Action != ActionAddTasks {
		t.Errorf("Expected add_tasks for unknown action, got %s", res.Action)
	}
}

func TestNormalizeCoercesBadTaskListToEmpty(t *testing.T) {
	raw := RawResult{
		TaskList: json.RawMessage(`"not an array"`),
		Action:   string(ActionAddTasks),
	}

	res := Normalize(raw, "anything")
	if len(res.TaskList) != 0 {
		t.Errorf("Expected empty taskList for a mistyped value, got %v", res.TaskList)
	}
}

func TestNormalizeCollapsesEchoedPrompt(t *testing.T) {
	// All entries identical after trim and case fold, prompt has no
	// list-indicating tokens: collapse to a single entry.
	raw := RawResult{
		TaskList: rawList(t, []string{"buy milk", " Buy Milk ", "BUY MILK"}),
		Action:   string(ActionAddTasks),
	}

	res := Normalize(raw, "buy milk")
	if len(res.TaskList) != 1 {
		t.Fatalf("Expected echo collapse to one entry, got %v", res.TaskList)
	}
	if res.TaskList[0] != "Buy milk" {
		t.Errorf("Expected 'Buy milk', got %q", res.TaskList[0])
	}
}

func TestNormalizeKeepsIdenticalEntriesWhenPromptLooksLikeAList(t *testing.T) {
	raw := RawResult{
		TaskList: rawList(t, []string{"pack bags", "pack bags"}),
		Action:   string(ActionAddTasks),
	}

	// The comma marks a deliberate list, so the duplicate survives the
	// echo heuristic and only falls to de-duplication afterwards.
	res := Normalize(raw, "pack bags, pack bags")
	if len(res.TaskList) != 1 {
		t.Errorf("Expected de-duplication to one entry, got %v", res.TaskList)
	}
}

func TestNormalizeDoesNotCollapseDistinctTasks(t *testing.T) {
	raw := RawResult{TaskList: rawList(t, []string{"a", "b", "a"})}

	res := Normalize(raw, "buy a buy b")
	if len(res.TaskList) != 2 {
		t.Fatalf("Expected distinct tasks to survive, got %v", res.TaskList)
	}
	if res.TaskList[0] != "A" || res.TaskList[1] != "B" {
		t.Errorf("Expected [A B], got %v", res.TaskList)
	}
}

func TestNormalizeCleansTaskEntries(t *testing.T) {
	raw := RawResult{
		TaskList: rawList(t, []string{"  walk the dog  ", "", "walk the dog", "water plants"}),
		Action:   string(ActionAddTasks),
	}

	res := Normalize(raw, "walk the dog and water plants")
	expected := []string{"Walk the dog", "Water plants"}
	if len(res.TaskList) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, res.TaskList)
	}
	for i, want := range expected {
		if res.TaskList[i] != want {
			t.Errorf("Entry %d: expected %q, got %q", i, want, res.TaskList[i])
		}
	}
}

func TestNormalizeDefaultReasoningPerAction(t *testing.T) {
	tests := []struct {
		action    Action
		reasoning string
	}{
		{ActionAddTasks, "Added the requested tasks to your list."},
		{ActionClearAll, "Cleared every task from your list."},
		{ActionCompleteAll, "Marked all of your tasks as complete."},
		{ActionQueryCount, "Here is where your task list stands."},
		{ActionConversation, "Happy to chat! Let me know when you want to add some tasks."},
	}

	for _, tt := range tests {
		res := Normalize(RawResult{Action: string(tt.action)}, "prompt")
		if res.Reasoning != tt.reasoning {
			t.Errorf("Action %s: expected reasoning %q, got %q", tt.action, tt.reasoning, res.Reasoning)
		}
	}
}

func TestNormalizeKeepsModelReasoning(t *testing.T) {
	raw := RawResult{
		Reasoning: "Sure, I added that for you.",
		Action:    string(ActionAddTasks),
		TaskList:  rawList(t, []string{"buy milk"}),
	}

	res := Normalize(raw, "buy milk")
	if res.Reasoning != "Sure, I added that for you." {
		t.Errorf("Expected model reasoning to survive, got %q", res.Reasoning)
	}
}

func TestFallbackResult(t *testing.T) {
	res := FallbackResult()
	if res.Action != ActionAddTasks {
		t.Errorf("Expected fallback action add_tasks, got %s", res.Action)
	}
	if len(res.TaskList) != 0 {
		t.Errorf("Expected empty fallback taskList, got %v", res.TaskList)
	}
	if res.Reasoning == "" {
		t.Error("Expected apologetic fallback reasoning")
	}
}
