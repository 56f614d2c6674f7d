package intent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"taskmuse/llm"
	"taskmuse/testutil"
)

func TestClassifyValidResponse(t *testing.T) {
	adapter := testutil.NewFakeAdapter(`{"taskList":["Buy milk"],"reasoning":"Added buying milk to your list.","action":"add_tasks"}`)
	classifier := NewClassifier(adapter)

	res, err := classifier.Classify(context.Background(), "buy milk", 0)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Action != ActionAddTasks {
		t.Errorf("Expected add_tasks, got %s", res.Action)
	}
	if len(res.TaskList) != 1 || res.TaskList[0] != "Buy milk" {
		t.Errorf("Expected [Buy milk], got %v", res.TaskList)
	}
	if res.Reasoning != "Added buying milk to your list." {
		t.Errorf("Unexpected reasoning: %q", res.Reasoning)
	}
}

func TestClassifySendsPromptAndCount(t *testing.T) {
	adapter := testutil.NewFakeAdapter(`{"taskList":[],"action":"query_task_count","reasoning":"You asked about the total."}`)
	classifier := NewClassifier(adapter)

	if _, err := classifier.Classify(context.Background(), "how many tasks do I have", 3); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	calls := adapter.Calls()
	if len(calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(calls))
	}

	messages := calls[0]
	if len(messages) != 2 {
		t.Fatalf("Expected system+user messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("Expected first message to be the system prompt, got role %q", messages[0].Role)
	}
	user := messages[1].Content
	if want := "Current task count: 3"; !contains(user, want) {
		t.Errorf("Expected user message to carry %q, got %q", want, user)
	}
	if want := "how many tasks do I have"; !contains(user, want) {
		t.Errorf("Expected user message to carry the prompt, got %q", user)
	}
}

func TestClassifyClearAllWithStrayTasks(t *testing.T) {
	// Even if the model violates the contract and returns tasks for a
	// clear action, the caller sees an empty list.
	adapter := testutil.NewFakeAdapter(`{"taskList":["delete all tasks"],"reasoning":"Clearing your list.","action":"clear_all_tasks"}`)
	classifier := NewClassifier(adapter)

	res, err := classifier.Classify(context.Background(), "delete all tasks", 5)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Action != ActionClearAll {
		t.Errorf("Expected clear_all_tasks, got %s", res.Action)
	}
	if len(res.TaskList) != 0 {
		t.Errorf("Expected empty taskList, got %v", res.TaskList)
	}
}

func TestClassifyToleratesCodeFences(t *testing.T) {
	adapter := testutil.NewFakeAdapter("```json\n{\"taskList\":[\"Walk the dog\"],\"action\":\"add_tasks\",\"reasoning\":\"Done.\"}\n```")
	classifier := NewClassifier(adapter)

	res, err := classifier.Classify(context.Background(), "walk the dog", 0)
	if err != nil {
		t.Fatalf("Classify failed on fenced JSON: %v", err)
	}
	if len(res.TaskList) != 1 || res.TaskList[0] != "Walk the dog" {
		t.Errorf("Expected [Walk the dog], got %v", res.TaskList)
	}
}

func TestClassifyToleratesSurroundingProse(t *testing.T) {
	adapter := testutil.NewFakeAdapter(`Here you go: {"taskList":["Read a book"],"action":"add_tasks","reasoning":"Added it."} Hope that helps!`)
	classifier := NewClassifier(adapter)

	res, err := classifier.Classify(context.Background(), "read a book", 0)
	if err != nil {
		t.Fatalf("Classify failed on prose-wrapped JSON: %v", err)
	}
	if len(res.TaskList) != 1 {
		t.Errorf("Expected one task, got %v", res.TaskList)
	}
}

func TestClassifyServiceError(t *testing.T) {
	adapter := testutil.NewFakeAdapter()
	adapter.SendErr = &llm.ServiceError{Provider: "fake", Err: fmt.Errorf("connection refused")}
	classifier := NewClassifier(adapter)

	_, err := classifier.Classify(context.Background(), "buy milk", 0)

	var serviceErr *llm.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("Expected *llm.ServiceError, got %v", err)
	}
}

func TestClassifySchemaErrorOnGarbage(t *testing.T) {
	adapter := testutil.NewFakeAdapter("I'm sorry, I can't help with that.")
	classifier := NewClassifier(adapter)

	_, err := classifier.Classify(context.Background(), "buy milk", 0)

	var schemaErr *llm.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *llm.SchemaError, got %v", err)
	}
}

func TestClassifySchemaErrorOnBadAction(t *testing.T) {
	// An action outside the enum fails schema validation at the boundary.
	adapter := testutil.NewFakeAdapter(`{"taskList":[],"action":"explode_tasks","reasoning":"Boom."}`)
	classifier := NewClassifier(adapter)

	_, err := classifier.Classify(context.Background(), "buy milk", 0)

	var schemaErr *llm.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *llm.SchemaError for unknown action, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `sure: {"a":1} done`, `{"a":1}`, true},
		{"no object", "nothing here", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.content)
			if ok != tt.ok {
				t.Fatalf("extractJSON(%q) ok = %v, want %v", tt.content, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

// contains is a tiny helper to keep assertions readable
func contains(haystack, needle string) bool {
	return len(needle) == 0 || (len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
