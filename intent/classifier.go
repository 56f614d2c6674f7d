package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"taskmuse/llm"
)

// classificationSchema constrains the overall shape of the model's reply:
// a JSON object whose action, if present, is one of the five known intents
// and whose reasoning, if present, is a string. The taskList field is left
// to the normalizer, which coerces rather than rejects (see normalize.go).
const classificationSchema = `{
	"type": "object",
	"properties": {
		"action": {
			"type": "string",
			"enum": [
				"add_tasks",
				"clear_all_tasks",
				"complete_all_tasks",
				"query_task_count",
				"no_action_conversational_reply"
			]
		},
		"reasoning": {"type": "string"}
	}
}`

var compiledSchema = jsonschema.MustCompileString("classification.json", classificationSchema)

// RawResult is the classifier's reply as received, before normalization.
// TaskList stays raw JSON so the normalizer can coerce a mistyped value
// instead of failing the whole request.
type RawResult struct {
	TaskList  json.RawMessage `json:"taskList"`
	Reasoning string          `json:"reasoning"`
	Action    string          `json:"action"`
}

// Classifier maps raw user text plus the current task count to a Result
// via one external model call. It has no side effects beyond the request.
type Classifier struct {
	adapter llm.LLMAdapter
}

// NewClassifier creates a classifier backed by the given adapter
func NewClassifier(adapter llm.LLMAdapter) *Classifier {
	return &Classifier{adapter: adapter}
}

// Classify sends one classification request and returns the normalized
// result. Failures are *llm.ServiceError (the call failed) or
// *llm.SchemaError (the reply did not match the expected shape).
func (c *Classifier) Classify(ctx context.Context, prompt string, currentTaskCount int) (Result, error) {
	messages := []llm.Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Current task count: %d\n\nUser message: %s", currentTaskCount, prompt)},
	}

	reply, err := c.adapter.Send(ctx, messages)
	if err != nil {
		return Result{}, err
	}

	raw, err := decodeClassification(reply.Content)
	if err != nil {
		return Result{}, err
	}

	return Normalize(raw, prompt), nil
}

// decodeClassification extracts, schema-checks, and decodes the model's
// JSON reply.
func decodeClassification(content string) (RawResult, error) {
	payload, ok := extractJSON(content)
	if !ok {
		return RawResult{}, &llm.SchemaError{Reason: "no JSON object in response", Raw: content}
	}

	var generic interface{}
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		return RawResult{}, &llm.SchemaError{Reason: fmt.Sprintf("invalid JSON: %v", err), Raw: content}
	}

	if err := compiledSchema.Validate(generic); err != nil {
		return RawResult{}, &llm.SchemaError{Reason: fmt.Sprintf("response does not match classification schema: %v", err), Raw: content}
	}

	var raw RawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return RawResult{}, &llm.SchemaError{Reason: fmt.Sprintf("failed to decode classification: %v", err), Raw: content}
	}

	return raw, nil
}

// extractJSON returns the outermost JSON object in content, tolerating
// Markdown code fences and prose around it.
func extractJSON(content string) (string, bool) {
	content = strings.TrimSpace(content)

	// Strip a ``` or ```json fence if the model wrapped its output
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}

	return content[start : end+1], true
}
