// Package insight fetches supplementary AI-generated detail for a single
// task: a duration estimate, dependencies, notes, and optional sub-tasks.
package insight

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"taskmuse/llm"
)

// Insight holds the model's supplementary detail for one task.
// It is transient, scoped to one dialog interaction.
type Insight struct {
	EstimatedTimeToComplete string   `json:"estimatedTimeToComplete"`
	PotentialDependencies   string   `json:"potentialDependencies"`
	AdditionalNotes         string   `json:"additionalNotes"`
	SubTasks                []string `json:"subTasks"`
}

// systemPrompt asks the model for the four insight fields as strict JSON.
const systemPrompt = `You are a planning assistant for a to-do list application. The user will give you one task from their list, plus the rest of the list for context.

Estimate what completing the task involves and respond with a single valid JSON object with exactly these keys:
- "estimatedTimeToComplete": a short human-readable duration estimate (for example "about 30 minutes").
- "potentialDependencies": a short sentence naming anything this task depends on, or "None" if nothing comes to mind.
- "additionalNotes": one or two helpful sentences of practical advice.
- "subTasks": an array of 0-5 short sub-task strings, or an empty array if the task does not split usefully.

Return ONLY the JSON object and nothing else.`

// Requester fetches insights through an LLM adapter
type Requester struct {
	adapter llm.LLMAdapter
}

// NewRequester creates an insight requester backed by the given adapter
func NewRequester(adapter llm.LLMAdapter) *Requester {
	return &Requester{adapter: adapter}
}

// Request fetches insight for one task. On any failure it returns a
// degraded result instead of an error, so the presentation layer never
// needs special-case error handling for this path.
func (r *Requester) Request(ctx context.Context, taskText string, taskList []string) Insight {
	var sb strings.Builder
	sb.WriteString("Task: ")
	sb.WriteString(taskText)
	if len(taskList) > 0 {
		sb.WriteString("\n\nFull list for context:\n")
		sb.WriteString(strings.Join(taskList, "\n"))
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: sb.String()},
	}

	reply, err := r.adapter.Send(ctx, messages)
	if err != nil {
		log.Warn("insight request failed, returning degraded result", "err", err)
		return degraded()
	}

	parsed, ok := parseInsight(reply.Content)
	if !ok {
		log.Warn("insight response did not match expected shape, returning degraded result")
		return degraded()
	}
	return parsed
}

// parseInsight decodes the model's reply, tolerating fences and prose
func parseInsight(content string) (Insight, bool) {
	content = strings.TrimSpace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return Insight{}, false
	}

	var ins Insight
	if err := json.Unmarshal([]byte(content[start:end+1]), &ins); err != nil {
		return Insight{}, false
	}

	if ins.EstimatedTimeToComplete == "" {
		ins.EstimatedTimeToComplete = "Not available"
	}
	if ins.PotentialDependencies == "" {
		ins.PotentialDependencies = "Not available"
	}
	if ins.AdditionalNotes == "" {
		ins.AdditionalNotes = "No additional notes."
	}
	if ins.SubTasks == nil {
		ins.SubTasks = []string{}
	}
	return ins, true
}

// degraded is the fallback insight used when the service is unreachable
// or its reply is unusable.
func degraded() Insight {
	return Insight{
		EstimatedTimeToComplete: "Not available",
		PotentialDependencies:   "Not available",
		AdditionalNotes:         "Sorry, the assistant could not be reached, so no insight is available for this task right now.",
		SubTasks:                []string{},
	}
}
