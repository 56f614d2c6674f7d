// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskmuse/llm"
)

// FakeAdapter is an in-memory implementation of llm.LLMAdapter for testing.
// It replays canned responses and records what was sent.
type FakeAdapter struct {
	mu        sync.Mutex
	responses []string
	calls     [][]llm.Message

	// SendErr is returned from Send when set
	SendErr error
}

// NewFakeAdapter creates a fake adapter that replays the given responses
// in order, repeating the last one once exhausted.
func NewFakeAdapter(responses ...string) *FakeAdapter {
	return &FakeAdapter{responses: responses}
}

// Send implements llm.LLMAdapter.
func (f *FakeAdapter) Send(ctx context.Context, messages []llm.Message) (*llm.Message, error) {
	if f.SendErr != nil {
		return nil, f.SendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, messages)

	if len(f.responses) == 0 {
		return &llm.Message{Role: "assistant"}, nil
	}

	content := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}

	return &llm.Message{Role: "assistant", Content: content}, nil
}

// GetModelName implements llm.LLMAdapter.
func (f *FakeAdapter) GetModelName() string {
	return "fake:model"
}

// IsAvailable implements llm.LLMAdapter.
func (f *FakeAdapter) IsAvailable() bool {
	return true
}

// Calls returns every message batch sent through the adapter.
func (f *FakeAdapter) Calls() [][]llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]llm.Message(nil), f.calls...)
}
