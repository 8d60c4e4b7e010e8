package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM is an offline LLMClient for local runs and tests. Responses are
// returned in order; when the queue runs out it falls back to a canned
// answer derived from the prompt, so a full pipeline run works without any
// provider key.
type MockLLM struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	next  int
	Calls []Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next < len(m.Responses) {
		resp := m.Responses[m.next]
		m.next++
		return resp, nil
	}
	return cannedResponse(prompt), nil
}

func cannedResponse(prompt Prompt) string {
	if strings.Contains(prompt.System, "title writer") {
		return "A Mock Take Worth Reading"
	}
	var sb strings.Builder
	sb.WriteString("This is placeholder content produced without calling a provider.\n\n")
	sb.WriteString(fmt.Sprintf("The request was: %s\n\n", prompt.User))
	for i := 0; i < 30; i++ {
		sb.WriteString("It repeats a filler paragraph so the output is long enough to pass the length checks applied to real model output. ")
	}
	return sb.String()
}
