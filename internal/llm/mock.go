package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted MockProvider result.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONReply marshals v into a successful Reply.
func JSONReply(v any) Reply {
	b, err := json.Marshal(v)
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Content: b}
}

// MockProvider replays scripted replies in order and records requests.
// Replies go through the request schema like a real vendor's would. It
// is also the "mock" provider for offline runs.
type MockProvider struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
}

func NewMockProvider(script ...Reply) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) ModelID() string { return "mock" }

// Push appends replies to the script.
func (m *MockProvider) Push(replies ...Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, replies...)
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Generate pops the next reply. An empty script is KindUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable}
	}
	r := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return checked(req, &Response{Content: r.Content, Usage: r.Usage, Model: "mock", Finish: FinishStop})
}
