// Package llm is a small vendor-neutral client for single-turn structured
// generation. Explanations are its only consumer; every call carries a
// purpose label, a prompt and usually a JSON Schema the reply must match.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured reply per call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	// Purpose labels the call in the request log, e.g. "alt-explanation".
	Purpose string
	System  string
	Prompt  string

	// Schema, when set, asks the vendor for JSON output and is enforced on
	// the reply. Without it Content is the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Finish says why generation stopped.
type Finish string

const (
	FinishStop   Finish = "stop"
	FinishLength Finish = "length"
)

// Response is a provider reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that served the call, which may differ from the
	// configured alias.
	Model  string
	Finish Finish
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// resolveModel maps a short alias to a vendor model ID; unknown names
// pass through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// checked enforces req.Schema on a finished reply.
func checked(req Request, resp *Response) (*Response, error) {
	if resp.Finish == FinishLength {
		return nil, &Error{Kind: KindTruncated, Content: resp.Content}
	}
	if req.Schema != nil {
		if err := req.Schema.Validate(resp.Content); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
