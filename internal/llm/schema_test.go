package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaValidate(t *testing.T) {
	schema := &Schema{
		Name: "finding",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"severity": map[string]any{"type": "string", "enum": []any{"low", "high"}},
				"count":    map[string]any{"type": "integer"},
				"source": map[string]any{
					"type":       "object",
					"properties": map[string]any{"ip": map[string]any{"type": "string"}},
					"required":   []any{"ip"},
				},
			},
			"required": []any{"severity"},
		},
	}

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"severity":"high","count":3,"source":{"ip":"10.0.0.5"}}`, true},
		{"optional fields omitted", `{"severity":"low"}`, true},
		{"missing required", `{"count":3}`, false},
		{"wrong type", `{"severity":"low","count":"three"}`, false},
		{"enum miss", `{"severity":"critical"}`, false},
		{"nested required", `{"severity":"low","source":{}}`, false},
		{"not json", `{severity:`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestNilSchemaAcceptsAnything(t *testing.T) {
	var s *Schema
	assert.NoError(t, s.Validate(json.RawMessage(`not json`)))
}

func TestErrorKinds(t *testing.T) {
	err := &Error{Kind: KindRateLimited, Err: assert.AnError}
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "rate limited")

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindRateLimited, kind)

	_, ok = KindOf(assert.AnError)
	assert.False(t, ok)
}
