package explain

import (
	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/llm"
)

// ExplanationSchema defines the JSON schema for a generated alternative
// explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "alt-explanation",
	Description: "An alternative explanation of why the correct answer is right, in a requested style",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type": "string",
				"enum": modeEnum(),
			},
			"text": map[string]any{
				"type":        "string",
				"minLength":   20,
				"maxLength":   1200,
				"description": "The explanation in plain text, 2-6 sentences or lines",
			},
		},
		"required":             []any{"mode", "text"},
		"additionalProperties": false,
	},
}

func modeEnum() []any {
	modes := catalog.AllExplanationModes()
	out := make([]any, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}
