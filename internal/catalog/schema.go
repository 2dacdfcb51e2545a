package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Document names inside a content pack.
const (
	docManifest   = "manifest"
	docObjectives = "objectives"
	docQuestions  = "questions"
	docMissions   = "missions"
	docLessons    = "lessons"
)

var idPattern = map[string]any{"type": "string", "pattern": "^[A-Za-z0-9][A-Za-z0-9._-]*$"}

// schemaDefinitions holds the JSON Schema for each content document.
// Definitions are deliberately loose on optional fields; structural rules
// that span documents live in validate.go.
var schemaDefinitions = map[string]map[string]any{
	docManifest: {
		"type": "object",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string"},
			"version": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"version"},
	},
	docObjectives: {
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":            idPattern,
				"domain":        map[string]any{"type": "string", "minLength": 1},
				"title":         map[string]any{"type": "string", "minLength": 1},
				"weight":        map[string]any{"type": "number"},
				"status":        map[string]any{"type": "string"},
				"nextDue":       map[string]any{"type": []any{"string", "null"}},
				"mastery":       map[string]any{"type": "number"},
				"misconception": map[string]any{"type": "boolean"},
			},
			"required": []any{"id", "domain", "title"},
		},
	},
	docQuestions: {
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          idPattern,
				"objectiveId": map[string]any{"type": "string", "minLength": 1},
				"domain":      map[string]any{"type": "string", "minLength": 1},
				"stem":        map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"answerIndex": map[string]any{"type": "integer", "minimum": 0},
				"rationale":   map[string]any{"type": "string"},
				"altExplanations": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"mode": map[string]any{"type": "string", "enum": []any{"analogy", "picture", "steps", "story", "table", "cli"}},
							"text": map[string]any{"type": "string", "minLength": 1},
						},
						"required": []any{"mode", "text"},
					},
				},
				"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
			},
			"required": []any{"id", "objectiveId", "domain", "stem", "options", "answerIndex"},
		},
	},
	docMissions: {
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":         idPattern,
				"title":      map[string]any{"type": "string", "minLength": 1},
				"type":       map[string]any{"type": "string", "minLength": 1},
				"objectives": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"lore":       map[string]any{"type": "string"},
				"tasks":      map[string]any{"type": "object"},
				"unlocks":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"id", "title", "type"},
		},
	},
	docLessons: {
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          idPattern,
				"objectiveId": map[string]any{"type": "string"},
				"domain":      map[string]any{"type": "string"},
				"title":       map[string]any{"type": "string", "minLength": 1},
				"body":        map[string]any{"type": "string"},
			},
			"required": []any{"id", "title", "body"},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// compiledSchemas compiles every document schema once per process.
func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		out := make(map[string]*jsonschema.Schema, len(schemaDefinitions))
		for name, def := range schemaDefinitions {
			// The compiler wants a decoded JSON value, not Go literals.
			b, err := json.Marshal(def)
			if err != nil {
				compileErr = fmt.Errorf("marshal %s schema: %w", name, err)
				return
			}
			var parsed any
			if err := json.Unmarshal(b, &parsed); err != nil {
				compileErr = fmt.Errorf("parse %s schema: %w", name, err)
				return
			}
			url := fmt.Sprintf("schema://spyacademy/%s.json", name)
			if err := c.AddResource(url, parsed); err != nil {
				compileErr = fmt.Errorf("add %s schema: %w", name, err)
				return
			}
			s, err := c.Compile(url)
			if err != nil {
				compileErr = fmt.Errorf("compile %s schema: %w", name, err)
				return
			}
			out[name] = s
		}
		compiled = out
	})
	return compiled, compileErr
}

// validateDocument checks a decoded JSON document against its schema.
func validateDocument(name string, doc any) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	s, ok := schemas[name]
	if !ok {
		return fmt.Errorf("no schema for document %q", name)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
