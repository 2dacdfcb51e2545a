package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON Schema a structured reply must satisfy. It compiles
// once, on first use.
type Schema struct {
	// Name is a kebab-case identifier the vendors see as the tool or
	// format name.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler wants decoded JSON values, not Go maps of []string.
		raw, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = fmt.Errorf("marshal schema %q: %w", s.Name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			s.err = fmt.Errorf("decode schema %q: %w", s.Name, err)
			return
		}
		url := "mem://llm/" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add schema %q: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// Validate checks raw against the schema. A nil schema accepts anything.
// Failures are *Error of KindInvalidResponse.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	compiled, err := s.compile()
	if err != nil {
		return invalid(raw, "%w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(raw, "reply is not JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return invalid(raw, "reply breaks schema %q: %w", s.Name, err)
	}
	return nil
}
