package exam

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaURL is the resource name the exam schema is registered under.
const schemaURL = "schema://examiz-exam.json"

// Schema is the JSON schema every exam file must satisfy before it is
// decoded into a Definition.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":           map[string]any{"type": "string", "minLength": 1},
		"time_limit_secs": map[string]any{"type": "integer", "minimum": 1},
		"audio": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"source":        map[string]any{"type": "string"},
				"duration_secs": map[string]any{"type": "number", "exclusiveMinimum": 0},
			},
			"required": []any{"duration_secs"},
		},
		"parts": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":              map[string]any{"type": "string", "minLength": 1},
					"title":           map[string]any{"type": "string"},
					"description":     map[string]any{"type": "string"},
					"question_count":  map[string]any{"type": "integer", "minimum": 0},
					"time_limit_secs": map[string]any{"type": "integer", "minimum": 0},
					"has_audio":       map[string]any{"type": "boolean"},
				},
				"required":             []any{"id", "title"},
				"additionalProperties": false,
			},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":             map[string]any{"type": "integer"},
					"part":           map[string]any{"type": "string", "minLength": 1},
					"type":           map[string]any{"type": "string", "enum": []any{"listening", "reading"}},
					"prompt":         map[string]any{"type": "string", "minLength": 1},
					"passage":        map[string]any{"type": "string"},
					"audio_start":    map[string]any{"type": "number", "minimum": 0},
					"audio_end":      map[string]any{"type": "number", "minimum": 0},
					"options":        map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
					"correct_answer": map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"id", "part", "type", "prompt", "options", "correct_answer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"title", "time_limit_secs", "parts", "questions"},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateSchema checks a decoded JSON value against Schema.
func validateSchema(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile exam schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema compiles Schema once and caches the result.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain JSON value, so round-trip the Go map.
		raw, err := json.Marshal(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
