package dataset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// formSchema describes one {native, latin?, ipa} object.
var formSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"native": map[string]any{"type": "string", "minLength": 1},
		"latin":  map[string]any{"type": "string"},
		"ipa":    map[string]any{"type": "string"},
	},
	"required":             []any{"native", "ipa"},
	"additionalProperties": false,
}

// fileSchema validates the vocabulary file before decoding, so a
// malformed dataset fails with a schema error instead of silently
// producing half-empty words.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version":    map[string]any{"type": "string"},
		"totalWords": map[string]any{"type": "integer", "minimum": 0},
		"words": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":           map[string]any{"type": "integer", "minimum": 1},
					"ru":           map[string]any{"type": "string", "minLength": 1},
					"en":           map[string]any{"type": "string", "minLength": 1},
					"pos":          map[string]any{"type": "string"},
					"level":        map[string]any{"enum": []any{"A1", "A2", "B1", "B2"}},
					"frequency":    map[string]any{"type": "integer", "minimum": 1},
					"cognateScore": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
					"origin": map[string]any{
						"enum": []any{"turkic", "arabic", "persian", "russian", "international"},
					},
					"forms": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"kk": formSchema,
							"tr": formSchema,
							"uz": formSchema,
							"ky": formSchema,
							"tt": formSchema,
							"az": formSchema,
						},
						"additionalProperties": false,
					},
				},
				"required":             []any{"id", "ru", "en", "pos", "frequency", "origin", "forms"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version", "totalWords", "words"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validate checks raw against the dataset schema.
func validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("dataset schema validation failed: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not a
		// Go map with typed values; round-trip through encoding/json.
		defBytes, err := json.Marshal(fileSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://vocabulary.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
