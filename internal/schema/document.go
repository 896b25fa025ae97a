package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/dshills/fitcheck/internal/assessment"
	"github.com/dshills/fitcheck/internal/instrument"
)

// ErrDocument marks a response document that does not match its instrument.
var ErrDocument = errors.New("response document does not match instrument")

// schemaCache caches compiled response-document schemas by instrument name and version.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Definition builds the JSON Schema a response document for inst must satisfy:
// every section and category present, no extra keys, exact list lengths,
// Likert values in [0,5] and technical selections as an option index or null.
func Definition(inst *instrument.Instrument) map[string]any {
	props := map[string]any{}
	required := []any{}
	for _, sec := range inst.Sections {
		catProps := map[string]any{}
		catRequired := []any{}
		for _, cat := range sec.Categories {
			n := len(cat.Questions)
			catProps[cat.Key] = map[string]any{
				"type":     "array",
				"minItems": n,
				"maxItems": n,
				"items":    itemSchema(sec, cat),
			}
			catRequired = append(catRequired, cat.Key)
		}
		props[string(sec.ID)] = map[string]any{
			"type":                 "object",
			"properties":           catProps,
			"required":             catRequired,
			"additionalProperties": false,
		}
		required = append(required, string(sec.ID))
	}
	return map[string]any{
		"title":                inst.Title + " responses",
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func itemSchema(sec instrument.Section, cat instrument.Category) map[string]any {
	if sec.Kind == instrument.KindChoice {
		maxOption := 0
		for _, q := range cat.Questions {
			if len(q.Options)-1 > maxOption {
				maxOption = len(q.Options) - 1
			}
		}
		return map[string]any{
			"type":    []any{"integer", "null"},
			"minimum": assessment.NoSelection,
			"maximum": maxOption,
		}
	}
	return map[string]any{
		"type":    "integer",
		"minimum": int(assessment.Unanswered),
		"maximum": int(assessment.MaxLikert),
	}
}

// Compile returns the compiled response-document schema for inst.
func Compile(inst *instrument.Instrument) (*jsonschema.Schema, error) {
	name := fmt.Sprintf("%s.v%d", inst.Name, inst.Version)
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value, so round-trip the definition.
	defBytes, err := json.Marshal(Definition(inst))
	if err != nil {
		return nil, fmt.Errorf("schema.Compile: marshal definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("schema.Compile: parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("schema.Compile: add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema.Compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// ValidateDocument checks a decoded response document (as produced by
// encoding/json into an any) against the schema for inst.
func ValidateDocument(inst *instrument.Instrument, doc any) error {
	compiled, err := Compile(inst)
	if err != nil {
		return err
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDocument, inst.Name, err)
	}
	return nil
}
