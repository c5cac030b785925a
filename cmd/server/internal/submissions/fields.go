package submissions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hackwave-community/platform-api/internal/types"
)

// FieldSchema validates submission answer bags against an event's
// dynamic form definition. Disabled fields are treated exactly like
// unknown keys.
type FieldSchema struct {
	schema *jsonschema.Schema
	byKey  map[string]types.SubmissionFormField
}

// CompileFieldSchema builds a JSON schema from the enabled field
// definitions. Required is only honored for enabled fields.
func CompileFieldSchema(fields []types.SubmissionFormField) (*FieldSchema, error) {
	properties := map[string]any{}
	required := []string{}
	byKey := map[string]types.SubmissionFormField{}

	for _, field := range fields {
		if !field.Enabled {
			continue
		}

		byKey[field.Key] = field
		properties[field.Key] = property(field)
		if field.Required {
			required = append(required, field.Key)
		}
	}
	sort.Strings(required)

	doc := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	err = compiler.AddResource("form.json", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to add form schema resource: %w", err)
	}

	schema, err := compiler.Compile("form.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile form schema: %w", err)
	}

	return &FieldSchema{schema: schema, byKey: byKey}, nil
}

func property(field types.SubmissionFormField) map[string]any {
	var prop map[string]any

	switch field.Type {
	case types.FieldTypeNumber:
		prop = map[string]any{"type": "number"}
	case types.FieldTypeBoolean:
		prop = map[string]any{"type": "boolean"}
	case types.FieldTypeURL:
		prop = map[string]any{"type": "string", "format": "uri"}
	default:
		prop = map[string]any{"type": "string"}
	}

	if field.Required {
		// An empty string answer does not satisfy a mandatory field.
		if prop["type"] == "string" && field.Type != types.FieldTypeURL {
			prop["minLength"] = 1
		}
	} else {
		prop["type"] = []any{prop["type"], "null"}
	}

	return prop
}

// Validate checks an answer bag. A non-nil map is a rejection keyed by
// field key, with messages naming the offending field's label.
func (s *FieldSchema) Validate(answers map[string]any) map[string]string {
	if answers == nil {
		answers = map[string]any{}
	}

	err := s.schema.Validate(map[string]any(answers))
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return map[string]string{"fields": err.Error()}
	}

	fieldMap := map[string]string{}
	for _, e := range validationErr.BasicOutput().Errors {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}

		key := strings.TrimPrefix(e.InstanceLocation, "/")
		if field, ok := s.byKey[key]; ok {
			fieldMap[key] = fmt.Sprintf("%s: %s", field.Label, e.Error)
			continue
		}

		// Missing-required and unknown-key failures report at the bag
		// root. Pin them to the named key when the message carries one.
		matched := false
		for k, field := range s.byKey {
			if strings.Contains(e.Error, "'"+k+"'") {
				fieldMap[k] = fmt.Sprintf("%s: %s", field.Label, e.Error)
				matched = true
			}
		}
		if !matched {
			fieldMap["fields"] = e.Error
		}
	}

	if len(fieldMap) == 0 {
		fieldMap["fields"] = validationErr.Message
	}

	return fieldMap
}

// Field returns the definition for an enabled key.
func (s *FieldSchema) Field(key string) (types.SubmissionFormField, bool) {
	field, ok := s.byKey[key]
	return field, ok
}
