package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/xeipuuv/gojsonschema"
	"maps"
	"slices"
	"strings"
)

const (
	MessageMissingFields = "Missing required fields"
	MessageInvalidFields = "Invalid request fields"
	MessageInvalidBody   = "Invalid request body"
)

// ValidationError rejects a request before any provider is called.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) < 1 {
		return e.Message
	}

	return e.Message + ": " + strings.Join(e.Details, "; ")
}

type document map[string]any

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Errorf("invalid request schema: %w", err))
	}

	return s
}

// decodeDocument reads a JSON object. An empty body is treated as an empty object,
// null members are dropped and top-level strings are trimmed.
func decodeDocument(body []byte) (document, error) {
	doc := make(document)
	if len(bytes.TrimSpace(body)) < 1 {
		return doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Message: MessageInvalidBody, Details: []string{err.Error()}}
	}

	if doc == nil {
		doc = make(document)
	}

	maps.DeleteFunc(doc, func(_ string, v any) bool {
		return v == nil
	})

	for k, v := range doc {
		if s, ok := v.(string); ok {
			doc[k] = strings.TrimSpace(s)
		}
	}

	return doc, nil
}

// validate checks doc against schema. Missing or empty required members take
// precedence over any other violation.
func validate(schema *gojsonschema.Schema, doc document) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(doc)))
	if err != nil {
		return &ValidationError{Message: MessageInvalidBody, Details: []string{err.Error()}}
	}

	if result.Valid() {
		return nil
	}

	var missing, invalid []string
	for _, re := range result.Errors() {
		switch re.Type() {
		case "required":
			missing = append(missing, fmt.Sprintf("%v is required", re.Details()["property"]))

		case "string_gte":
			missing = append(missing, re.Field()+" is required")

		default:
			invalid = append(invalid, re.Field()+": "+re.Description())
		}
	}

	slices.Sort(missing)
	slices.Sort(invalid)

	if len(missing) > 0 {
		return &ValidationError{Message: MessageMissingFields, Details: missing}
	}

	return &ValidationError{Message: MessageInvalidFields, Details: invalid}
}

func (doc document) string(key string) string {
	v, _ := doc[key].(string)
	return v
}
