package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"nutririsk/assessment"
)

const recordSchemaURL = "schema://assessment-record.json"

// recordValidator checks request bodies against assessment.JSONSchema before
// they are decoded into a Record.
type recordValidator struct {
	schema *jsonschema.Schema
}

func newRecordValidator() (*recordValidator, error) {
	// the compiler wants a plain decoded JSON value
	defBytes, err := json.Marshal(assessment.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &recordValidator{schema: compiled}, nil
}

// Decode validates raw JSON and decodes it into a Record. Every failure
// wraps assessment.ErrInvalidInput.
func (v *recordValidator) Decode(raw []byte) (assessment.Record, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return assessment.Record{}, fmt.Errorf("%w: malformed JSON: %v", assessment.ErrInvalidInput, err)
	}
	if err := v.schema.Validate(parsed); err != nil {
		return assessment.Record{}, fmt.Errorf("%w: %v", assessment.ErrInvalidInput, err)
	}

	var record assessment.Record
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&record); err != nil {
		if errors.Is(err, assessment.ErrInvalidInput) {
			return assessment.Record{}, err
		}
		return assessment.Record{}, fmt.Errorf("%w: %v", assessment.ErrInvalidInput, err)
	}
	return record, nil
}
