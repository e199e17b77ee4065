package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

var _ step.SchemaValidator = (*Validator)(nil)

// Validator checks step records against a single component schema.
type Validator struct {
	name   string
	schema *openapi3.Schema
}

// NewValidator wraps schema as a step collaborator.
func NewValidator(name string, schema *openapi3.Schema) *Validator {
	return &Validator{name: name, schema: schema}
}

// Name returns the component name.
func (v *Validator) Name() string { return v.name }

// ValidateRecord implements step.SchemaValidator. Schema violations become
// issues; anything else is returned as an error.
func (v *Validator) ValidateRecord(ctx context.Context, record map[string]any) ([]validation.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v == nil || v.schema == nil {
		return nil, errors.New("openapi: validator has no schema")
	}

	value, err := jsonValue(record)
	if err != nil {
		return nil, err
	}

	err = v.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}
	var issues []validation.Issue
	if err := collectIssues(err, &issues); err != nil {
		return nil, fmt.Errorf("openapi: component %q: %w", v.name, err)
	}
	return issues, nil
}

// jsonValue round-trips the record so numbers reach kin-openapi as float64,
// the representation it expects from decoded JSON.
func jsonValue(record map[string]any) (any, error) {
	if record == nil {
		record = map[string]any{}
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode record: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("openapi: decode record: %w", err)
	}
	return out, nil
}

func collectIssues(err error, out *[]validation.Issue) error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, item := range multi {
			if err := collectIssues(item, out); err != nil {
				return err
			}
		}
		return nil
	}

	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return err
	}
	pointer := schemaErr.JSONPointer()
	field := ""
	if len(pointer) > 0 {
		field = pointer[0]
	}
	*out = append(*out, validation.Issue{
		Path:    "/" + strings.Join(pointer, "/"),
		Field:   field,
		Message: reason(schemaErr),
	})
	return nil
}

func reason(err *openapi3.SchemaError) string {
	if msg := strings.TrimSpace(err.Reason); msg != "" {
		return msg
	}
	return strings.TrimSpace(err.Error())
}
