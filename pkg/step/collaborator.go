package step

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/validation"
)

// SchemaValidator is an external declarative validator consulted after the
// field rules. It receives a plain record of the step's declared, non-blank
// values and returns either no issues or one issue per failing location.
// Implementations may block; they should honour ctx.
type SchemaValidator interface {
	ValidateRecord(ctx context.Context, record map[string]any) ([]validation.Issue, error)
}

// SchemaValidatorFunc adapts a function to SchemaValidator.
type SchemaValidatorFunc func(ctx context.Context, record map[string]any) ([]validation.Issue, error)

// ValidateRecord implements SchemaValidator.
func (fn SchemaValidatorFunc) ValidateRecord(ctx context.Context, record map[string]any) ([]validation.Issue, error) {
	return fn(ctx, record)
}
