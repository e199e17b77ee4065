package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/step"
)

// Components indexes the component schemas of a loaded document.
type Components struct {
	schemas map[string]*openapi3.Schema
}

// LoadComponents parses and validates an OpenAPI document (JSON or YAML) and
// indexes its component schemas.
func LoadComponents(ctx context.Context, data []byte) (*Components, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, ErrNoComponents
	}

	out := &Components{schemas: make(map[string]*openapi3.Schema, len(doc.Components.Schemas))}
	for name, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("openapi: component %q has no schema", name)
		}
		out.schemas[name] = ref.Value
	}
	return out, nil
}

// LoadComponentsFile reads path from disk and calls LoadComponents.
func LoadComponentsFile(ctx context.Context, path string) (*Components, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return LoadComponents(ctx, data)
}

// LoadComponentsFS reads name from fsys and calls LoadComponents.
func LoadComponentsFS(ctx context.Context, fsys fs.FS, name string) (*Components, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return LoadComponents(ctx, data)
}

// Names lists the component schema names in sorted order.
func (c *Components) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validator returns a collaborator for the named component schema.
func (c *Components) Validator(name string) (*Validator, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	schema, ok := c.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return NewValidator(name, schema), nil
}

// Validators returns a collaborator per component, keyed by name, in the shape
// the definition builder expects.
func (c *Components) Validators() map[string]step.SchemaValidator {
	if c == nil {
		return nil
	}
	out := make(map[string]step.SchemaValidator, len(c.schemas))
	for name, schema := range c.schemas {
		out[name] = NewValidator(name, schema)
	}
	return out
}
