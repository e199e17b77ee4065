package step

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/formdata"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// FieldSpec declares one field of a step. Label defaults to Name in messages.
type FieldSpec struct {
	Name       string
	Label      string
	Required   bool
	Validators []validation.FieldValidator
}

// Option configures a Schema during NewSchema.
type Option func(*Schema)

// WithName assigns a human readable step name used in logs.
func WithName(name string) Option {
	return func(s *Schema) {
		s.name = strings.TrimSpace(name)
	}
}

// WithRequired marks already declared fields as required.
func WithRequired(names ...string) Option {
	return func(s *Schema) {
		s.pendingRequired = append(s.pendingRequired, names...)
	}
}

// WithCollaborator attaches an external schema validator to the step.
func WithCollaborator(v SchemaValidator) Option {
	return func(s *Schema) {
		s.collaborator = v
	}
}

// WithMessages overrides the message renderer.
func WithMessages(m validation.Messages) Option {
	return func(s *Schema) {
		s.messages = m
	}
}

// WithLogger sets the logger used to report collaborator failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Schema) {
		s.logger = logger
	}
}

type fieldEntry struct {
	name       string
	label      string
	required   bool
	validators []validation.FieldValidator
}

// Schema is the immutable validation plan of a single step.
type Schema struct {
	index           int
	name            string
	fields          []fieldEntry
	byName          map[string]int
	pendingRequired []string
	collaborator    SchemaValidator
	messages        validation.Messages
	logger          zerolog.Logger
}

// NewSchema builds the schema for the step at index (1-based).
func NewSchema(index int, fields []FieldSpec, opts ...Option) (*Schema, error) {
	if index < 1 {
		return nil, &ConfigurationError{Step: index, Reason: "step index must be 1 or greater"}
	}

	s := &Schema{
		index:  index,
		byName: make(map[string]int, len(fields)),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	for pos, spec := range fields {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, &ConfigurationError{Step: index, Reason: fmt.Sprintf("field at position %d has no name", pos)}
		}
		if _, exists := s.byName[name]; exists {
			return nil, &ConfigurationError{Step: index, Field: name, Reason: "duplicate field name"}
		}
		label := strings.TrimSpace(spec.Label)
		if label == "" {
			label = name
		}
		validators := make([]validation.FieldValidator, 0, len(spec.Validators))
		for _, fn := range spec.Validators {
			if fn != nil {
				validators = append(validators, fn)
			}
		}
		s.byName[name] = len(s.fields)
		s.fields = append(s.fields, fieldEntry{
			name:       name,
			label:      label,
			required:   spec.Required,
			validators: validators,
		})
	}

	for _, raw := range s.pendingRequired {
		name := strings.TrimSpace(raw)
		pos, ok := s.byName[name]
		if !ok {
			return nil, &ConfigurationError{Step: index, Field: name, Reason: s.unknownFieldReason(name)}
		}
		s.fields[pos].required = true
	}
	s.pendingRequired = nil

	return s, nil
}

// Index returns the 1-based step index.
func (s *Schema) Index() int { return s.index }

// Name returns the optional step name.
func (s *Schema) Name() string { return s.name }

// FieldNames lists declared fields in declaration order.
func (s *Schema) FieldNames() []string {
	out := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		out = append(out, field.name)
	}
	return out
}

// Required lists the required fields in declaration order.
func (s *Schema) Required() []string {
	var out []string
	for _, field := range s.fields {
		if field.required {
			out = append(out, field.name)
		}
	}
	return out
}

// Declares reports whether field belongs to this step.
func (s *Schema) Declares(field string) bool {
	_, ok := s.byName[field]
	return ok
}

// Validate checks data against the schema. The returned error is only ever
// the context error when ctx ends while a collaborator is running; every data
// problem is reported through the Result.
func (s *Schema) Validate(ctx context.Context, data formdata.FormData) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	errs := make(FieldErrors)
	for _, field := range s.fields {
		value, _ := data.Get(field.name)
		if formdata.IsBlank(value) {
			if field.required {
				errs[field.name] = s.messages.Required(field.label)
			}
			continue
		}
		for _, fn := range field.validators {
			if err := fn(value); err != nil {
				errs[field.name] = s.messages.Field(field.label, err)
				break
			}
		}
	}

	if s.collaborator != nil {
		issues, err := s.runCollaborator(ctx, s.record(data))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if err != nil {
			s.logger.Warn().Err(err).Int("step", s.index).Str("name", s.name).Msg("schema collaborator failed")
			errs[FormErrorKey] = s.messages.CollaboratorFailure()
		} else {
			mapped := validation.MapIssues(issues, s.FieldNames())
			for field, message := range mapped.Fields {
				if _, exists := errs[field]; !exists {
					errs[field] = message
				}
			}
			if len(mapped.Step) > 0 {
				errs[FormErrorKey] = strings.Join(mapped.Step, "; ")
			}
		}
	}

	return newResult(s.index, errs), nil
}

func (s *Schema) runCollaborator(ctx context.Context, record map[string]any) (issues []validation.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			issues = nil
			err = fmt.Errorf("%w: panic: %v", ErrCollaboratorFailure, r)
		}
	}()
	issues, err = s.collaborator.ValidateRecord(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaboratorFailure, err)
	}
	return issues, nil
}

// record holds the declared, non-blank values. Blank optional values are left
// out so collaborators apply the same skip rule as the field validators.
func (s *Schema) record(data formdata.FormData) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, field := range s.fields {
		value, ok := data.Get(field.name)
		if !ok || formdata.IsBlank(value) {
			continue
		}
		if str, isString := value.(string); isString {
			value = strings.TrimSpace(str)
		}
		out[field.name] = value
	}
	return out
}

func (s *Schema) unknownFieldReason(name string) string {
	reason := "required field is not declared"
	best, bestDistance := "", -1
	for _, field := range s.fields {
		distance := levenshtein.ComputeDistance(name, field.name)
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = field.name, distance
		}
	}
	if best != "" && bestDistance <= 2 {
		reason += fmt.Sprintf(", did you mean %q?", best)
	}
	return reason
}
