package definition

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/step"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// BuildOptions configures how a wizard definition turns into step schemas.
type BuildOptions struct {
	// Collaborators resolves step schemaRef values, usually from
	// openapi.Components.Validators.
	Collaborators map[string]step.SchemaValidator
	Messages      validation.Messages
	Logger        zerolog.Logger
}

// Build converts the wizard definition into one schema per step, in step
// order. Unknown schema references and invalid validation rules surface as
// *step.ConfigurationError.
func Build(wizard model.Wizard, opts BuildOptions) ([]*step.Schema, error) {
	if len(wizard.Steps) == 0 {
		return nil, &step.ConfigurationError{Reason: fmt.Sprintf("wizard %q declares no steps", wizard.ID)}
	}

	schemas := make([]*step.Schema, 0, len(wizard.Steps))
	for _, st := range wizard.Steps {
		schema, err := buildStep(st, opts)
		if err != nil {
			return nil, fmt.Errorf("definition: wizard %q: %w", wizard.ID, err)
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

// Build resolves id in the store and builds its schemas.
func (s *Store) Build(id string, opts BuildOptions) ([]*step.Schema, error) {
	wizard, ok := s.Wizard(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWizard, id)
	}
	return Build(wizard, opts)
}

func buildStep(st model.Step, opts BuildOptions) (*step.Schema, error) {
	specs := make([]step.FieldSpec, 0, len(st.Fields))
	for _, field := range st.Fields {
		validators, err := validation.FromField(field)
		if err != nil {
			return nil, &step.ConfigurationError{Step: st.Index, Field: field.Name, Reason: err.Error()}
		}
		specs = append(specs, step.FieldSpec{
			Name:       field.Name,
			Label:      field.DisplayLabel(),
			Required:   field.Required,
			Validators: validators,
		})
	}

	schemaOpts := []step.Option{
		step.WithName(st.Name),
		step.WithMessages(opts.Messages),
		step.WithLogger(opts.Logger),
	}
	if st.SchemaRef != "" {
		collaborator, ok := opts.Collaborators[st.SchemaRef]
		if !ok || collaborator == nil {
			return nil, &step.ConfigurationError{
				Step:   st.Index,
				Reason: fmt.Sprintf("unknown schemaRef %q", st.SchemaRef),
			}
		}
		schemaOpts = append(schemaOpts, step.WithCollaborator(collaborator))
	}

	return step.NewSchema(st.Index, specs, schemaOpts...)
}
