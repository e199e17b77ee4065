package step

import (
	"errors"
	"fmt"
)

// ErrCollaboratorFailure wraps errors and panics raised by a SchemaValidator.
// It is only logged; callers see the generic message in Result.Errors.
var ErrCollaboratorFailure = errors.New("step: schema collaborator failed")

// ConfigurationError reports a schema that cannot be built. It is fatal for
// the wizard definition and is never produced while validating data.
type ConfigurationError struct {
	Step   int
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("step: configuration error in step %d field %q: %s", e.Step, e.Field, e.Reason)
	}
	return fmt.Sprintf("step: configuration error in step %d: %s", e.Step, e.Reason)
}

// IsConfigurationError reports whether err wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
