package definition

import "errors"

// ErrUnknownWizard is returned when a store does not hold the requested id.
var ErrUnknownWizard = errors.New("definition: unknown wizard")
