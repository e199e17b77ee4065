package wizard

// State is the lifecycle position of a single step.
type State string

const (
	StateUntouched  State = "untouched"
	StateValidating State = "validating"
	StateValid      State = "valid"
	StateInvalid    State = "invalid"
)
