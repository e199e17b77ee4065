package wizard

import "errors"

var (
	// ErrUnknownStep is returned for a step index the wizard does not declare.
	ErrUnknownStep = errors.New("wizard: unknown step")
	// ErrSuperseded signals that a newer validation for the same step started
	// before this one finished; its result was not committed.
	ErrSuperseded = errors.New("wizard: validation superseded")
	// ErrNotReady is returned by Submit while some step is unvalidated or
	// invalid.
	ErrNotReady = errors.New("wizard: not ready to submit")
)
