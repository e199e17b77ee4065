package step

import "sort"

// FormErrorKey holds step-level messages that belong to no single field.
const FormErrorKey = "_step"

// FieldErrors maps field names to the message of their first failure.
type FieldErrors map[string]string

// Result is the outcome of validating one step. It is replaced wholesale on
// every validation and never merged.
type Result struct {
	StepIndex int         `json:"stepIndex"`
	Valid     bool        `json:"valid"`
	Errors    FieldErrors `json:"errors,omitempty"`
}

func newResult(index int, errs FieldErrors) Result {
	if len(errs) == 0 {
		return Result{StepIndex: index, Valid: true}
	}
	return Result{StepIndex: index, Valid: false, Errors: errs}
}

// Error returns the message recorded for field, or "".
func (r Result) Error(field string) string {
	if r.Errors == nil {
		return ""
	}
	return r.Errors[field]
}

// Fields lists the failing field names in sorted order, FormErrorKey included.
func (r Result) Fields() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for field := range r.Errors {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both results carry the same index, validity and
// messages.
func (r Result) Equal(other Result) bool {
	if r.StepIndex != other.StepIndex || r.Valid != other.Valid || len(r.Errors) != len(other.Errors) {
		return false
	}
	for field, message := range r.Errors {
		if other.Errors[field] != message {
			return false
		}
	}
	return true
}
