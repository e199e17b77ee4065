package validation

import (
	"fmt"
	"strings"
)

// FieldValidator checks a single non-blank field value. A nil return means the
// value is acceptable; otherwise the error text is shown to the user. Callers
// decide whether a field is required, validators only judge format.
type FieldValidator func(value any) error

// Violation is the error returned by the builtin validators. Rule matches the
// model.ValidationRule kind so messages can be localised by key.
type Violation struct {
	Rule    string
	Message string
	Params  map[string]any

	// Verbatim marks messages supplied by the caller that must not be
	// prefixed with the field label.
	Verbatim bool
}

func (v *Violation) Error() string {
	if v == nil {
		return ""
	}
	return v.Message
}

func violation(rule, message string, params map[string]any) *Violation {
	return &Violation{Rule: rule, Message: message, Params: params}
}

// WithMessage wraps fn so that any failure reports message instead of the
// validator's default text.
func WithMessage(fn FieldValidator, message string) FieldValidator {
	message = strings.TrimSpace(message)
	if fn == nil || message == "" {
		return fn
	}
	return func(value any) error {
		err := fn(value)
		if err == nil {
			return nil
		}
		rule := "custom"
		var params map[string]any
		if v, ok := err.(*Violation); ok {
			rule, params = v.Rule, v.Params
		}
		return &Violation{Rule: rule, Message: message, Params: params, Verbatim: true}
	}
}

// Chain runs validators in order and returns the first failure.
func Chain(validators ...FieldValidator) FieldValidator {
	return func(value any) error {
		for _, fn := range validators {
			if fn == nil {
				continue
			}
			if err := fn(value); err != nil {
				return err
			}
		}
		return nil
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
