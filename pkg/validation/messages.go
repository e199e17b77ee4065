package validation

import (
	"fmt"
	"strings"
)

// MessageCollaboratorFailure is shown when an external schema validator fails
// unexpectedly. The underlying error is logged, never displayed.
const MessageCollaboratorFailure = "This step could not be validated right now, please try again"

const (
	keyRequired            = "validation.required"
	keyCollaboratorFailure = "validation.collaboratorFailure"
)

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. err is ErrMissingTranslator when no Translator is configured.
type MissingTranslationHandler func(locale, key string, fallback string, err error) string

// Messages produces the user-facing texts for step validation. The zero value
// renders the English defaults.
type Messages struct {
	Translator Translator
	Locale     string
	OnMissing  MissingTranslationHandler
}

// Required renders the message for a missing required field.
func (m Messages) Required(label string) string {
	return m.translate(keyRequired, fmt.Sprintf("%s is required", label), label)
}

// CollaboratorFailure renders the generic message for a failed collaborator.
func (m Messages) CollaboratorFailure() string {
	return m.translate(keyCollaboratorFailure, MessageCollaboratorFailure)
}

// Field renders the message for a validator failure on label. Violations are
// translated by rule key ("validation.<rule>") with the label and rule params
// as arguments; custom rule messages and other errors are used verbatim.
func (m Messages) Field(label string, err error) string {
	if err == nil {
		return ""
	}
	v, ok := err.(*Violation)
	if !ok {
		return strings.TrimSpace(err.Error())
	}
	if v.Verbatim {
		return v.Message
	}
	fallback := v.Message
	if label != "" {
		fallback = label + " " + v.Message
	}
	return m.translate("validation."+v.Rule, fallback, label, v.Params)
}

func (m Messages) translate(key, fallback string, args ...any) string {
	if m.Translator == nil {
		if m.OnMissing != nil {
			return m.OnMissing(m.Locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := m.Translator.Translate(m.Locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if m.OnMissing != nil {
		return m.OnMissing(m.Locale, key, fallback, err)
	}
	return fallback
}
