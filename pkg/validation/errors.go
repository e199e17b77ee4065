package validation

import "errors"

// ErrInvalidRule signals a declarative rule that cannot be turned into a
// validator.
var ErrInvalidRule = errors.New("validation: invalid rule")

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("validation: translator is not configured")

// ErrMissingTranslation is returned by Catalog when a locale or key is not
// present.
var ErrMissingTranslation = errors.New("validation: missing translation")
