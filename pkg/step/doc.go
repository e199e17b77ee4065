// Package step validates the slice of form data owned by one wizard step.
//
// A Schema is built once with NewSchema from an ordered list of FieldSpec
// entries. Validate checks every required field for presence, runs the field
// validators on every non-blank value and finally hands the declared,
// non-blank values to an optional SchemaValidator collaborator. All failures
// are collected; nothing short-circuits, so every invalid field reports its own
// message in the returned Result. Empty optional fields never reach format
// validators, which makes a step made only of optional fields valid by
// construction when nothing was entered.
//
// Construction problems (duplicate or blank field names, required names that
// were never declared, non-positive indexes) are returned as
// *ConfigurationError. Collaborator errors and panics are recovered and turned
// into a generic step-level message under FormErrorKey.
package step
