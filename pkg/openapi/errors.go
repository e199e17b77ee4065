package openapi

import "errors"

var (
	// ErrUnknownSchema is returned when a component name is not defined.
	ErrUnknownSchema = errors.New("openapi: unknown component schema")
	// ErrNoComponents is returned for documents without component schemas.
	ErrNoComponents = errors.New("openapi: document defines no component schemas")
)
