package formdata

import "errors"

var (
	// ErrUnsupportedValue is returned for values that are not string, number,
	// bool or nil.
	ErrUnsupportedValue = errors.New("formdata: unsupported value type")
	// ErrEmptyField is returned when a blank field name is supplied.
	ErrEmptyField = errors.New("formdata: field name is required")
	// ErrDuplicateField is returned when two seed keys name the same field
	// after trimming.
	ErrDuplicateField = errors.New("formdata: duplicate field name")
)
