// Package model defines the declarative wizard model consumed by the
// definition builder and the prompt runner. A Wizard is an ordered list of
// Steps, each Step declares its Fields, and every Field carries canonical
// validation rules (min/max, minLength/maxLength, pattern, format, enum,
// noMarkup) with string parameters so definitions stay stable when serialised
// to JSON or YAML. Builders in pkg/definition turn these declarations into
// executable step schemas; nothing in this package validates values itself.
package model
