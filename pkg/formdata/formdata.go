// Package formdata holds the partial record collected by a wizard. FormData is
// copy-on-write: every update yields a new value and the receiver's map is
// never touched, so observers can diff snapshots by identity.
package formdata

import (
	"fmt"
	"sort"
	"strings"
)

// FormData maps field names to string, numeric, boolean or nil values. The
// zero value is an empty record.
type FormData struct {
	values map[string]any
}

// New seeds a record from the supplied map. Values are normalised and
// unsupported types are rejected, as are keys that trim to the same name.
func New(seed map[string]any) (FormData, error) {
	if len(seed) == 0 {
		return FormData{}, nil
	}
	values := make(map[string]any, len(seed))
	for key, value := range seed {
		name := strings.TrimSpace(key)
		if name == "" {
			return FormData{}, ErrEmptyField
		}
		if _, exists := values[name]; exists {
			return FormData{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		normalized, err := Normalize(value)
		if err != nil {
			return FormData{}, fmt.Errorf("formdata: field %q: %w", name, err)
		}
		values[name] = normalized
	}
	return FormData{values: values}, nil
}

// With returns a copy of d with field set to value. d itself is unchanged.
func (d FormData) With(field string, value any) (FormData, error) {
	name := strings.TrimSpace(field)
	if name == "" {
		return d, ErrEmptyField
	}
	normalized, err := Normalize(value)
	if err != nil {
		return d, fmt.Errorf("formdata: field %q: %w", name, err)
	}

	values := make(map[string]any, len(d.values)+1)
	for key, existing := range d.values {
		values[key] = existing
	}
	values[name] = normalized
	return FormData{values: values}, nil
}

// Get returns the value stored for field.
func (d FormData) Get(field string) (any, bool) {
	if d.values == nil {
		return nil, false
	}
	value, ok := d.values[field]
	return value, ok
}

// String returns the trimmed textual form of field, or "" when absent.
func (d FormData) String(field string) string {
	value, ok := d.Get(field)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(value)
}

// Has reports whether field holds a non-blank value.
func (d FormData) Has(field string) bool {
	value, ok := d.Get(field)
	return ok && !IsBlank(value)
}

// Len reports the number of stored fields, blank ones included.
func (d FormData) Len() int {
	return len(d.values)
}

// Keys returns the stored field names sorted for deterministic iteration.
func (d FormData) Keys() []string {
	if len(d.values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.values))
	for key := range d.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Subset returns a record restricted to the supplied fields. Missing fields
// stay missing.
func (d FormData) Subset(fields ...string) FormData {
	if len(d.values) == 0 || len(fields) == 0 {
		return FormData{}
	}
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := d.values[field]; ok {
			values[field] = value
		}
	}
	return FormData{values: values}
}

// Map returns a fresh copy of the underlying values.
func (d FormData) Map() map[string]any {
	out := make(map[string]any, len(d.values))
	for key, value := range d.values {
		out[key] = value
	}
	return out
}

// Equal reports whether both records hold the same fields and values.
func (d FormData) Equal(other FormData) bool {
	if len(d.values) != len(other.values) {
		return false
	}
	for key, value := range d.values {
		otherValue, ok := other.values[key]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}

// Changed lists the fields whose values differ between prev and next.
func Changed(prev, next FormData) []string {
	seen := make(map[string]struct{}, len(prev.values)+len(next.values))
	var out []string
	for key, value := range next.values {
		seen[key] = struct{}{}
		if old, ok := prev.values[key]; !ok || old != value {
			out = append(out, key)
		}
	}
	for key := range prev.values {
		if _, ok := seen[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
