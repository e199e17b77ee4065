package validation

import (
	"strconv"
	"strings"
)

// Issue is a single failure reported by an external schema validator. Path is
// whatever location format the collaborator uses (JSON pointer, dotted or
// bracketed); Field is filled when the collaborator already knows it.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// IssueMapping splits collaborator issues into per-field messages and
// step-level messages that match no declared field.
type IssueMapping struct {
	Fields map[string]string
	Step   []string
}

// MapIssues normalises issues onto the supplied field names. The first message
// per field wins; messages are trimmed and empty ones dropped. Paths that do not
// resolve to a known field become step-level messages so nothing is lost.
func MapIssues(issues []Issue, fields []string) IssueMapping {
	mapping := IssueMapping{}
	if len(issues) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if name := strings.TrimSpace(field); name != "" {
			known[name] = struct{}{}
		}
	}

	for _, issue := range issues {
		message := strings.TrimSpace(issue.Message)
		if message == "" {
			continue
		}
		field := strings.TrimSpace(issue.Field)
		if _, ok := known[field]; !ok {
			field = resolveField(issue.Path, known)
		}
		if field == "" {
			mapping.Step = appendUnique(mapping.Step, message)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		if _, exists := mapping.Fields[field]; !exists {
			mapping.Fields[field] = message
		}
	}
	return mapping
}

// FieldFromPointer converts a JSON pointer that may traverse schema keywords
// (properties, items, $defs, combinators) into a dotted data path.
func FieldFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescapePointer(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescapePointer(parts[idx+1]))
				idx++
			}
		case "oneOf", "anyOf", "allOf":
			if idx+1 < len(parts) && isNumeric(parts[idx+1]) {
				idx++
			}
		case "$defs":
			if idx+1 < len(parts) {
				idx++
			}
		case "":
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func resolveField(raw string, known map[string]struct{}) string {
	trimmed := strings.TrimSpace(raw)
	if isStepLevelKey(trimmed) {
		return ""
	}
	if strings.Contains(trimmed, "properties/") {
		trimmed = FieldFromPointer(trimmed)
	}

	segments := parsePathSegments(trimmed)
	for _, variant := range [][]string{segments, dropWrapperSegments(segments)} {
		candidate := stripNumericSegments(variant)
		for end := len(candidate); end > 0; end-- {
			path := strings.Join(candidate[:end], ".")
			if _, ok := known[path]; ok {
				return path
			}
		}
	}
	return ""
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, unescapePointer(segment))
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isStepLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
