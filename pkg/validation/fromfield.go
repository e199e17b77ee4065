package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// FromField builds the validators declared by field. Select fields with
// options implicitly restrict values to those options and numeric field types
// implicitly require numbers. Unknown rule kinds, unknown formats, bad
// thresholds and uncompilable patterns are reported as ErrInvalidRule so they
// surface at construction time.
func FromField(field model.Field) ([]FieldValidator, error) {
	var out []FieldValidator

	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		out = append(out, Numeric())
	case model.FieldTypeSelect:
		if len(field.Options) > 0 {
			values := make([]string, 0, len(field.Options))
			for _, option := range field.Options {
				values = append(values, option.Value)
			}
			out = append(out, OneOf(values...))
		}
	}

	for idx, rule := range field.Validations {
		fn, err := fromRule(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q rule %d (%s): %v", ErrInvalidRule, field.Name, idx, rule.Kind, err)
		}
		out = append(out, WithMessage(fn, rule.Params["message"]))
	}
	return out, nil
}

func fromRule(rule model.ValidationRule) (FieldValidator, error) {
	switch rule.Kind {
	case model.ValidationRuleMin:
		val, err := parseFloat(rule.Params["value"])
		if err != nil {
			return nil, err
		}
		return Min(val), nil
	case model.ValidationRuleMax:
		val, err := parseFloat(rule.Params["value"])
		if err != nil {
			return nil, err
		}
		return Max(val), nil
	case model.ValidationRuleMinLength:
		val, err := parseInt(rule.Params["value"])
		if err != nil {
			return nil, err
		}
		return MinLength(val), nil
	case model.ValidationRuleMaxLength:
		val, err := parseInt(rule.Params["value"])
		if err != nil {
			return nil, err
		}
		return MaxLength(val), nil
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, fmt.Errorf("pattern is empty")
		}
		return Pattern(expr)
	case model.ValidationRuleEnum:
		raw := rule.Params["values"]
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("enum values are empty")
		}
		return OneOf(strings.Split(raw, ",")...), nil
	case model.ValidationRuleNoMarkup:
		return NoMarkup(), nil
	case model.ValidationRuleFormat:
		return formatValidator(rule.Params["format"])
	default:
		return nil, fmt.Errorf("unknown rule kind")
	}
}

func formatValidator(format string) (FieldValidator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "email":
		return Email(), nil
	case "url", "uri":
		return URL(), nil
	case "phone", "tel":
		return Phone(), nil
	case "numeric", "number":
		return Numeric(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	return strconv.ParseFloat(raw, 64)
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if val < 0 {
		return 0, fmt.Errorf("value must not be negative")
	}
	return val, nil
}
