package validation

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	phonePattern = regexp.MustCompile(`^\+?[0-9 ()./-]+$`)
)

// MinLength rejects values shorter than n runes.
func MinLength(n int) FieldValidator {
	return func(value any) error {
		if utf8.RuneCountInString(stringValue(value)) < n {
			return violation("minLength", fmt.Sprintf("must be at least %d characters", n), map[string]any{"value": n})
		}
		return nil
	}
}

// MaxLength rejects values longer than n runes.
func MaxLength(n int) FieldValidator {
	return func(value any) error {
		if utf8.RuneCountInString(stringValue(value)) > n {
			return violation("maxLength", fmt.Sprintf("must be at most %d characters", n), map[string]any{"value": n})
		}
		return nil
	}
}

// Pattern compiles expr and rejects values that do not match it.
func Pattern(expr string) (FieldValidator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validation: pattern %q: %w", expr, err)
	}
	return func(value any) error {
		if !re.MatchString(stringValue(value)) {
			return violation("pattern", "has an invalid format", map[string]any{"pattern": expr})
		}
		return nil
	}, nil
}

// MustPattern is Pattern for expressions known at compile time.
func MustPattern(expr string) FieldValidator {
	fn, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return fn
}

// Numeric accepts numbers and strings that parse as numbers.
func Numeric() FieldValidator {
	return func(value any) error {
		if _, ok := number(value); !ok {
			return violation("numeric", "must be a number", nil)
		}
		return nil
	}
}

// Min rejects numbers below limit.
func Min(limit float64) FieldValidator {
	return func(value any) error {
		n, ok := number(value)
		if !ok {
			return violation("numeric", "must be a number", nil)
		}
		if n < limit {
			return violation("min", fmt.Sprintf("must be at least %s", formatFloat(limit)), map[string]any{"value": limit})
		}
		return nil
	}
}

// Max rejects numbers above limit.
func Max(limit float64) FieldValidator {
	return func(value any) error {
		n, ok := number(value)
		if !ok {
			return violation("numeric", "must be a number", nil)
		}
		if n > limit {
			return violation("max", fmt.Sprintf("must be at most %s", formatFloat(limit)), map[string]any{"value": limit})
		}
		return nil
	}
}

// OneOf restricts values to a fixed set of options. Comparison is exact after
// trimming.
func OneOf(options ...string) FieldValidator {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[strings.TrimSpace(option)] = struct{}{}
	}
	return func(value any) error {
		if _, ok := allowed[stringValue(value)]; !ok {
			return violation("enum", "is not a valid option", map[string]any{"options": options})
		}
		return nil
	}
}

// Email rejects values that are not e-mail addresses.
func Email() FieldValidator {
	return func(value any) error {
		if !govalidator.IsEmail(stringValue(value)) {
			return violation("email", "must be a valid email address", nil)
		}
		return nil
	}
}

// URL accepts absolute http(s) URLs with a host.
func URL() FieldValidator {
	return func(value any) error {
		raw := stringValue(value)
		if !govalidator.IsRequestURL(raw) {
			return violation("url", "must be a valid URL", nil)
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return violation("url", "must be a valid URL", nil)
		}
		return nil
	}
}

// Phone accepts digits with common separators and at least six digits.
func Phone() FieldValidator {
	return func(value any) error {
		raw := stringValue(value)
		digits := 0
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if !phonePattern.MatchString(raw) || digits < 6 || digits > 15 {
			return violation("phone", "must be a valid phone number", nil)
		}
		return nil
	}
}

// NoMarkup rejects values containing HTML markup. Plain text with entities
// such as "&" or "<" on its own is accepted.
func NoMarkup() FieldValidator {
	return func(value any) error {
		raw, ok := value.(string)
		if !ok {
			return nil
		}
		if html.UnescapeString(strictPolicy.Sanitize(raw)) != raw {
			return violation("noMarkup", "must not contain markup", nil)
		}
		return nil
	}
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if !govalidator.IsFloat(trimmed) {
			return 0, false
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
