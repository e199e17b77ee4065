package formdata

import (
	"math"
	"strings"
)

// Normalize widens numeric values to float64 or int64 and rejects anything
// that is not a string, number, bool or nil. Unsigned values above
// math.MaxInt64 are rejected rather than wrapped.
func Normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, float64, int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, ErrUnsupportedValue
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, ErrUnsupportedValue
		}
		return int64(v), nil
	case float32:
		return float64(v), nil
	default:
		return nil, ErrUnsupportedValue
	}
}

// IsBlank reports whether value counts as absent: nil or a whitespace-only
// string. false and 0 are present values.
func IsBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}
