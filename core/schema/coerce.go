package schema

import (
	"strconv"
	"time"
)

// Coerce normalizes a raw value into the canonical Go representation of a
// field kind: bool for boolean, float64 for numeric, time.Time for temporal
// kinds, string for identifier and text. The per-kind rule lives in a lookup
// table so the comparator, groupBy and pluck all share one coercion path.
// A nil value coerces to nil for every kind. The boolean result is false when
// the value's dynamic type cannot represent the kind.
func Coerce(kind FieldKind, v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	fn, ok := coercions[kind]
	if !ok {
		return nil, false
	}
	return fn(v)
}

var coercions = map[FieldKind]func(any) (any, bool){
	KindBoolean: func(v any) (any, bool) {
		b, ok := v.(bool)
		return b, ok
	},
	KindNumeric: func(v any) (any, bool) {
		f, ok := ToFloat64(v)
		return f, ok
	},
	KindDate:       coerceTime,
	KindDateTime:   coerceTime,
	KindIdentifier: coerceString,
	KindText:       coerceString,
}

func coerceTime(v any) (any, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

func coerceString(v any) (any, bool) {
	s, ok := v.(string)
	return s, ok
}

// InferKind guesses the field kind from a value's dynamic type. It backs
// prototype matching, where values carry no declared kind. The boolean result
// is false for nil and for types outside the supported primitives.
func InferKind(v any) (FieldKind, bool) {
	switch v.(type) {
	case nil:
		return "", false
	case bool:
		return KindBoolean, true
	case time.Time:
		return KindDateTime, true
	case string:
		return KindText, true
	case int, int8, int16, int32, int64, float32, float64:
		return KindNumeric, true
	default:
		return "", false
	}
}

// ToFloat64 converts a value of any supported numeric type to a float64. It
// returns the converted value and whether the conversion succeeded.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
