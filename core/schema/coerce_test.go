package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	now := time.Now()

	t.Run("nil coerces to nil for every kind", func(t *testing.T) {
		for kind := range knownKinds {
			v, ok := Coerce(kind, nil)
			assert.True(t, ok)
			assert.Nil(t, v)
		}
	})

	t.Run("numeric widths collapse to float64", func(t *testing.T) {
		for _, input := range []any{int(7), int8(7), int16(7), int32(7), int64(7), float32(7), float64(7)} {
			v, ok := Coerce(KindNumeric, input)
			assert.True(t, ok)
			assert.Equal(t, float64(7), v)
		}
	})

	t.Run("temporal kinds pass time through", func(t *testing.T) {
		for _, kind := range []FieldKind{KindDate, KindDateTime} {
			v, ok := Coerce(kind, now)
			assert.True(t, ok)
			assert.Equal(t, now, v)
		}
	})

	t.Run("kind mismatches are rejected", func(t *testing.T) {
		_, ok := Coerce(KindBoolean, "yes")
		assert.False(t, ok)
		_, ok = Coerce(KindDateTime, "2024-01-01")
		assert.False(t, ok)
		_, ok = Coerce(KindText, 42)
		assert.False(t, ok)
	})
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  FieldKind
		ok    bool
	}{
		{"bool", true, KindBoolean, true},
		{"string", "x", KindText, true},
		{"int", 5, KindNumeric, true},
		{"float", 5.5, KindNumeric, true},
		{"time", time.Now(), KindDateTime, true},
		{"nil", nil, "", false},
		{"struct", struct{}{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := InferKind(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	v, ok := ToFloat64("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = ToFloat64("not a number")
	assert.False(t, ok)

	_, ok = ToFloat64(struct{}{})
	assert.False(t, ok)
}
