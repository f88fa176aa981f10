package predicate

import (
	"errors"
	"testing"
	"time"

	"github.com/asaidimu/go-recordview/core/schema"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_Equality(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		op     ComparisonOperator
		target any
		kind   schema.FieldKind
		want   bool
	}{
		{"equal text", "Foo", OperatorEq, "Foo", schema.KindText, true},
		{"unequal text", "Foo", OperatorEq, "Bar", schema.KindText, false},
		{"neq text", "Foo", OperatorNeq, "Bar", schema.KindText, true},
		{"numeric across widths", int64(1000), OperatorEq, 1000, schema.KindNumeric, true},
		{"null equals null", nil, OperatorEq, nil, schema.KindText, true},
		{"null against value", nil, OperatorEq, "Foo", schema.KindText, false},
		{"value against null via neq", "Foo", OperatorNeq, nil, schema.KindText, true},
		{"boolean", true, OperatorEq, true, schema.KindBoolean, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.value, tt.op, tt.target, tt.kind)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("temporal equality is by instant", func(t *testing.T) {
		utc := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		shifted := utc.In(time.FixedZone("plus2", 2*3600))
		got, err := Evaluate(utc, OperatorEq, shifted, schema.KindDateTime)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("uncoercible operand is an error, not false", func(t *testing.T) {
		_, err := Evaluate(struct{}{}, OperatorEq, "Foo", schema.KindText)
		assert.True(t, errors.Is(err, ErrUnsupportedComparison))
	})
}

func TestEvaluate_Ordering(t *testing.T) {
	t.Run("numeric", func(t *testing.T) {
		tests := []struct {
			op   ComparisonOperator
			want bool
		}{
			{OperatorLt, true},
			{OperatorLte, true},
			{OperatorGt, false},
			{OperatorGte, false},
		}
		for _, tt := range tests {
			got, err := Evaluate(1000, tt.op, 5000, schema.KindNumeric)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got, string(tt.op))
		}
	})

	t.Run("temporal", func(t *testing.T) {
		earlier := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		later := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		got, err := Evaluate(earlier, OperatorLt, later, schema.KindDate)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("text", func(t *testing.T) {
		got, err := Evaluate("Bar", OperatorLt, "Foo", schema.KindText)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("null operand orders as false", func(t *testing.T) {
		got, err := Evaluate(nil, OperatorLt, 10, schema.KindNumeric)
		assert.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("ordering an identifier is a usage error", func(t *testing.T) {
		_, err := Evaluate("a-id", OperatorLt, "b-id", schema.KindIdentifier)
		assert.True(t, errors.Is(err, ErrUnsupportedComparison))
	})

	t.Run("ordering a boolean is a usage error", func(t *testing.T) {
		_, err := Evaluate(true, OperatorGte, false, schema.KindBoolean)
		assert.True(t, errors.Is(err, ErrUnsupportedComparison))
	})
}

func TestEvaluate_Membership(t *testing.T) {
	t.Run("in matches by value equality", func(t *testing.T) {
		got, err := Evaluate("Foo", OperatorIn, []any{"Bar", "Foo"}, schema.KindText)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("nin inverts membership", func(t *testing.T) {
		got, err := Evaluate("Baz", OperatorNin, []any{"Bar", "Foo"}, schema.KindText)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("typed slices are accepted", func(t *testing.T) {
		got, err := Evaluate(int64(5), OperatorIn, []int{1, 3, 5}, schema.KindNumeric)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("null value is in no set", func(t *testing.T) {
		got, err := Evaluate(nil, OperatorIn, []any{"Foo"}, schema.KindText)
		assert.NoError(t, err)
		assert.False(t, got)

		got, err = Evaluate(nil, OperatorNin, []any{"Foo"}, schema.KindText)
		assert.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("unsupported element type is an error even for a null value", func(t *testing.T) {
		_, err := Evaluate(nil, OperatorIn, []any{struct{ X int }{1}}, schema.KindText)
		assert.True(t, errors.Is(err, ErrUnsupportedComparison))
	})

	t.Run("non-set target is an error", func(t *testing.T) {
		_, err := Evaluate("Foo", OperatorIn, "Foo", schema.KindText)
		assert.True(t, errors.Is(err, ErrUnsupportedComparison))
	})
}

func TestEvaluate_Exists(t *testing.T) {
	got, err := Evaluate("Foo", OperatorExists, nil, schema.KindText)
	assert.NoError(t, err)
	assert.True(t, got)

	got, err = Evaluate(nil, OperatorExists, nil, schema.KindText)
	assert.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluate_UnknownOperator(t *testing.T) {
	_, err := Evaluate("Foo", ComparisonOperator("like"), "F%", schema.KindText)
	assert.True(t, errors.Is(err, ErrUnsupportedComparison))
}

func TestComparisonOperator_Classification(t *testing.T) {
	assert.True(t, OperatorLt.IsOrdering())
	assert.False(t, OperatorEq.IsOrdering())
	assert.True(t, OperatorIn.IsMembership())
	assert.True(t, OperatorNin.IsMembership())
	assert.False(t, OperatorExists.IsMembership())
	assert.True(t, OperatorGte.IsSupported())
	assert.False(t, ComparisonOperator("like").IsSupported())
}
