package view

import (
	"errors"
	"testing"
	"time"

	"github.com/asaidimu/go-recordview/core/predicate"
	"github.com/asaidimu/go-recordview/core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_GroupBy(t *testing.T) {
	foo1 := account("Foo", 1000)
	bar := account("Bar", 5000)
	foo2 := account("Foo", 200)

	c := Of(foo1, bar, foo2)
	g, err := c.GroupBy(fieldName)
	require.NoError(t, err)

	t.Run("first-seen key order", func(t *testing.T) {
		assert.Equal(t, []any{"Foo", "Bar"}, g.Keys())
		assert.Equal(t, 2, g.Len())
	})

	t.Run("records keep original relative order within a group", func(t *testing.T) {
		foos, ok := g.Group("Foo")
		require.True(t, ok)
		require.Len(t, foos, 2)
		assert.Same(t, foo1, foos[0])
		assert.Same(t, foo2, foos[1])
	})

	t.Run("completeness: groups union back to the view", func(t *testing.T) {
		total := 0
		seen := make(map[*schema.Record]int)
		for _, group := range g.Groups() {
			total += len(group.Records)
			for _, r := range group.Records {
				seen[r]++
			}
		}
		assert.Equal(t, c.Count(), total)
		for _, r := range c.AsList() {
			assert.Equal(t, 1, seen[r], "every record appears in exactly one group")
		}
	})

	t.Run("absent key", func(t *testing.T) {
		_, ok := g.Group("Baz")
		assert.False(t, ok)
	})
}

func TestCollection_GroupBy_NullKey(t *testing.T) {
	withRev := account("Foo", 1000)
	noRev := account("Bar", nil)

	c := Of(withRev, noRev)
	g, err := c.GroupBy(fieldRevenue)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	nullGroup, ok := g.Group(nil)
	require.True(t, ok, "a null field value is a valid group key")
	require.Len(t, nullGroup, 1)
	assert.Same(t, noRev, nullGroup[0])
}

func TestCollection_GroupBy_KeyEqualityByKind(t *testing.T) {
	t.Run("numeric widths share a bucket", func(t *testing.T) {
		c := Of(account("A", int64(100)), account("B", float64(100)), account("C", 200))
		g, err := c.GroupBy(fieldRevenue)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())

		bucket, ok := g.Group(100)
		require.True(t, ok)
		assert.Len(t, bucket, 2)
	})

	t.Run("temporal keys compare by instant", func(t *testing.T) {
		utc := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		shifted := utc.In(time.FixedZone("plus2", 2*3600))
		closed := schema.Field("ClosedAt", schema.KindDateTime)

		c := Of(
			schema.NewRecord("deals").Set("ClosedAt", utc),
			schema.NewRecord("deals").Set("ClosedAt", shifted),
		)
		g, err := c.GroupBy(closed)
		require.NoError(t, err)
		assert.Equal(t, 1, g.Len())
	})
}

func TestCollection_GroupBy_Errors(t *testing.T) {
	t.Run("unloaded field is fatal", func(t *testing.T) {
		c := Of(schema.NewRecord("accounts").Set("Name", "Foo"))
		_, err := c.GroupBy(fieldRevenue)
		assert.True(t, errors.Is(err, schema.ErrFieldNotLoaded))
	})

	t.Run("uncoercible key value is fatal", func(t *testing.T) {
		c := Of(schema.NewRecord("accounts").Set("Name", "Foo").Set("Revenue", "not-a-number-at-all"))
		_, err := c.GroupBy(fieldRevenue)
		assert.True(t, errors.Is(err, predicate.ErrUnsupportedComparison))
	})
}
