package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnString(t *testing.T) {
	require := require.New(t)
	require.Equal("customers.id", NewColumn("customers", "id").String())
}

func TestSchemaContains(t *testing.T) {
	require := require.New(t)

	schema := Schema{
		NewColumn("t", "a"),
		NewColumn("t", "b"),
	}

	require.True(schema.Contains(NewColumn("t", "a")))
	require.False(schema.Contains(NewColumn("t", "c")))
	require.False(schema.Contains(NewColumn("u", "a")))
}

func TestColumnSet(t *testing.T) {
	require := require.New(t)

	set := NewColumnSet(NewColumn("t", "a"))
	require.True(set.Contains(NewColumn("t", "a")))
	require.False(set.Contains(NewColumn("t", "b")))

	set.Add(NewColumn("t", "b"))
	require.True(set.Contains(NewColumn("t", "b")))

	other := NewColumnSet(NewColumn("t", "b"), NewColumn("t", "c"))
	set.Union(other)
	require.Len(set, 3)

	intersection := set.Intersect(other)
	require.Len(intersection, 2)
	require.True(intersection.Contains(NewColumn("t", "b")))
	require.True(intersection.Contains(NewColumn("t", "c")))
	require.False(intersection.Contains(NewColumn("t", "a")))

	cp := set.Copy()
	cp.Add(NewColumn("t", "d"))
	require.Len(set, 3)
	require.Len(cp, 4)

	set.Clear()
	require.Len(set, 0)
}

func TestColumnSetSorted(t *testing.T) {
	require := require.New(t)

	set := NewColumnSet(
		NewColumn("u", "a"),
		NewColumn("t", "b"),
		NewColumn("t", "a"),
	)

	require.Equal([]Column{
		NewColumn("t", "a"),
		NewColumn("t", "b"),
		NewColumn("u", "a"),
	}, set.Sorted())

	require.Equal("{t.a, t.b, u.a}", set.String())
}
