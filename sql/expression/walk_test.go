package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/src-d/go-unnest/sql"
)

func TestWalk(t *testing.T) {
	require := require.New(t)

	lit1 := NewLiteral("1")
	lit2 := NewLiteral("2")
	col := NewColumnRef(sql.NewColumn("t", "a"))
	eq := NewEquals(col, lit1)
	and := NewAnd(eq, lit2)

	var visited []sql.Expression
	Inspect(and, func(e sql.Expression) bool {
		visited = append(visited, e)
		return true
	})

	require.Equal(
		[]sql.Expression{and, eq, col, nil, lit1, nil, nil, lit2, nil, nil},
		visited,
	)

	visited = nil
	Inspect(and, func(e sql.Expression) bool {
		visited = append(visited, e)
		_, ok := e.(*Equals)
		return !ok
	})

	require.Equal(
		[]sql.Expression{and, eq, lit2, nil, nil},
		visited,
	)
}

func TestReferencedColumns(t *testing.T) {
	require := require.New(t)

	expr := NewAnd(
		NewEquals(
			NewColumnRef(sql.NewColumn("s", "y")),
			NewColumnRef(sql.NewColumn("r", "y")),
		),
		NewGreaterThan(
			NewSum(NewColumnRef(sql.NewColumn("s", "z"))),
			NewLiteral("0"),
		),
	)

	require.Equal(
		sql.NewColumnSet(
			sql.NewColumn("r", "y"),
			sql.NewColumn("s", "y"),
			sql.NewColumn("s", "z"),
		),
		ReferencedColumns(expr),
	)
}
