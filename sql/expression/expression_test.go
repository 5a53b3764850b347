package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/src-d/go-unnest/sql"
)

func TestLiteralBool(t *testing.T) {
	require := require.New(t)

	b, err := True().Bool()
	require.NoError(err)
	require.True(b)

	b, err = NewLiteral("false").Bool()
	require.NoError(err)
	require.False(b)

	_, err = NewLiteral("banana").Bool()
	require.Error(err)
}

func TestTransformUpSubstitutesColumns(t *testing.T) {
	require := require.New(t)

	outer := sql.NewColumn("r", "y")
	local := sql.NewColumn("s", "y")

	expr := NewAnd(
		NewEquals(
			NewColumnRef(sql.NewColumn("s", "z")),
			NewColumnRef(outer),
		),
		NewGreaterThan(
			NewSum(NewColumnRef(outer)),
			NewLiteral("10"),
		),
	)

	result := expr.TransformUp(func(e sql.Expression) sql.Expression {
		if ref, ok := e.(*ColumnRef); ok && ref.Column() == outer {
			return NewColumnRef(local)
		}
		return e
	})

	require.Equal(
		NewAnd(
			NewEquals(
				NewColumnRef(sql.NewColumn("s", "z")),
				NewColumnRef(local),
			),
			NewGreaterThan(
				NewSum(NewColumnRef(local)),
				NewLiteral("10"),
			),
		),
		result,
	)

	// The original expression is left untouched.
	require.Equal("(s.z = r.y AND SUM(r.y) > 10)", expr.String())
}

func TestExpressionString(t *testing.T) {
	testCases := []struct {
		expr     sql.Expression
		expected string
	}{
		{NewColumnRef(sql.NewColumn("t", "a")), "t.a"},
		{NewLiteral("42"), "42"},
		{True(), "true"},
		{NewEquals(
			NewColumnRef(sql.NewColumn("t", "a")),
			NewColumnRef(sql.NewColumn("t", "b")),
		), "t.a = t.b"},
		{NewGreaterThan(
			NewColumnRef(sql.NewColumn("t", "a")),
			NewLiteral("1"),
		), "t.a > 1"},
		{NewAnd(
			NewColumnRef(sql.NewColumn("t", "a")),
			NewColumnRef(sql.NewColumn("t", "b")),
		), "(t.a AND t.b)"},
		{NewCount(), "COUNT(*)"},
		{NewSum(NewColumnRef(sql.NewColumn("t", "a"))), "SUM(t.a)"},
	}

	for _, tt := range testCases {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.expr.String())
		})
	}
}
