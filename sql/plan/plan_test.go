package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/expression"
)

func TestTableSchema(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "customers", "id", "name")
	require.Equal(sql.Schema{
		sql.NewColumn("customers", "id"),
		sql.NewColumn("customers", "name"),
	}, table.Schema())

	_, err := table.WithChildren(NewTable(1, "orders"))
	require.Error(err)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))
}

func TestFilterSchema(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "t", "a", "b")
	filter := NewFilter(1, expression.NewGreaterThan(
		expression.NewColumnRef(sql.NewColumn("t", "a")),
		expression.NewLiteral("1"),
	), table)

	require.Equal(table.Schema(), filter.Schema())

	_, err := filter.WithChildren()
	require.Error(err)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))

	_, err = filter.WithExpressions()
	require.Error(err)
	require.True(sql.ErrInvalidExpressionNumber.Is(err))
}

func TestProjectSchema(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "t", "a", "b")
	project := NewProject(1, []ProjectedColumn{
		{
			Column: sql.NewColumn("t", "doubled"),
			Expr:   expression.NewSum(expression.NewColumnRef(sql.NewColumn("t", "a"))),
		},
		// Re-projecting an input column must not duplicate it.
		{
			Column: sql.NewColumn("t", "a"),
			Expr:   expression.NewColumnRef(sql.NewColumn("t", "a")),
		},
	}, table)

	require.Equal(sql.Schema{
		sql.NewColumn("t", "a"),
		sql.NewColumn("t", "b"),
		sql.NewColumn("t", "doubled"),
	}, project.Schema())
}

func TestGroupBySchema(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "t", "a", "b")
	groupBy := NewGroupBy(1,
		[]sql.Column{sql.NewColumn("t", "a")},
		[]ProjectedColumn{{
			Column: sql.NewColumn("q", "total"),
			Expr:   expression.NewSum(expression.NewColumnRef(sql.NewColumn("t", "b"))),
		}},
		table,
	)

	require.Equal(sql.Schema{
		sql.NewColumn("t", "a"),
		sql.NewColumn("q", "total"),
	}, groupBy.Schema())
}

func TestJoinSchema(t *testing.T) {
	require := require.New(t)

	left := NewTable(0, "r", "x")
	right := NewTable(1, "s", "y")
	join := NewJoin(2, left, right, expression.True())

	require.Equal(sql.Schema{
		sql.NewColumn("r", "x"),
		sql.NewColumn("s", "y"),
	}, join.Schema())
	require.False(join.Dependent)
}

func TestDependentJoinAccessing(t *testing.T) {
	require := require.New(t)

	join := NewDependentJoin(2,
		NewTable(0, "r", "x"),
		NewTable(1, "s", "y"),
		expression.True(),
	)
	require.True(join.Dependent)
	require.Empty(join.AccessingIDs())

	join.AddAccessing(7)
	join.AddAccessing(3)
	join.AddAccessing(7)
	require.Equal([]sql.NodeID{3, 7}, join.AccessingIDs())
}

func TestTransformUpPreservesIDs(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "t", "a")
	filter := NewFilter(1, expression.NewGreaterThan(
		expression.NewColumnRef(sql.NewColumn("t", "a")),
		expression.NewLiteral("1"),
	), table)
	join := NewJoin(2, filter, NewTable(3, "u", "b"), expression.True())

	result, err := TransformUp(join, func(n sql.Node) (sql.Node, error) {
		return n, nil
	})
	require.NoError(err)
	require.Equal(join, result)

	var ids []sql.NodeID
	Inspect(result, func(n sql.Node) bool {
		if n != nil {
			ids = append(ids, n.ID())
		}
		return true
	})
	require.Equal([]sql.NodeID{2, 1, 0, 3}, ids)
}

func TestTransformUpReplacesNodes(t *testing.T) {
	require := require.New(t)

	table := NewTable(0, "t", "a")
	filter := NewFilter(1, expression.True(), table)
	join := NewJoin(2, filter, NewTable(3, "u", "b"), expression.True())

	// Splice out the filter, keeping its input.
	result, err := TransformUp(join, func(n sql.Node) (sql.Node, error) {
		if f, ok := n.(*Filter); ok {
			return f.Child, nil
		}
		return n, nil
	})
	require.NoError(err)

	expected := NewJoin(2, table, NewTable(3, "u", "b"), expression.True())
	require.Equal(expected, result)
}

func TestNodeStrings(t *testing.T) {
	require := require.New(t)

	r := NewTable(0, "r", "x", "y")
	s := NewTable(1, "s", "y", "z")
	filter := NewFilter(3, expression.NewEquals(
		expression.NewColumnRef(sql.NewColumn("s", "y")),
		expression.NewColumnRef(sql.NewColumn("r", "y")),
	), s)
	join := NewDependentJoin(2, r, filter, expression.True())

	expected := `DependentJoin(true)
 ├─ Table(r)
 └─ Filter(s.y = r.y)
     └─ Table(s)
`
	require.Equal(expected, join.String())
}
