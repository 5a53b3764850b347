package unnest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	unnest "github.com/src-d/go-unnest"
	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/analyzer"
	"github.com/src-d/go-unnest/sql/expression"
	"github.com/src-d/go-unnest/sql/plan"
)

func correlatedPlan() sql.Node {
	r := plan.NewTable(0, "r", "x", "y")
	s := plan.NewTable(1, "s", "y", "z")
	return plan.NewDependentJoin(2, r,
		plan.NewFilter(3, expression.NewEquals(
			expression.NewColumnRef(sql.NewColumn("s", "y")),
			expression.NewColumnRef(sql.NewColumn("r", "y")),
		), s),
		expression.True(),
	)
}

func TestDecorrelate(t *testing.T) {
	require := require.New(t)

	result, err := unnest.Decorrelate(sql.NewEmptyContext(), correlatedPlan())
	require.NoError(err)

	expected := plan.NewJoin(2,
		plan.NewTable(0, "r", "x", "y"),
		plan.NewTable(1, "s", "y", "z"),
		expression.NewEquals(
			expression.NewColumnRef(sql.NewColumn("s", "y")),
			expression.NewColumnRef(sql.NewColumn("r", "y")),
		),
	)
	require.Equal(expected, result)
}

func TestEngineDecorrelateAll(t *testing.T) {
	require := require.New(t)

	e := unnest.NewDefault()
	results, err := e.DecorrelateAll(sql.NewEmptyContext(), []sql.Node{
		correlatedPlan(),
		correlatedPlan(),
	})
	require.NoError(err)
	require.Len(results, 2)
	require.Equal(results[0], results[1])
}

func TestEngineCustomAnalyzer(t *testing.T) {
	require := require.New(t)

	var called bool
	a := analyzer.NewBuilder().
		AddPostAnalyzeRule("mark_called", func(ctx *sql.Context, a *analyzer.Analyzer, n sql.Node) (sql.Node, error) {
			called = true
			return n, nil
		}).
		Build()

	_, err := unnest.New(a).Decorrelate(sql.NewEmptyContext(), correlatedPlan())
	require.NoError(err)
	require.True(called)
}
