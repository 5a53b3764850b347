package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/expression"
	"github.com/src-d/go-unnest/sql/plan"
)

func TestValidateNodeIDs(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	valid := correlatedPlan()
	node, err := validateNodeIDs(ctx, nil, valid)
	require.NoError(err)
	require.Equal(valid, node)

	invalid := plan.NewJoin(0,
		plan.NewTable(1, "r", "x"),
		plan.NewTable(1, "s", "y"),
		expression.True(),
	)
	_, err = validateNodeIDs(ctx, nil, invalid)
	require.Error(err)
	require.True(ErrDuplicateNodeID.Is(err))
}

func TestValidateNoDependentJoins(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	independent := plan.NewJoin(2,
		plan.NewTable(0, "r", "x"),
		plan.NewTable(1, "s", "y"),
		expression.True(),
	)
	node, err := validateNoDependentJoins(ctx, nil, independent)
	require.NoError(err)
	require.Equal(independent, node)

	_, err = validateNoDependentJoins(ctx, nil, correlatedPlan())
	require.Error(err)
	require.True(ErrResidualDependentJoin.Is(err))
}

func TestValidateColumnSupply(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	supplied := plan.NewFilter(1, expression.NewGreaterThan(
		colRef("s", "y"),
		expression.NewLiteral("1"),
	), plan.NewTable(0, "s", "y", "z"))
	node, err := validateColumnSupply(ctx, nil, supplied)
	require.NoError(err)
	require.Equal(supplied, node)

	dangling := plan.NewFilter(1, expression.NewEquals(
		colRef("s", "y"),
		colRef("r", "y"),
	), plan.NewTable(0, "s", "y", "z"))
	_, err = validateColumnSupply(ctx, nil, dangling)
	require.Error(err)
	require.True(ErrColumnNotSupplied.Is(err))
	require.Contains(err.Error(), "maybe you mean s.y?")
}

func TestValidateColumnSupplyThroughSubtree(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	// The join condition references a column produced deep inside the right
	// subtree, below a projection that also produces new columns. Columns
	// produced anywhere below the node count as supplied.
	s := plan.NewTable(1, "s", "y", "z")
	project := plan.NewProject(3, []plan.ProjectedColumn{{
		Column: sql.NewColumn("q", "v"),
		Expr:   expression.NewSum(colRef("s", "z")),
	}}, s)

	join := plan.NewJoin(2,
		plan.NewTable(0, "r", "x", "y"),
		project,
		expression.NewEquals(colRef("r", "y"), colRef("s", "y")),
	)

	node, err := validateColumnSupply(ctx, nil, join)
	require.NoError(err)
	require.Equal(join, node)
}
