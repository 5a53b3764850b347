package analyzer

import (
	"github.com/src-d/go-unnest/internal/similartext"
	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/plan"
)

// validateNodeIDs rejects plans where two nodes share an id. The analyzer
// reasons about lineage by id, so duplicates would corrupt every later
// step.
func validateNodeIDs(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	span, _ := ctx.Span("validate_node_ids")
	defer span.Finish()

	if _, err := NewQueryTree(n); err != nil {
		return nil, err
	}
	return n, nil
}

// validateNoDependentJoins guarantees the output contract of the rewrite:
// no dependent join may survive decorrelation.
func validateNoDependentJoins(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	span, _ := ctx.Span("validate_no_dependent_joins")
	defer span.Finish()

	var err error
	plan.Inspect(n, func(node sql.Node) bool {
		if node == nil || err != nil {
			return false
		}
		if join, ok := node.(*plan.Join); ok && join.Dependent {
			err = ErrResidualDependentJoin.New(join.ID())
			return false
		}
		return true
	})

	if err != nil {
		return nil, err
	}
	return n, nil
}

// validateColumnSupply checks that every column a node references is
// produced somewhere below it. After decorrelation this must hold for the
// whole plan; a violation means an outer reference leaked through.
func validateColumnSupply(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	span, _ := ctx.Span("validate_column_supply")
	defer span.Finish()

	var err error
	plan.Inspect(n, func(node sql.Node) bool {
		if node == nil || err != nil {
			return false
		}

		supplied := sql.NewColumnSet()
		for _, child := range node.Children() {
			supplied.Union(subtreeColumns(child))
		}

		for _, col := range accessedColumns(node).Sorted() {
			if !supplied.Contains(col) {
				var names []string
				for _, c := range supplied.Sorted() {
					names = append(names, c.String())
				}
				similar := similartext.Find(names, col.String())
				err = ErrColumnNotSupplied.New(col, node.ID(), similar)
				return false
			}
		}
		return true
	})

	if err != nil {
		return nil, err
	}
	return n, nil
}

// subtreeColumns is every column produced anywhere within the subtree, not
// only the ones surviving to its root schema. Filters may legitimately
// reference columns a sibling projection later narrows away.
func subtreeColumns(node sql.Node) sql.ColumnSet {
	cols := producedColumns(node)
	for _, child := range node.Children() {
		cols.Union(subtreeColumns(child))
	}
	return cols
}
