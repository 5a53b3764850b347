package analyzer

import (
	"github.com/src-d/go-unnest/sql"
)

// populateDependencies discovers the correlation edges of the plan and
// fills in the accessing sets of its dependent joins. The rewrite rule
// relies on those sets to tell a simple correlated filter apart from a
// correlation that needs a domain relation.
func populateDependencies(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	span, _ := ctx.Span("populate_dependencies")
	defer span.Finish()

	tree, err := NewQueryTree(n)
	if err != nil {
		return nil, err
	}

	deps := tree.IdentifyDependentJoins()
	a.Log("identified %d correlation edges", len(deps))

	tree.ApplyDependencies(deps)
	return n, nil
}
