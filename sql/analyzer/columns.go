package analyzer

import (
	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/expression"
	"github.com/src-d/go-unnest/sql/plan"
)

// accessedColumns returns the columns referenced by the node's own
// expressions, not the ones merely passed through from its children.
// GroupBy keys count as accesses even though they are not expressions.
func accessedColumns(node sql.Node) sql.ColumnSet {
	cols := sql.NewColumnSet()

	if g, ok := node.(*plan.GroupBy); ok {
		for _, key := range g.Keys {
			cols.Add(key)
		}
	}

	if e, ok := node.(sql.Expressioner); ok {
		for _, expr := range e.Expressions() {
			cols.Union(expression.ReferencedColumns(expr))
		}
	}

	return cols
}

// producedColumns is the set form of the node's schema.
func producedColumns(node sql.Node) sql.ColumnSet {
	return sql.NewColumnSet(node.Schema()...)
}

// freeVariables returns the columns referenced somewhere in the subtree
// that no node of the subtree produces; they must be supplied by an
// enclosing correlated scope.
func freeVariables(node sql.Node) sql.ColumnSet {
	free := sql.NewColumnSet()

	produced := sql.NewColumnSet()
	for _, child := range node.Children() {
		produced.Union(producedColumns(child))
	}

	for col := range accessedColumns(node) {
		if !produced.Contains(col) {
			free.Add(col)
		}
	}

	for _, child := range node.Children() {
		free.Union(freeVariables(child))
	}

	return free
}

func columnsContain(cols []sql.Column, col sql.Column) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

// findNode looks up a node by id within a subtree.
func findNode(root sql.Node, id sql.NodeID) (sql.Node, bool) {
	var found sql.Node
	plan.Inspect(root, func(n sql.Node) bool {
		if n == nil || found != nil {
			return false
		}
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
