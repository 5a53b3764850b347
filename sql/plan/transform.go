package plan

import "github.com/src-d/go-unnest/sql"

// TransformUp applies a transformation function to the given tree from the
// bottom up. Node ids are preserved across the rebuild, since WithChildren
// keeps the id of the node it copies.
func TransformUp(node sql.Node, f sql.TransformNodeFunc) (sql.Node, error) {
	children := node.Children()
	if len(children) == 0 {
		return f(node)
	}

	newChildren := make([]sql.Node, len(children))
	for i, child := range children {
		child, err := TransformUp(child, f)
		if err != nil {
			return nil, err
		}
		newChildren[i] = child
	}

	node, err := node.WithChildren(newChildren...)
	if err != nil {
		return nil, err
	}

	return f(node)
}

// TransformExpressionsUp applies a transformation function to all
// expressions on the given tree from the bottom up.
func TransformExpressionsUp(node sql.Node, f sql.TransformExprFunc) (sql.Node, error) {
	return TransformUp(node, func(n sql.Node) (sql.Node, error) {
		e, ok := n.(sql.Expressioner)
		if !ok {
			return n, nil
		}

		exprs := e.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		for i, expr := range exprs {
			newExprs[i] = expr.TransformUp(f)
		}
		return e.WithExpressions(newExprs...)
	})
}
