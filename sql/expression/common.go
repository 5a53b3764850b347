package expression

import "github.com/src-d/go-unnest/sql"

// UnaryExpression is an expression that has only one child.
type UnaryExpression struct {
	Child sql.Expression
}

// Children implements the Expression interface.
func (e *UnaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Child}
}

// BinaryExpression is an expression that has two children.
type BinaryExpression struct {
	Left  sql.Expression
	Right sql.Expression
}

// Children implements the Expression interface.
func (e *BinaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Left, e.Right}
}
