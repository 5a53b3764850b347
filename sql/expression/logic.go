package expression

import (
	"fmt"

	"github.com/src-d/go-unnest/sql"
)

// And is the boolean conjunction of two expressions.
type And struct {
	BinaryExpression
}

// NewAnd creates a new And expression.
func NewAnd(left, right sql.Expression) *And {
	return &And{BinaryExpression{Left: left, Right: right}}
}

// TransformUp implements the Expression interface.
func (a *And) TransformUp(f sql.TransformExprFunc) sql.Expression {
	left := a.Left.TransformUp(f)
	right := a.Right.TransformUp(f)
	return f(NewAnd(left, right))
}

func (a *And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

// JoinAnd folds the given expressions into a single left-deep conjunction.
// It returns nil if no expressions are given.
func JoinAnd(exprs ...sql.Expression) sql.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		result := NewAnd(exprs[0], exprs[1])
		for _, e := range exprs[2:] {
			result = NewAnd(result, e)
		}
		return result
	}
}

// SplitConjunction breaks an expression into its top-level conjuncts.
func SplitConjunction(expr sql.Expression) []sql.Expression {
	and, ok := expr.(*And)
	if !ok {
		return []sql.Expression{expr}
	}

	return append(
		SplitConjunction(and.Left),
		SplitConjunction(and.Right)...,
	)
}
