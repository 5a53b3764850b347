package expression

import (
	"fmt"

	"github.com/src-d/go-unnest/sql"
)

// Comparison is an expression that compares an expression against another.
type Comparison struct {
	BinaryExpression
}

// NewComparison creates a new comparison between two expressions.
func NewComparison(left, right sql.Expression) Comparison {
	return Comparison{BinaryExpression{Left: left, Right: right}}
}

// Equals is a comparison that checks an expression is equal to another.
// Equalities between two column references also register the columns as
// equivalent for correlation resolution.
type Equals struct {
	Comparison
}

// NewEquals returns a new Equals expression.
func NewEquals(left, right sql.Expression) *Equals {
	return &Equals{NewComparison(left, right)}
}

// TransformUp implements the Expression interface.
func (e *Equals) TransformUp(f sql.TransformExprFunc) sql.Expression {
	left := e.Left.TransformUp(f)
	right := e.Right.TransformUp(f)
	return f(NewEquals(left, right))
}

func (e *Equals) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

// GreaterThan is a comparison that checks an expression is greater than
// another.
type GreaterThan struct {
	Comparison
}

// NewGreaterThan returns a new GreaterThan expression.
func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{NewComparison(left, right)}
}

// TransformUp implements the Expression interface.
func (e *GreaterThan) TransformUp(f sql.TransformExprFunc) sql.Expression {
	left := e.Left.TransformUp(f)
	right := e.Right.TransformUp(f)
	return f(NewGreaterThan(left, right))
}

func (e *GreaterThan) String() string {
	return fmt.Sprintf("%s > %s", e.Left, e.Right)
}
