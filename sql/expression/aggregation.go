package expression

import (
	"fmt"

	"github.com/src-d/go-unnest/sql"
)

// Count is an aggregation that counts the rows of each group.
type Count struct{}

// NewCount creates a new Count expression.
func NewCount() *Count {
	return new(Count)
}

// Children implements the Expression interface.
func (*Count) Children() []sql.Expression {
	return nil
}

// TransformUp implements the Expression interface.
func (*Count) TransformUp(f sql.TransformExprFunc) sql.Expression {
	return f(NewCount())
}

func (*Count) String() string {
	return "COUNT(*)"
}

// Sum is an aggregation that sums the value of its child expression over
// each group.
type Sum struct {
	UnaryExpression
}

// NewSum creates a new Sum expression.
func NewSum(child sql.Expression) *Sum {
	return &Sum{UnaryExpression{Child: child}}
}

// TransformUp implements the Expression interface.
func (s *Sum) TransformUp(f sql.TransformExprFunc) sql.Expression {
	return f(NewSum(s.Child.TransformUp(f)))
}

func (s *Sum) String() string {
	return fmt.Sprintf("SUM(%s)", s.Child)
}
