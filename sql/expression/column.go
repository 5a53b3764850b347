package expression

import "github.com/src-d/go-unnest/sql"

// ColumnRef is a reference to a column produced somewhere else in the plan,
// either by a descendant of the node holding the expression or by an
// enclosing correlated scope.
type ColumnRef struct {
	col sql.Column
}

// NewColumnRef creates a reference to the given column.
func NewColumnRef(col sql.Column) *ColumnRef {
	return &ColumnRef{col: col}
}

// Column returns the referenced column.
func (c *ColumnRef) Column() sql.Column {
	return c.col
}

// Children implements the Expression interface.
func (*ColumnRef) Children() []sql.Expression {
	return nil
}

// TransformUp implements the Expression interface.
func (c *ColumnRef) TransformUp(f sql.TransformExprFunc) sql.Expression {
	return f(NewColumnRef(c.col))
}

func (c *ColumnRef) String() string {
	return c.col.String()
}
