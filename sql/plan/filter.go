package plan

import "github.com/src-d/go-unnest/sql"

// Filter skips the rows of its input that do not match its predicate. It
// produces the same columns as its input.
type Filter struct {
	UnaryNode
	id         sql.NodeID
	Expression sql.Expression
}

// NewFilter creates a new Filter node.
func NewFilter(id sql.NodeID, expression sql.Expression, child sql.Node) *Filter {
	return &Filter{
		UnaryNode:  UnaryNode{Child: child},
		id:         id,
		Expression: expression,
	}
}

// ID implements the Node interface.
func (f *Filter) ID() sql.NodeID {
	return f.id
}

// WithChildren implements the Node interface.
func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, 1, len(children))
	}
	return NewFilter(f.id, f.Expression, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (f *Filter) Expressions() []sql.Expression {
	return []sql.Expression{f.Expression}
}

// WithExpressions implements the Expressioner interface.
func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidExpressionNumber.New(f, 1, len(exprs))
	}
	return NewFilter(f.id, exprs[0], f.Child), nil
}

func (f *Filter) String() string {
	p := sql.NewTreePrinter()
	_ = p.WriteNode("Filter(%s)", f.Expression)
	_ = p.WriteChildren(f.Child.String())
	return p.String()
}
