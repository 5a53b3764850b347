package plan

import (
	"strings"

	"github.com/src-d/go-unnest/sql"
)

// GroupBy groups the rows of its input by key columns and computes
// aggregates over each group. It is an opaque column boundary: it produces
// exactly its keys plus its aggregate columns, nothing from the input leaks
// through.
type GroupBy struct {
	UnaryNode
	id         sql.NodeID
	Keys       []sql.Column
	Aggregates []ProjectedColumn
}

// NewGroupBy creates a new GroupBy node.
func NewGroupBy(id sql.NodeID, keys []sql.Column, aggregates []ProjectedColumn, child sql.Node) *GroupBy {
	return &GroupBy{
		UnaryNode:  UnaryNode{Child: child},
		id:         id,
		Keys:       keys,
		Aggregates: aggregates,
	}
}

// ID implements the Node interface.
func (g *GroupBy) ID() sql.NodeID {
	return g.id
}

// Schema implements the Node interface.
func (g *GroupBy) Schema() sql.Schema {
	schema := make(sql.Schema, 0, len(g.Keys)+len(g.Aggregates))
	schema = append(schema, g.Keys...)
	for _, agg := range g.Aggregates {
		schema = append(schema, agg.Column)
	}
	return schema
}

// WithChildren implements the Node interface.
func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, 1, len(children))
	}
	return NewGroupBy(g.id, g.Keys, g.Aggregates, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (g *GroupBy) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, len(g.Aggregates))
	for i, agg := range g.Aggregates {
		exprs[i] = agg.Expr
	}
	return exprs
}

// WithExpressions implements the Expressioner interface.
func (g *GroupBy) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(g.Aggregates) {
		return nil, sql.ErrInvalidExpressionNumber.New(g, len(g.Aggregates), len(exprs))
	}
	aggregates := make([]ProjectedColumn, len(g.Aggregates))
	for i, agg := range g.Aggregates {
		aggregates[i] = ProjectedColumn{Column: agg.Column, Expr: exprs[i]}
	}
	return NewGroupBy(g.id, g.Keys, aggregates, g.Child), nil
}

func (g *GroupBy) String() string {
	keys := make([]string, len(g.Keys))
	for i, key := range g.Keys {
		keys[i] = key.String()
	}
	aggs := make([]string, len(g.Aggregates))
	for i, agg := range g.Aggregates {
		aggs[i] = agg.String()
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("GroupBy(keys: [%s], aggregates: [%s])",
		strings.Join(keys, ", "), strings.Join(aggs, ", "))
	_ = pr.WriteChildren(g.Child.String())
	return pr.String()
}
