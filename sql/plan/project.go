package plan

import (
	"fmt"
	"strings"

	"github.com/src-d/go-unnest/sql"
)

// ProjectedColumn is a named output column computed from an expression.
type ProjectedColumn struct {
	// Column under which the computed value is produced.
	Column sql.Column
	// Expr computes the value.
	Expr sql.Expression
}

func (p ProjectedColumn) String() string {
	return fmt.Sprintf("%s: %s", p.Column, p.Expr)
}

// Project extends its input with computed columns. The input columns are
// passed through, so the schema is the input schema plus the projected
// columns. Projections are kept ordered so plans print and compare
// deterministically.
type Project struct {
	UnaryNode
	id          sql.NodeID
	Projections []ProjectedColumn
}

// NewProject creates a new Project node.
func NewProject(id sql.NodeID, projections []ProjectedColumn, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{Child: child},
		id:          id,
		Projections: projections,
	}
}

// ID implements the Node interface.
func (p *Project) ID() sql.NodeID {
	return p.id
}

// Schema implements the Node interface.
func (p *Project) Schema() sql.Schema {
	schema := append(sql.Schema{}, p.Child.Schema()...)
	for _, proj := range p.Projections {
		if !schema.Contains(proj.Column) {
			schema = append(schema, proj.Column)
		}
	}
	return schema
}

// WithChildren implements the Node interface.
func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, 1, len(children))
	}
	return NewProject(p.id, p.Projections, children[0]), nil
}

// Expressions implements the Expressioner interface.
func (p *Project) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, len(p.Projections))
	for i, proj := range p.Projections {
		exprs[i] = proj.Expr
	}
	return exprs
}

// WithExpressions implements the Expressioner interface.
func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrInvalidExpressionNumber.New(p, len(p.Projections), len(exprs))
	}
	projections := make([]ProjectedColumn, len(p.Projections))
	for i, proj := range p.Projections {
		projections[i] = ProjectedColumn{Column: proj.Column, Expr: exprs[i]}
	}
	return NewProject(p.id, projections, p.Child), nil
}

func (p *Project) String() string {
	parts := make([]string, len(p.Projections))
	for i, proj := range p.Projections {
		parts[i] = proj.String()
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Project(%s)", strings.Join(parts, ", "))
	_ = pr.WriteChildren(p.Child.String())
	return pr.String()
}
