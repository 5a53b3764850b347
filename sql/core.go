package sql

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Expression is a node of an algebraic expression tree used inside
// predicates, projections and aggregates.
type Expression interface {
	fmt.Stringer
	// Children returns the immediate children of the expression, if any.
	Children() []Expression
	// TransformUp applies the given transformation function to the
	// expression tree from the bottom up and returns the rewritten
	// expression.
	TransformUp(TransformExprFunc) Expression
}

// Node is a node of a logical query plan. Every node owns its children
// outright: a plan is a strict tree, children are never shared.
type Node interface {
	fmt.Stringer
	// ID returns the identifier of the node, unique within its plan tree
	// and stable for the duration of a rewrite.
	ID() NodeID
	// Schema returns the columns produced by this node.
	Schema() Schema
	// Children returns the children of the node, if any.
	Children() []Node
	// WithChildren returns a copy of the node with the children replaced.
	// The node id is preserved.
	WithChildren(...Node) (Node, error)
}

// Expressioner is a node that holds expressions of its own, not counting
// the ones held by its children.
type Expressioner interface {
	// Expressions returns the expressions owned by the node.
	Expressions() []Expression
	// WithExpressions returns a copy of the node with the expressions
	// replaced, given in the same order as Expressions returns them.
	WithExpressions(...Expression) (Node, error)
}

// TransformNodeFunc is a function that given a node will return that node
// as is or transformed, along with an error, if any.
type TransformNodeFunc func(Node) (Node, error)

// TransformExprFunc is a function that given an expression will return that
// expression as is or transformed.
type TransformExprFunc func(Expression) Expression

var (
	// ErrInvalidChildrenNumber is returned when the WithChildren method of a
	// node is called with an invalid number of children.
	ErrInvalidChildrenNumber = errors.NewKind("node %T requires %d children, but got %d")
	// ErrInvalidExpressionNumber is returned when the WithExpressions method
	// of a node is called with an invalid number of expressions.
	ErrInvalidExpressionNumber = errors.NewKind("node %T requires %d expressions, but got %d")
)
