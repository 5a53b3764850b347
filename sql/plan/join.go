package plan

import (
	"sort"

	"github.com/src-d/go-unnest/sql"
)

// Join combines its two inputs under a condition. A dependent join is one
// whose right input references columns that only the left input produces;
// it is the plan representation of a correlated subquery. Accessing names
// the right-subtree nodes whose only reason for depending on the left input
// is this join; it is populated during correlation discovery and only while
// the join is dependent.
type Join struct {
	BinaryNode
	id   sql.NodeID
	Cond sql.Expression
	// Dependent is set by the plan builder when a correlated subquery is
	// lowered into this join. Decorrelation clears it.
	Dependent bool
	// Accessing is the set of right-subtree node ids that access columns
	// supplied by the left input through this join.
	Accessing map[sql.NodeID]struct{}
}

// NewJoin creates a new independent Join node.
func NewJoin(id sql.NodeID, left, right sql.Node, cond sql.Expression) *Join {
	return &Join{
		BinaryNode: BinaryNode{left: left, right: right},
		id:         id,
		Cond:       cond,
	}
}

// NewDependentJoin creates a new Join node marked dependent, the lowered
// form of a correlated subquery.
func NewDependentJoin(id sql.NodeID, left, right sql.Node, cond sql.Expression) *Join {
	join := NewJoin(id, left, right, cond)
	join.Dependent = true
	return join
}

// ID implements the Node interface.
func (j *Join) ID() sql.NodeID {
	return j.id
}

// Schema implements the Node interface.
func (j *Join) Schema() sql.Schema {
	return append(append(sql.Schema{}, j.left.Schema()...), j.right.Schema()...)
}

// WithChildren implements the Node interface.
func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, 2, len(children))
	}
	nj := NewJoin(j.id, children[0], children[1], j.Cond)
	nj.Dependent = j.Dependent
	nj.Accessing = j.Accessing
	return nj, nil
}

// Expressions implements the Expressioner interface.
func (j *Join) Expressions() []sql.Expression {
	return []sql.Expression{j.Cond}
}

// WithExpressions implements the Expressioner interface.
func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidExpressionNumber.New(j, 1, len(exprs))
	}
	nj := NewJoin(j.id, j.left, j.right, exprs[0])
	nj.Dependent = j.Dependent
	nj.Accessing = j.Accessing
	return nj, nil
}

// AddAccessing records a right-subtree node that depends on the left input
// through this join.
func (j *Join) AddAccessing(id sql.NodeID) {
	if j.Accessing == nil {
		j.Accessing = make(map[sql.NodeID]struct{})
	}
	j.Accessing[id] = struct{}{}
}

// AccessingIDs returns the accessing set in ascending order.
func (j *Join) AccessingIDs() []sql.NodeID {
	ids := make([]sql.NodeID, 0, len(j.Accessing))
	for id := range j.Accessing {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] < ids[k] })
	return ids
}

func (j *Join) String() string {
	name := "Join"
	if j.Dependent {
		name = "DependentJoin"
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("%s(%s)", name, j.Cond)
	_ = pr.WriteChildren(j.left.String(), j.right.String())
	return pr.String()
}
