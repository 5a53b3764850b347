package analyzer

import (
	"sort"

	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/plan"
)

// QueryTree indexes a plan tree for lineage reasoning: node lookup by id,
// parent lookup and column provenance. It is built in a single traversal
// and is never mutated incrementally; whenever the shape of the tree
// changes, the index is rebuilt from scratch.
type QueryTree struct {
	root      sql.Node
	nodes     map[sql.NodeID]sql.Node
	parents   map[sql.NodeID]sql.NodeID
	providers map[sql.Column]sql.NodeID
	maxID     sql.NodeID
}

// NewQueryTree indexes the given plan. It returns ErrDuplicateNodeID if two
// nodes of the plan carry the same id.
func NewQueryTree(root sql.Node) (*QueryTree, error) {
	t := &QueryTree{
		root:      root,
		nodes:     make(map[sql.NodeID]sql.Node),
		parents:   make(map[sql.NodeID]sql.NodeID),
		providers: make(map[sql.Column]sql.NodeID),
	}

	if err := t.index(root, nil); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *QueryTree) index(node, parent sql.Node) error {
	id := node.ID()
	if _, ok := t.nodes[id]; ok {
		return ErrDuplicateNodeID.New(id)
	}
	t.nodes[id] = node

	if parent != nil {
		t.parents[id] = parent.ID()
	}
	if id > t.maxID {
		t.maxID = id
	}

	t.collectProviders(node)

	for _, child := range node.Children() {
		if err := t.index(child, node); err != nil {
			return err
		}
	}
	return nil
}

// collectProviders records the columns this node introduces. The provider
// of a column is the first node encountered top-down that introduces it: a
// Table for base columns, a Project for computed columns, a GroupBy for its
// keys and aggregate outputs.
func (t *QueryTree) collectProviders(node sql.Node) {
	switch n := node.(type) {
	case *plan.Table:
		for _, col := range n.Schema() {
			t.setProvider(col, n.ID())
		}
	case *plan.Project:
		for _, proj := range n.Projections {
			t.setProvider(proj.Column, n.ID())
		}
	case *plan.GroupBy:
		for _, key := range n.Keys {
			t.setProvider(key, n.ID())
		}
		for _, agg := range n.Aggregates {
			t.setProvider(agg.Column, n.ID())
		}
	}
}

func (t *QueryTree) setProvider(col sql.Column, id sql.NodeID) {
	if _, ok := t.providers[col]; !ok {
		t.providers[col] = id
	}
}

// Root returns the indexed plan.
func (t *QueryTree) Root() sql.Node {
	return t.root
}

// Find returns the node with the given id.
func (t *QueryTree) Find(id sql.NodeID) (sql.Node, bool) {
	node, ok := t.nodes[id]
	return node, ok
}

// Parent returns the id of the parent of the given node. The root has no
// parent.
func (t *QueryTree) Parent(id sql.NodeID) (sql.NodeID, bool) {
	parent, ok := t.parents[id]
	return parent, ok
}

// Provider returns the id of the node producing the given column.
func (t *QueryTree) Provider(col sql.Column) (sql.NodeID, bool) {
	id, ok := t.providers[col]
	return id, ok
}

// MaxID returns the highest node id present in the tree. Fresh ids for
// synthesized nodes are allocated past it.
func (t *QueryTree) MaxID() sql.NodeID {
	return t.maxID
}

// LowestCommonAncestor returns the deepest node that is an ancestor of both
// ids. The ancestor relation is reflexive. It reports false only when the
// ids belong to disjoint trees, which cannot happen in a well-formed plan.
func (t *QueryTree) LowestCommonAncestor(a, b sql.NodeID) (sql.NodeID, bool) {
	ancestors := map[sql.NodeID]struct{}{a: {}}
	current := a
	for {
		parent, ok := t.parents[current]
		if !ok {
			break
		}
		ancestors[parent] = struct{}{}
		current = parent
	}

	current = b
	if _, ok := ancestors[current]; ok {
		return current, true
	}
	for {
		parent, ok := t.parents[current]
		if !ok {
			return 0, false
		}
		if _, ok := ancestors[parent]; ok {
			return parent, true
		}
		current = parent
	}
}

// IsDescendantOf reports whether the node descends from the given ancestor.
// A node is a descendant of itself.
func (t *QueryTree) IsDescendantOf(id, ancestor sql.NodeID) bool {
	if id == ancestor {
		return true
	}

	current := id
	for {
		parent, ok := t.parents[current]
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		current = parent
	}
}

// IsInLeftSubtree reports whether the node descends from the left child of
// the given join.
func (t *QueryTree) IsInLeftSubtree(id, joinID sql.NodeID) bool {
	node, ok := t.Find(joinID)
	if !ok {
		return false
	}
	join, ok := node.(*plan.Join)
	if !ok {
		return false
	}
	return t.IsDescendantOf(id, join.Left().ID())
}

// Dependency is a correlation edge: the node accessing depends on columns
// that reach it only through the left input of the join.
type Dependency struct {
	JoinID      sql.NodeID
	AccessingID sql.NodeID
}

// IdentifyDependentJoins walks every node of the tree and records a
// correlation edge for each column a node accesses whose producer lies in
// the left subtree of their lowest common ancestor. A node accessing
// columns of its own join's left input is not correlated; only accesses
// from inside the right subtree are.
func (t *QueryTree) IdentifyDependentJoins() []Dependency {
	ids := make([]sql.NodeID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var deps []Dependency
	for _, id := range ids {
		node := t.nodes[id]
		for _, col := range accessedColumns(node).Sorted() {
			provider, ok := t.providers[col]
			if !ok || provider == id {
				continue
			}

			lca, ok := t.LowestCommonAncestor(id, provider)
			if !ok || lca == id {
				continue
			}
			if t.IsInLeftSubtree(provider, lca) {
				deps = append(deps, Dependency{JoinID: lca, AccessingID: id})
			}
		}
	}

	return deps
}

// ApplyDependencies populates the accessing sets of the joins named by the
// given correlation edges. Only joins already marked dependent by the plan
// builder are populated; this step never decides dependence from scratch.
func (t *QueryTree) ApplyDependencies(deps []Dependency) {
	for _, dep := range deps {
		node, ok := t.Find(dep.JoinID)
		if !ok {
			continue
		}
		join, ok := node.(*plan.Join)
		if !ok || !join.Dependent {
			continue
		}
		join.AddAccessing(dep.AccessingID)
	}
}
