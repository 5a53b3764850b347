package analyzer

import (
	"sort"

	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/expression"
	"github.com/src-d/go-unnest/sql/plan"
)

// unnestScope is the recursion-scoped state of one correlated scope: the
// outer-referenced columns the scope must supply, the domain relation built
// for them, the equivalence classes gathered from equality predicates, and
// the resolution of each outer reference to a locally available column.
// Scopes are shared by pointer down the recursion, so equivalences found
// deep inside a dependent join's right subtree are visible when the join
// assembles its domain-join condition.
type unnestScope struct {
	outerRefs sql.ColumnSet
	domain    sql.Node
	classes   map[sql.Column]sql.ColumnSet
	repr      map[sql.Column]sql.Column
	parent    *unnestScope
}

func newUnnestScope(outerRefs sql.ColumnSet, domain sql.Node) *unnestScope {
	return &unnestScope{
		outerRefs: outerRefs,
		domain:    domain,
		classes:   make(map[sql.Column]sql.ColumnSet),
		repr:      make(map[sql.Column]sql.Column),
	}
}

func emptyScope() *unnestScope {
	return newUnnestScope(sql.NewColumnSet(), nil)
}

// addEquivalence registers a bidirectional equivalence between two columns.
func (s *unnestScope) addEquivalence(a, b sql.Column) {
	if _, ok := s.classes[a]; !ok {
		s.classes[a] = sql.NewColumnSet()
	}
	s.classes[a].Add(b)

	if _, ok := s.classes[b]; !ok {
		s.classes[b] = sql.NewColumnSet()
	}
	s.classes[b].Add(a)
}

// addEquivalencesFromExpr extracts column equalities from the top-level
// conjuncts of the given predicate.
func (s *unnestScope) addEquivalencesFromExpr(expr sql.Expression) {
	for _, conjunct := range expression.SplitConjunction(expr) {
		eq, ok := conjunct.(*expression.Equals)
		if !ok {
			continue
		}
		left, ok := eq.Left.(*expression.ColumnRef)
		if !ok {
			continue
		}
		right, ok := eq.Right.(*expression.ColumnRef)
		if !ok {
			continue
		}
		s.addEquivalence(left.Column(), right.Column())
	}
}

// mergeClasses unions the equivalence classes of another scope into this
// one.
func (s *unnestScope) mergeClasses(other *unnestScope) {
	if other == nil || other == s {
		return
	}
	for col, equivalents := range other.classes {
		if _, ok := s.classes[col]; !ok {
			s.classes[col] = sql.NewColumnSet()
		}
		s.classes[col].Union(equivalents)
	}
}

// resolve computes replacement mappings for every outer reference not yet
// resolved, searching its equivalence classes for a column available at the
// current position. Once resolved, a mapping never changes for the
// lifetime of the scope.
func (s *unnestScope) resolve(available sql.ColumnSet) {
	for _, col := range s.outerRefs.Sorted() {
		if _, ok := s.repr[col]; ok {
			continue
		}
		if sub, ok := s.parentResolution(col); ok {
			s.repr[col] = sub
			continue
		}
		if sub, ok := s.search(col, available); ok {
			s.repr[col] = sub
		}
	}
}

// parentResolution reuses a resolution already made by an enclosing scope
// for the same outer column.
func (s *unnestScope) parentResolution(col sql.Column) (sql.Column, bool) {
	for p := s.parent; p != nil; p = p.parent {
		if sub, ok := p.repr[col]; ok {
			return sub, true
		}
	}
	return sql.Column{}, false
}

// search walks the equivalence-class graph breadth-first from col until it
// reaches a column present in available, so transitive equalities such as
// A = B and B = C let A resolve through C.
func (s *unnestScope) search(col sql.Column, available sql.ColumnSet) (sql.Column, bool) {
	seen := sql.NewColumnSet(col)
	frontier := []sql.Column{col}

	for len(frontier) > 0 {
		var next []sql.Column
		for _, c := range frontier {
			for _, equiv := range s.classes[c].Sorted() {
				if seen.Contains(equiv) {
					continue
				}
				if available.Contains(equiv) {
					return equiv, true
				}
				seen.Add(equiv)
				next = append(next, equiv)
			}
		}
		frontier = next
	}

	return sql.Column{}, false
}

// rewriteExpr substitutes every resolved outer reference in the expression
// with its local equivalent.
func (s *unnestScope) rewriteExpr(expr sql.Expression) sql.Expression {
	return expr.TransformUp(func(e sql.Expression) sql.Expression {
		if ref, ok := e.(*expression.ColumnRef); ok {
			if sub, ok := s.repr[ref.Column()]; ok {
				return expression.NewColumnRef(sub)
			}
		}
		return e
	})
}

// mergeScopes combines the scopes returned by the two inputs of an
// independent join. The side carrying outer references wins; when both
// carry them, equivalence classes are unioned and existing resolutions are
// kept, first writer wins.
func mergeScopes(left, right *unnestScope) *unnestScope {
	if left == right {
		return left
	}

	result := right
	if len(left.outerRefs) > 0 {
		result = left
	}

	if len(left.outerRefs) > 0 && len(right.outerRefs) > 0 {
		result.mergeClasses(right)
		for col, sub := range right.repr {
			if _, ok := result.repr[col]; !ok {
				result.repr[col] = sub
			}
		}
	}

	return result
}

// decorrelateJoins rewrites every dependent join of the plan into an
// ordinary one, folding simple correlated filters into join conditions and
// falling back to domain-based decorrelation for everything else.
func decorrelateJoins(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	span, ctx := ctx.Span("decorrelate_joins")
	defer span.Finish()

	tree, err := NewQueryTree(n)
	if err != nil {
		return nil, err
	}

	d := &decorrelator{
		a:     a,
		alloc: sql.NewIDAllocator(tree.MaxID() + 1),
	}

	node, _, err := d.node(ctx, n, nil, sql.NewColumnSet())
	if err != nil {
		return nil, err
	}
	return node, nil
}

// decorrelator holds the per-rewrite state of the engine: the id allocator
// minting ids for synthesized domain nodes. It is exclusively owned by one
// in-flight rewrite.
type decorrelator struct {
	a     *Analyzer
	alloc *sql.IDAllocator
}

// node rewrites a subtree. enclosing is the scope of the nearest enclosing
// dependent join, or nil outside any correlated scope. available is the
// in/out set of columns visible at the current position; it is mutated as
// the traversal proceeds.
func (d *decorrelator) node(ctx *sql.Context, n sql.Node, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	switch n := n.(type) {
	case *plan.Table:
		return d.table(n, enclosing, available)
	case *plan.Filter:
		return d.filter(ctx, n, enclosing, available)
	case *plan.Project:
		return d.project(ctx, n, enclosing, available)
	case *plan.GroupBy:
		return d.groupBy(ctx, n, enclosing, available)
	case *plan.Join:
		if n.Dependent && len(n.Accessing) > 0 {
			return d.dependentJoin(ctx, n, enclosing, available)
		}
		return d.independentJoin(ctx, n, enclosing, available)
	default:
		return d.generic(ctx, n, enclosing, available)
	}
}

// table is terminal: a base table cannot itself be correlated. It resets
// the available columns to exactly the ones it produces.
func (d *decorrelator) table(n *plan.Table, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	available.Clear()
	available.Union(producedColumns(n))

	scope := enclosing
	if scope == nil {
		scope = emptyScope()
	}
	return n, scope, nil
}

func (d *decorrelator) filter(ctx *sql.Context, n *plan.Filter, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	scope := enclosing
	if scope == nil {
		scope = emptyScope()
	}

	scope.addEquivalencesFromExpr(n.Expression)

	child, childScope, err := d.node(ctx, n.Child, scope, available)
	if err != nil {
		return nil, nil, err
	}
	scope.mergeClasses(childScope)

	scope.resolve(available)
	predicate := scope.rewriteExpr(n.Expression)

	return plan.NewFilter(n.ID(), predicate, child), scope, nil
}

func (d *decorrelator) project(ctx *sql.Context, n *plan.Project, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	child, childScope, err := d.node(ctx, n.Child, enclosing, available)
	if err != nil {
		return nil, nil, err
	}

	scope := enclosing
	if scope == nil {
		scope = childScope
	}

	scope.resolve(available)

	projections := make([]plan.ProjectedColumn, len(n.Projections))
	for i, proj := range n.Projections {
		projections[i] = plan.ProjectedColumn{
			Column: proj.Column,
			Expr:   scope.rewriteExpr(proj.Expr),
		}
		available.Add(proj.Column)
	}

	return plan.NewProject(n.ID(), projections, child), scope, nil
}

func (d *decorrelator) groupBy(ctx *sql.Context, n *plan.GroupBy, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	scope := enclosing
	if scope == nil {
		scope = emptyScope()
	}

	child, childScope, err := d.node(ctx, n.Child, scope, available)
	if err != nil {
		return nil, nil, err
	}
	scope.mergeClasses(childScope)

	scope.resolve(available)

	keys := make([]sql.Column, len(n.Keys))
	for i, key := range n.Keys {
		if sub, ok := scope.repr[key]; ok {
			keys[i] = sub
		} else {
			keys[i] = key
		}
	}

	aggregates := make([]plan.ProjectedColumn, len(n.Aggregates))
	for i, agg := range n.Aggregates {
		aggregates[i] = plan.ProjectedColumn{
			Column: agg.Column,
			Expr:   scope.rewriteExpr(agg.Expr),
		}
	}

	// Every resolved outer reference must stay in the grouping key list,
	// or the aggregate would group away the correlation carrier and change
	// the grouping granularity.
	for _, col := range scope.outerRefs.Sorted() {
		sub, ok := scope.repr[col]
		if !ok {
			continue
		}
		if !columnsContain(keys, sub) {
			keys = append(keys, sub)
		}
	}

	groupBy := plan.NewGroupBy(n.ID(), keys, aggregates, child)

	// A GroupBy is an opaque column boundary.
	available.Clear()
	available.Union(producedColumns(groupBy))

	return groupBy, scope, nil
}

func (d *decorrelator) independentJoin(ctx *sql.Context, n *plan.Join, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	// The right side must not see left-branch-local temporaries, so the
	// left recursion works on a private copy.
	leftAvailable := available.Copy()
	left, leftScope, err := d.node(ctx, n.Left(), enclosing, leftAvailable)
	if err != nil {
		return nil, nil, err
	}

	right, rightScope, err := d.node(ctx, n.Right(), enclosing, available)
	if err != nil {
		return nil, nil, err
	}

	available.Union(leftAvailable)

	scope := mergeScopes(leftScope, rightScope)
	cond := simplifyConjunction(scope.rewriteExpr(n.Cond))

	return plan.NewJoin(n.ID(), left, right, cond), scope, nil
}

func (d *decorrelator) dependentJoin(ctx *sql.Context, n *plan.Join, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	d.a.Log("decorrelating dependent join %d", n.ID())

	// Cheap path first: when every accessing node is a plain filter, its
	// predicate moves into the join condition and no domain relation is
	// needed.
	if preds, spliced, ok := foldableFilters(n.Right(), n.Accessing); ok {
		d.a.Log("simple unnesting of join %d folded %d predicates", n.ID(), len(preds))

		cond := simplifyConjunction(expression.JoinAnd(append([]sql.Expression{n.Cond}, preds...)...))
		return d.independentJoin(ctx, plan.NewJoin(n.ID(), n.Left(), spliced, cond), enclosing, available)
	}

	// The left input is rewritten first, so dependent joins nested below it
	// are gone before the domain projection is synthesized over it.
	leftAvailable := available.Copy()
	left, _, err := d.node(ctx, n.Left(), enclosing, leftAvailable)
	if err != nil {
		return nil, nil, err
	}
	available.Union(leftAvailable)

	// The outer references are the columns genuinely supplied by the left
	// input that the right subtree uses without producing.
	outerRefs := producedColumns(left).Intersect(freeVariables(n.Right()))

	var domain sql.Node
	if len(outerRefs) > 0 {
		domain = d.domainNode(left, outerRefs)
	}

	scope := newUnnestScope(outerRefs, domain)
	scope.parent = enclosing
	scope.addEquivalencesFromExpr(n.Cond)

	right, _, err := d.node(ctx, n.Right(), scope, available)
	if err != nil {
		return nil, nil, err
	}

	scope.resolve(available)
	cond := simplifyConjunction(scope.rewriteExpr(n.Cond))

	if domain != nil {
		domainCond, err := domainJoinCondition(scope)
		if err != nil {
			return nil, nil, err
		}
		right = plan.NewJoin(d.alloc.Next(), domain, right, domainCond)
	}

	// The resolved columns become visible to downstream siblings.
	for _, col := range scope.outerRefs.Sorted() {
		if sub, ok := scope.repr[col]; ok {
			available.Add(sub)
		}
	}

	return plan.NewJoin(n.ID(), left, right, cond), scope, nil
}

// generic handles node kinds outside the core vocabulary: children are
// rewritten independently, their scopes merged, and the available columns
// become the union of what the children produce.
func (d *decorrelator) generic(ctx *sql.Context, n sql.Node, enclosing *unnestScope, available sql.ColumnSet) (sql.Node, *unnestScope, error) {
	children := n.Children()
	if len(children) == 0 {
		scope := enclosing
		if scope == nil {
			scope = emptyScope()
		}
		return n, scope, nil
	}

	newChildren := make([]sql.Node, len(children))
	scopes := make([]*unnestScope, len(children))
	childColumns := sql.NewColumnSet()
	for i, child := range children {
		childAvailable := sql.NewColumnSet()
		newChild, childScope, err := d.node(ctx, child, enclosing, childAvailable)
		if err != nil {
			return nil, nil, err
		}
		newChildren[i] = newChild
		scopes[i] = childScope
		childColumns.Union(childAvailable)
	}

	node, err := n.WithChildren(newChildren...)
	if err != nil {
		return nil, nil, err
	}

	scope := enclosing
	if scope == nil {
		scope = scopes[0]
	}
	for _, childScope := range scopes {
		scope.mergeClasses(childScope)
	}

	available.Clear()
	available.Union(childColumns)

	return node, scope, nil
}

// foldableFilters reports whether every accessing node of a dependent join
// is a Filter. If so, it returns their predicates ordered by node id and
// the right subtree with those filters spliced out; the predicates belong
// in the join condition, where both inputs are visible.
func foldableFilters(right sql.Node, accessing map[sql.NodeID]struct{}) ([]sql.Expression, sql.Node, bool) {
	ids := make([]sql.NodeID, 0, len(accessing))
	for id := range accessing {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	preds := make([]sql.Expression, 0, len(ids))
	for _, id := range ids {
		node, ok := findNode(right, id)
		if !ok {
			return nil, nil, false
		}
		filter, ok := node.(*plan.Filter)
		if !ok {
			return nil, nil, false
		}
		preds = append(preds, filter.Expression)
	}

	if len(preds) == 0 {
		return nil, nil, false
	}

	spliced, err := plan.TransformUp(right, func(n sql.Node) (sql.Node, error) {
		if f, ok := n.(*plan.Filter); ok {
			if _, ok := accessing[f.ID()]; ok {
				return f.Child, nil
			}
		}
		return n, nil
	})
	if err != nil {
		return nil, nil, false
	}

	return preds, spliced, true
}

// domainNode projects the outer-referenced columns out of the left input.
// Joined back against the decorrelated right side it restores the correct
// row multiplicities.
func (d *decorrelator) domainNode(left sql.Node, outerRefs sql.ColumnSet) sql.Node {
	cols := outerRefs.Sorted()
	projections := make([]plan.ProjectedColumn, len(cols))
	for i, col := range cols {
		projections[i] = plan.ProjectedColumn{
			Column: col,
			Expr:   expression.NewColumnRef(col),
		}
	}
	return plan.NewProject(d.alloc.Next(), projections, left)
}

// domainJoinCondition equates every outer reference with its resolved local
// equivalent. An outer reference without a resolution is a planning
// failure: dropping it would silently change the join semantics.
func domainJoinCondition(scope *unnestScope) (sql.Expression, error) {
	cols := scope.outerRefs.Sorted()
	conjuncts := make([]sql.Expression, 0, len(cols))
	for _, col := range cols {
		sub, ok := scope.repr[col]
		if !ok {
			return nil, ErrUnresolvedOuterReference.New(col)
		}
		conjuncts = append(conjuncts, expression.NewEquals(
			expression.NewColumnRef(col),
			expression.NewColumnRef(sub),
		))
	}
	return expression.JoinAnd(conjuncts...), nil
}

// simplifyConjunction drops the literal-true conjuncts that plan builders
// and predicate folding leave behind. A condition with nothing left
// collapses back to true.
func simplifyConjunction(cond sql.Expression) sql.Expression {
	var kept []sql.Expression
	for _, conjunct := range expression.SplitConjunction(cond) {
		if lit, ok := conjunct.(*expression.Literal); ok {
			if b, err := lit.Bool(); err == nil && b {
				continue
			}
		}
		kept = append(kept, conjunct)
	}

	if len(kept) == 0 {
		return expression.True()
	}
	return expression.JoinAnd(kept...)
}
