// Package unnest rewrites logical query plans containing dependent joins,
// the lowered form of correlated subqueries, into equivalent plans built
// only from independent joins.
package unnest

import (
	"github.com/src-d/go-unnest/sql"
	"github.com/src-d/go-unnest/sql/analyzer"
)

// Engine decorrelates logical plans.
type Engine struct {
	Analyzer *analyzer.Analyzer
}

// New creates a new Engine with the given analyzer.
func New(a *analyzer.Analyzer) *Engine {
	return &Engine{Analyzer: a}
}

// NewDefault creates a new Engine with the default analyzer rules.
func NewDefault() *Engine {
	return New(analyzer.NewDefault())
}

// Decorrelate rewrites the given plan so that it contains no dependent
// joins. The input plan is not usable afterwards; use the returned one.
func (e *Engine) Decorrelate(ctx *sql.Context, plan sql.Node) (sql.Node, error) {
	return e.Analyzer.Analyze(ctx, plan)
}

// DecorrelateAll rewrites several independent plans concurrently.
func (e *Engine) DecorrelateAll(ctx *sql.Context, plans []sql.Node) ([]sql.Node, error) {
	return e.Analyzer.AnalyzeAll(ctx, plans)
}

// Decorrelate rewrites the given plan with a default Engine.
func Decorrelate(ctx *sql.Context, plan sql.Node) (sql.Node, error) {
	return NewDefault().Decorrelate(ctx, plan)
}
