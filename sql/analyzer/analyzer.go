package analyzer

import (
	"fmt"
	"os"
	"strings"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/src-d/go-unnest/sql"
)

const debugAnalyzerKey = "DEBUG_ANALYZER"

const maxAnalysisIterations = 1000

// ErrMaxAnalysisIters is thrown when the analysis iterations are exceeded.
var ErrMaxAnalysisIters = errors.NewKind("exceeded max analysis iterations (%d)")

// ErrInvalidNodeType is thrown when the analyzer can't handle a particular
// kind of node type.
var ErrInvalidNodeType = errors.NewKind("%s: invalid node of type: %T")

// Builder provides an easy way to generate Analyzers with custom rules and
// options.
type Builder struct {
	preAnalyzeRules  []Rule
	postAnalyzeRules []Rule
	debug            bool
	verbose          bool
}

// NewBuilder creates a new Builder to configure an Analyzer.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDebug activates debug on the Analyzer.
func (ab *Builder) WithDebug() *Builder {
	ab.debug = true
	return ab
}

// WithVerbose activates verbose printing of every intermediate plan.
func (ab *Builder) WithVerbose() *Builder {
	ab.verbose = true
	return ab
}

// AddPreAnalyzeRule adds a new rule to run before the standard
// decorrelation rules.
func (ab *Builder) AddPreAnalyzeRule(name string, fn RuleFunc) *Builder {
	ab.preAnalyzeRules = append(ab.preAnalyzeRules, Rule{name, fn})
	return ab
}

// AddPostAnalyzeRule adds a new rule to run after the standard
// decorrelation rules.
func (ab *Builder) AddPostAnalyzeRule(name string, fn RuleFunc) *Builder {
	ab.postAnalyzeRules = append(ab.postAnalyzeRules, Rule{name, fn})
	return ab
}

// Build creates a new Analyzer from the builder configuration.
func (ab *Builder) Build() *Analyzer {
	_, debug := os.LookupEnv(debugAnalyzerKey)
	var batches = []*Batch{
		{
			Desc:       "pre-analyzer",
			Iterations: maxAnalysisIterations,
			Rules:      ab.preAnalyzeRules,
		},
		{
			Desc:       "once-before",
			Iterations: 1,
			Rules:      OnceBeforeDefault,
		},
		{
			Desc:       "decorrelation",
			Iterations: 1,
			Rules:      DefaultRules,
		},
		{
			Desc:       "once-after",
			Iterations: 1,
			Rules:      OnceAfterDefault,
		},
		{
			Desc:       "post-analyzer",
			Iterations: maxAnalysisIterations,
			Rules:      ab.postAnalyzeRules,
		},
	}

	return &Analyzer{
		Debug:   debug || ab.debug,
		Verbose: ab.verbose,
		Batches: batches,
	}
}

// Analyzer rewrites logical plan trees by applying batches of rules. Its
// default batches turn every dependent join of a plan into an ordinary,
// independent one.
type Analyzer struct {
	// Whether to log various debugging messages.
	Debug bool
	// Whether to output the plan at each step of the analyzer.
	Verbose bool
	// Batches of Rules to apply.
	Batches []*Batch

	mu       sync.Mutex
	debugCtx []string
}

// NewDefault creates a default Analyzer instance with all default Rules and
// configuration. To add custom rules, the easiest way is use the Builder.
func NewDefault() *Analyzer {
	return NewBuilder().Build()
}

// Log prints an INFO message to stdout with the given message and args if
// the analyzer is in debug mode.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a != nil && a.Debug {
		a.mu.Lock()
		ctx := strings.Join(a.debugCtx, "/")
		a.mu.Unlock()

		if len(ctx) > 0 {
			logrus.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			logrus.Infof(msg, args...)
		}
	}
}

// LogNode prints the node given if Verbose logging is enabled.
func (a *Analyzer) LogNode(n sql.Node) {
	if a != nil && n != nil && a.Verbose {
		a.mu.Lock()
		ctx := strings.Join(a.debugCtx, "/")
		a.mu.Unlock()

		if len(ctx) > 0 {
			fmt.Printf("%s:\n%s", ctx, n.String())
		} else {
			fmt.Printf("%s", n.String())
		}
	}
}

// PushDebugContext pushes the given context string onto the context stack,
// to use when logging debug messages.
func (a *Analyzer) PushDebugContext(msg string) {
	if a != nil {
		a.mu.Lock()
		a.debugCtx = append(a.debugCtx, msg)
		a.mu.Unlock()
	}
}

// PopDebugContext pops a context message off the context stack.
func (a *Analyzer) PopDebugContext() {
	if a != nil {
		a.mu.Lock()
		if len(a.debugCtx) > 0 {
			a.debugCtx = a.debugCtx[:len(a.debugCtx)-1]
		}
		a.mu.Unlock()
	}
}

// Analyze applies the batches of rules to the given plan and returns the
// rewritten plan. On success the result contains no dependent joins.
func (a *Analyzer) Analyze(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	span, ctx := ctx.Span("analyze", opentracing.Tags{
		"plan":    n.String(),
		"session": ctx.ID().String(),
	})
	defer span.Finish()

	prev := n
	var err error
	a.Log("starting analysis of node of type: %T", n)
	for _, batch := range a.Batches {
		a.PushDebugContext(batch.Desc)
		prev, err = batch.Eval(ctx, a, prev)
		a.PopDebugContext()
		if err != nil {
			return nil, err
		}
		a.LogNode(prev)
	}

	return prev, nil
}

// AnalyzeAll analyzes several independent plans concurrently. Every rewrite
// exclusively owns its indices, scopes and id allocator, so plans only share
// the analyzer configuration.
func (a *Analyzer) AnalyzeAll(ctx *sql.Context, nodes []sql.Node) ([]sql.Node, error) {
	eg, ctx := ctx.NewErrgroup()

	results := make([]sql.Node, len(nodes))
	for i, n := range nodes {
		i, n := i, n
		eg.Go(func() error {
			node, err := a.Analyze(ctx, n)
			if err != nil {
				return err
			}
			results[i] = node
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
