package graph

import (
	"github.com/refactorhq/java-context-graph/pkg/cfg"
	"github.com/refactorhq/java-context-graph/pkg/dfg"
	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// Analyzer runs the three graph-construction phases over one method body:
// statement collection, CFG construction, then DFG construction. The phases
// are strictly sequential; each consumes the previous phase's full output.
// An Analyzer holds no per-method state and is safe for concurrent use
// across independent method bodies.
type Analyzer struct {
	ext           stmt.Extractor
	maxIterations int
}

// NewAnalyzer creates an Analyzer using the given def/use extractor.
// maxIterations bounds the DFG fixed point (0 = unbounded).
func NewAnalyzer(ext stmt.Extractor, maxIterations int) *Analyzer {
	return &Analyzer{ext: ext, maxIterations: maxIterations}
}

// Analyze builds the context graph for a lowered method body. A nil or
// empty body yields an empty graph with empty, non-nil maps. Diagnostics
// report constructs left unconnected in the CFG (labeled jumps); they do
// not invalidate the graph.
func (a *Analyzer) Analyze(body []*stmt.Node) (*ContextGraph, []cfg.Diagnostic, error) {
	stmts, index := stmt.Collect(body, a.ext)

	g := &ContextGraph{
		Stmts:   stmts,
		CFGSucc: make(Adjacency, len(stmts)),
		DFGSucc: make(Adjacency),
	}
	if len(stmts) == 0 {
		return g, nil, nil
	}

	cfgSucc, diags := cfg.Build(body, index, len(stmts))
	for id, succ := range cfgSucc {
		g.CFGSucc[id] = succ
	}

	dfgSucc, err := dfg.Build(stmts, cfgSucc, dfg.Options{MaxIterations: a.maxIterations})
	if err != nil {
		return nil, diags, err
	}
	for id, succ := range dfgSucc {
		g.DFGSucc[id] = succ
	}

	return g, diags, nil
}
