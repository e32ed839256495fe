package javasrc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/refactorhq/java-context-graph/pkg/cfg"
	"github.com/refactorhq/java-context-graph/pkg/graph"
)

// Options configures file analysis.
type Options struct {
	// Workers bounds concurrent method analyses; <=0 means one per method.
	Workers int
	// MaxIterations bounds the DFG fixed point per method (0 = unbounded).
	MaxIterations int
	// Method restricts analysis to methods with this name ("" = all).
	Method string
}

// MethodGraph pairs a method with its analysis result.
type MethodGraph struct {
	Method      Method
	Graph       *graph.ContextGraph
	Diagnostics []cfg.Diagnostic
}

// AnalyzeMethod builds the context graph for one method. A method without a
// body (abstract, native) yields an empty graph.
func AnalyzeMethod(content []byte, m Method, maxIterations int) (*graph.ContextGraph, []cfg.Diagnostic, error) {
	body := (&lowerer{content: content}).lowerBody(m.body())
	ext := newDefUseExtractor(content, m.node)

	g, diags, err := graph.NewAnalyzer(ext, maxIterations).Analyze(body)
	if err != nil {
		return nil, diags, fmt.Errorf("analyzing method %s: %w", m.Name, err)
	}
	g.MethodName = m.Name
	return g, diags, nil
}

// AnalyzeFile parses a Java source file and builds one context graph per
// method. Methods are analyzed concurrently; each analysis is self-contained,
// so no coordination beyond the worker limit is needed. Results keep source
// order regardless of completion order.
func AnalyzeFile(ctx context.Context, content []byte, opts Options) ([]MethodGraph, error) {
	tree := parse(content)
	defer tree.Close()

	methods := FindMethods(tree.RootNode(), content)
	if opts.Method != "" {
		filtered := methods[:0]
		for _, m := range methods {
			if m.Name == opts.Method {
				filtered = append(filtered, m)
			}
		}
		methods = filtered
		if len(methods) == 0 {
			return nil, fmt.Errorf("method %q not found", opts.Method)
		}
	}

	results := make([]MethodGraph, len(methods))
	eg, _ := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		eg.SetLimit(opts.Workers)
	}

	for i, m := range methods {
		i, m := i, m
		eg.Go(func() error {
			g, diags, err := AnalyzeMethod(content, m, opts.MaxIterations)
			if err != nil {
				return err
			}
			results[i] = MethodGraph{Method: m, Graph: g, Diagnostics: diags}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
