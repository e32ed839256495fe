// Package dfg computes definition→use edges over a statement-level CFG
// using an iterative reaching-definitions fixed point.
package dfg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// ErrNoFixedPoint is returned when the iteration bound is exhausted before
// the analysis converges. The partial result is never returned: def→use
// edges are only meaningful at the fixed point.
var ErrNoFixedPoint = errors.New("reaching definitions did not converge")

// Options configures the fixed-point iteration.
type Options struct {
	// MaxIterations bounds the number of full passes; 0 means unbounded.
	// The analysis converges in at most len(stmts) passes regardless, so
	// the bound exists for callers that want an explicit guard.
	MaxIterations int
}

type idSet map[int]struct{}

// Build runs reaching definitions over the CFG and materializes def→use
// edges: an edge d→u means the definition of some variable v at statement d
// may still be the value read at u. The returned map has a key only for
// definitions with at least one dependent use; successor lists are sorted.
func Build(stmts []*stmt.Statement, cfgSucc map[int][]int, opts Options) (map[int][]int, error) {
	dfgSucc := make(map[int][]int)
	if len(stmts) == 0 {
		return dfgSucc, nil
	}

	// defsOf(v) = every statement id that defines v; used to build KILL.
	defsOf := make(map[string][]int)
	for _, s := range stmts {
		for _, v := range s.Defs {
			defsOf[v] = append(defsOf[v], s.ID)
		}
	}

	preds := invert(stmts, cfgSucc)

	in := make([]idSet, len(stmts))
	out := make([]idSet, len(stmts))
	for i := range stmts {
		in[i] = make(idSet)
		out[i] = make(idSet)
	}

	// Full passes over a snapshot of the previous iteration's OUT sets, so
	// results are independent of statement order within a pass.
	for pass := 0; ; pass++ {
		if opts.MaxIterations > 0 && pass >= opts.MaxIterations {
			return nil, fmt.Errorf("%w after %d iterations", ErrNoFixedPoint, opts.MaxIterations)
		}

		prevOut := out
		newIn := make([]idSet, len(stmts))
		newOut := make([]idSet, len(stmts))
		changed := false

		for _, s := range stmts {
			u := s.ID

			inSet := make(idSet)
			for _, p := range preds[u] {
				for d := range prevOut[p] {
					inSet[d] = struct{}{}
				}
			}

			// OUT = GEN ∪ (IN − KILL); a definition of v kills every
			// other reaching definition of v.
			outSet := make(idSet, len(inSet))
			for d := range inSet {
				outSet[d] = struct{}{}
			}
			for _, v := range s.Defs {
				for _, d := range defsOf[v] {
					delete(outSet, d)
				}
			}
			if len(s.Defs) > 0 {
				outSet[u] = struct{}{}
			}

			if !setsEqual(inSet, in[u]) || !setsEqual(outSet, prevOut[u]) {
				changed = true
			}
			newIn[u] = inSet
			newOut[u] = outSet
		}

		in = newIn
		out = newOut
		if !changed {
			break
		}
	}

	// For each use of v at u, connect every reaching definition that
	// actually defines v. IN(u) can carry definitions of unrelated
	// variables along the same path, hence the membership check.
	byID := make(map[int]*stmt.Statement, len(stmts))
	for _, s := range stmts {
		byID[s.ID] = s
	}
	edges := make(map[int]idSet)
	for _, s := range stmts {
		for _, v := range s.Uses {
			for d := range in[s.ID] {
				if byID[d].Defines(v) {
					if edges[d] == nil {
						edges[d] = make(idSet)
					}
					edges[d][s.ID] = struct{}{}
				}
			}
		}
	}

	for d, uses := range edges {
		list := make([]int, 0, len(uses))
		for u := range uses {
			list = append(list, u)
		}
		sort.Ints(list)
		dfgSucc[d] = list
	}
	return dfgSucc, nil
}

// invert derives the predecessor lists from the successor map.
func invert(stmts []*stmt.Statement, cfgSucc map[int][]int) map[int][]int {
	preds := make(map[int][]int, len(stmts))
	for from, tos := range cfgSucc {
		for _, to := range tos {
			preds[to] = append(preds[to], from)
		}
	}
	return preds
}

func setsEqual(a, b idSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
