// Package cfg builds the statement-level control flow graph for one method.
// The builder walks the lowered statement tree once, threading a set of
// "current predecessor" ids through nested constructs, and produces a
// successor map covering every collected statement id.
package cfg

import (
	"fmt"
	"sort"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// Diagnostic reports a construct the builder recognized but deliberately
// left unconnected, such as a labeled break. The surrounding graph remains
// valid; diagnostics are a warning channel, never a failure.
type Diagnostic struct {
	StatementID int    `json:"statement_id"`
	Message     string `json:"message"`
}

// idSet is a set of statement ids.
type idSet map[int]struct{}

func newIDSet(ids ...int) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) addAll(other idSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

func union(a, b idSet) idSet {
	out := make(idSet, len(a)+len(b))
	out.addAll(a)
	out.addAll(b)
	return out
}

// enclosing is one entry on the enclosing-construct stack. Loops carry their
// header id (the continue target); switches carry headID -1. Both accumulate
// the predecessor ids of unlabeled breaks that target them.
type enclosing struct {
	isLoop     bool
	headID     int
	breakExits idSet
}

// Builder constructs the CFG successor relation over flattened statements.
type Builder struct {
	index map[*stmt.Node]int
	succ  map[int]idSet
	stack []*enclosing
	diags []Diagnostic
}

// Build computes the successor map for a method body whose statements were
// flattened into ids 0..n-1. Every id appears as a key, possibly with an
// empty successor set. The traversal starts from an empty predecessor set,
// which stands in for the method entry.
func Build(body []*stmt.Node, index map[*stmt.Node]int, n int) (map[int][]int, []Diagnostic) {
	b := &Builder{
		index: index,
		succ:  make(map[int]idSet, n),
	}
	for id := 0; id < n; id++ {
		b.succ[id] = make(idSet)
	}

	preds := make(idSet)
	for _, node := range body {
		preds = b.visit(node, preds)
	}

	out := make(map[int][]int, n)
	for id, set := range b.succ {
		out[id] = sortedIDs(set)
	}
	return out, b.diags
}

// visit connects every id in preds to the statement, then dispatches on its
// kind. The returned set holds the ids control may rest on after the
// statement completes; an empty set means control never falls through.
func (b *Builder) visit(n *stmt.Node, preds idSet) idSet {
	if n == nil {
		return preds
	}

	if n.Kind == stmt.KindBlock {
		return b.visitBlock(n, preds)
	}

	id, ok := b.index[n]
	if !ok {
		// Not a collected statement; thread control through unchanged.
		return preds
	}

	// The do-while body runs before the check, so incoming control enters
	// the body directly rather than the check node.
	if n.Kind == stmt.KindDo {
		return b.visitDo(n, id, preds)
	}

	b.link(preds, id)
	cur := newIDSet(id)

	switch n.Kind {
	case stmt.KindIf:
		return b.visitIf(n, cur)
	case stmt.KindFor, stmt.KindForEach, stmt.KindWhile:
		return b.visitLoop(n, id)
	case stmt.KindSwitch:
		return b.visitSwitch(n, id)
	case stmt.KindBreak:
		b.handleBreak(n, id, cur)
		return make(idSet)
	case stmt.KindContinue:
		b.handleContinue(n, id, cur)
		return make(idSet)
	case stmt.KindReturn, stmt.KindThrow:
		return make(idSet)
	default:
		// Simple statements and try constructs pass control straight
		// through. Statements inside a try remain unconnected: modeling
		// exceptional flow is out of scope, and connecting them as normal
		// flow would fabricate edges the analysis cannot justify.
		return cur
	}
}

// visitBlock threads the predecessor set through each child in order.
// A child that diverts control (return, throw, break, continue) leaves an
// empty set, so later siblings are still visited and stay in the graph as
// unreachable nodes, but gain no incoming edges.
func (b *Builder) visitBlock(n *stmt.Node, preds idSet) idSet {
	cur := preds
	for _, child := range n.Children {
		cur = b.visit(child, cur)
	}
	return cur
}

func (b *Builder) visitIf(n *stmt.Node, cur idSet) idSet {
	thenExits := b.visit(n.Then, cur)
	elseExits := cur
	if n.Else != nil {
		elseExits = b.visit(n.Else, cur)
	}
	return union(thenExits, elseExits)
}

// visitLoop wires for, foreach and while loops: the header is the body's
// sole predecessor and the back-edge target, and the loop's exit set is the
// header plus any break exits accumulated while visiting the body.
func (b *Builder) visitLoop(n *stmt.Node, id int) idSet {
	ctx := &enclosing{isLoop: true, headID: id, breakExits: make(idSet)}
	b.stack = append(b.stack, ctx)

	bodyExits := b.visit(n.Body, newIDSet(id))
	for exit := range bodyExits {
		b.addEdge(exit, id)
	}

	b.stack = b.stack[:len(b.stack)-1]
	return union(newIDSet(id), ctx.breakExits)
}

// visitDo wires a do-while: the body is entered from the incoming
// predecessors (run-at-least-once), body exits flow to the check node, and
// the check node is both the back-edge target and, on the false path, the
// loop's exit. Continue inside the body targets the check node.
func (b *Builder) visitDo(n *stmt.Node, id int, preds idSet) idSet {
	ctx := &enclosing{isLoop: true, headID: id, breakExits: make(idSet)}
	b.stack = append(b.stack, ctx)

	bodyExits := b.visit(n.Body, preds)
	b.link(bodyExits, id)

	b.stack = b.stack[:len(b.stack)-1]
	return union(newIDSet(id), ctx.breakExits)
}

// visitSwitch wires dispatch and fall-through: the switch node is a
// predecessor of every case's first statement, and each case's exit set
// falls through into the next case. The overall exit is the last case's
// fall-through plus the accumulated break exits.
func (b *Builder) visitSwitch(n *stmt.Node, id int) idSet {
	ctx := &enclosing{isLoop: false, headID: -1, breakExits: make(idSet)}
	b.stack = append(b.stack, ctx)

	fallthru := newIDSet(id)
	for _, cs := range n.Cases {
		cur := union(fallthru, newIDSet(id))
		for _, child := range cs.Stmts {
			cur = b.visit(child, cur)
		}
		fallthru = cur
	}

	b.stack = b.stack[:len(b.stack)-1]
	return union(fallthru, ctx.breakExits)
}

// handleBreak resolves an unlabeled break against the innermost enclosing
// loop or switch, adding the break's id to that construct's exit set. A
// break outside any loop or switch is unreachable in this model and is
// dropped. Labeled breaks are left unconnected and reported.
func (b *Builder) handleBreak(n *stmt.Node, id int, cur idSet) {
	if n.Label != "" {
		b.diags = append(b.diags, Diagnostic{
			StatementID: id,
			Message:     fmt.Sprintf("labeled break %q is not connected in the CFG", n.Label),
		})
		return
	}
	if len(b.stack) == 0 {
		return
	}
	b.stack[len(b.stack)-1].breakExits.addAll(cur)
}

// handleContinue adds an edge to the nearest enclosing loop's header.
// Labeled continues are left unconnected and reported.
func (b *Builder) handleContinue(n *stmt.Node, id int, cur idSet) {
	if n.Label != "" {
		b.diags = append(b.diags, Diagnostic{
			StatementID: id,
			Message:     fmt.Sprintf("labeled continue %q is not connected in the CFG", n.Label),
		})
		return
	}
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].isLoop {
			b.link(cur, b.stack[i].headID)
			return
		}
	}
}

func (b *Builder) link(from idSet, to int) {
	for id := range from {
		b.addEdge(id, to)
	}
}

func (b *Builder) addEdge(from, to int) {
	if from < 0 || to < 0 {
		return
	}
	b.succ[from][to] = struct{}{}
}

func sortedIDs(s idSet) []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
