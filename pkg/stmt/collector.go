package stmt

import "sort"

// Collect flattens a method body into an ordered Statement list and an
// identity index from lowered node to assigned id. Bare blocks are
// transparent: they receive no id but their children are flattened in place.
// Every other node gets the next sequential id and its def/use sets from the
// extractor, then its structural children are flattened so nested statements
// receive their own ids. A nil extractor yields empty def/use sets.
func Collect(body []*Node, ext Extractor) ([]*Statement, map[*Node]int) {
	c := &collector{
		stmts: make([]*Statement, 0),
		index: make(map[*Node]int),
		ext:   ext,
	}
	for _, n := range body {
		c.collect(n)
	}
	return c.stmts, c.index
}

type collector struct {
	stmts []*Statement
	index map[*Node]int
	ext   Extractor
}

func (c *collector) collect(n *Node) {
	if n == nil {
		return
	}

	if n.Kind == KindBlock {
		for _, child := range n.Children {
			c.collect(child)
		}
		return
	}

	s := &Statement{
		ID:        len(c.stmts),
		Kind:      n.Kind,
		StartLine: n.Span.StartLine,
		EndLine:   n.Span.EndLine,
		node:      n,
	}
	if c.ext != nil {
		defs, uses := c.ext.DefUse(n)
		s.Defs = normalize(defs)
		s.Uses = normalize(uses)
	} else {
		s.Defs = []string{}
		s.Uses = []string{}
	}
	c.stmts = append(c.stmts, s)
	c.index[n] = s.ID

	switch n.Kind {
	case KindIf:
		c.collect(n.Then)
		c.collect(n.Else)
	case KindFor, KindForEach, KindWhile, KindDo:
		c.collect(n.Body)
	case KindSwitch:
		for _, cs := range n.Cases {
			for _, child := range cs.Stmts {
				c.collect(child)
			}
		}
	case KindTry:
		c.collect(n.TryBody)
		for _, catch := range n.Catches {
			c.collect(catch)
		}
		c.collect(n.Finally)
	}
}

// normalize sorts and deduplicates a name set.
func normalize(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
