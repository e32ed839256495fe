// Package stmt defines the statement model shared by the graph builders.
// A method body is represented as a tree of Nodes (one per statement, with
// bare blocks kept as transparent containers) and is flattened into an
// ordered list of Statements with dense zero-based ids.
package stmt

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind identifies the syntactic category of a statement.
type Kind string

const (
	KindBlock    Kind = "block" // bare grouping block; never receives an id
	KindIf       Kind = "if"
	KindFor      Kind = "for"
	KindForEach  Kind = "foreach"
	KindWhile    Kind = "while"
	KindDo       Kind = "do"
	KindSwitch   Kind = "switch"
	KindTry      Kind = "try"
	KindBreak    Kind = "break"
	KindContinue Kind = "continue"
	KindReturn   Kind = "return"
	KindThrow    Kind = "throw"
	KindSimple   Kind = "simple" // expression, assert, declaration, etc.
)

// Span is a start/end line range in the source file.
type Span struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Case is one switch case: its statement list in declaration order.
type Case struct {
	Stmts []*Node
}

// Node is one statement in a lowered method body. Only the fields relevant
// to the node's Kind are populated:
//
//	KindBlock:  Children
//	KindIf:     Then, Else (Else may be nil)
//	loops:      Body
//	KindSwitch: Cases
//	KindTry:    TryBody, Catches, Finally (each a block Node)
//	KindBreak/KindContinue: Label when the jump names a target
//
// Syntax is the opaque handle back to the underlying parse subtree; the
// graph engine never dereferences it, only the def/use Extractor does.
type Node struct {
	Kind   Kind
	Span   Span
	Label  string
	Syntax *sitter.Node

	Children []*Node
	Then     *Node
	Else     *Node
	Body     *Node
	Cases    []Case
	TryBody  *Node
	Catches  []*Node
	Finally  *Node
}

// Statement is one flattened statement. Ids are dense, zero-based and
// assigned in pre-order source order; defs and uses are sorted and
// duplicate-free. Immutable once collected.
type Statement struct {
	ID        int      `json:"id"`
	Kind      Kind     `json:"kind"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Defs      []string `json:"defs"`
	Uses      []string `json:"uses"`

	node *Node // handle for structural queries; not serialized
}

// Node returns the lowered statement node this Statement was created from.
func (s *Statement) Node() *Node {
	return s.node
}

// Defines reports whether the statement defines the given variable.
func (s *Statement) Defines(name string) bool {
	for _, d := range s.Defs {
		if d == name {
			return true
		}
	}
	return false
}

// Extractor computes the def/use sets for a single statement node.
// Implementations analyze only the node's own sub-expressions (the condition
// of an if/while/do/switch, the init+condition+update of a for, nothing for
// try), never the nested statement children; those get their own Statements.
// A name that cannot be resolved is omitted, not an error.
type Extractor interface {
	DefUse(n *Node) (defs, uses []string)
}
