package javasrc

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Problem is one syntax error found while validating candidate code.
type Problem struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// Validate parses a candidate source fragment (e.g. LLM-generated
// replacement code) and reports every syntax problem. A nil slice means the
// fragment parsed cleanly. Empty input is a single problem, not a panic.
func Validate(content []byte) []Problem {
	if len(content) == 0 {
		return []Problem{{Line: 1, Message: "empty input"}}
	}

	tree := parse(content)
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	var problems []Problem
	collectProblems(root, content, &problems)
	if len(problems) == 0 {
		// The tree reports an error but no node carries it; surface a
		// generic problem rather than claiming validity.
		problems = append(problems, Problem{Line: 1, Message: "syntax error"})
	}
	return problems
}

func collectProblems(node *sitter.Node, content []byte, out *[]Problem) {
	if node == nil {
		return
	}

	if node.IsError() {
		text := nodeText(node, content)
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		*out = append(*out, Problem{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("unexpected %q", text),
		})
		return
	}
	if node.IsMissing() {
		*out = append(*out, Problem{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("missing %q", node.Type()),
		})
		return
	}

	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectProblems(node.Child(i), content, out)
	}
}
