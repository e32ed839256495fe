package javasrc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

type lowerer struct {
	content []byte
}

// lowerBody lowers a method body block into the statement tree the graph
// engine consumes. Returns nil for a method with no body.
func (l *lowerer) lowerBody(body *sitter.Node) []*stmt.Node {
	if body == nil {
		return nil
	}
	var out []*stmt.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if n := l.lowerStmt(body.NamedChild(i)); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// lowerStmt lowers one tree-sitter statement node. Comments and empty
// statements lower to nil; labeled statements unwrap to the statement they
// label, with break/continue targets carried on the jump node itself.
func (l *lowerer) lowerStmt(node *sitter.Node) *stmt.Node {
	if node == nil {
		return nil
	}

	switch node.Type() {
	case "line_comment", "block_comment", ";":
		return nil

	case "block":
		n := newNode(stmt.KindBlock, node)
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := l.lowerStmt(node.NamedChild(i)); child != nil {
				n.Children = append(n.Children, child)
			}
		}
		return n

	case "if_statement":
		n := newNode(stmt.KindIf, node)
		n.Then = l.lowerStmt(node.ChildByFieldName("consequence"))
		n.Else = l.lowerStmt(node.ChildByFieldName("alternative"))
		return n

	case "for_statement":
		n := newNode(stmt.KindFor, node)
		n.Body = l.lowerStmt(node.ChildByFieldName("body"))
		return n

	case "enhanced_for_statement":
		n := newNode(stmt.KindForEach, node)
		n.Body = l.lowerStmt(node.ChildByFieldName("body"))
		return n

	case "while_statement":
		n := newNode(stmt.KindWhile, node)
		n.Body = l.lowerStmt(node.ChildByFieldName("body"))
		return n

	case "do_statement":
		n := newNode(stmt.KindDo, node)
		n.Body = l.lowerStmt(node.ChildByFieldName("body"))
		return n

	case "switch_expression", "switch_statement":
		return l.lowerSwitch(node)

	case "try_statement", "try_with_resources_statement":
		return l.lowerTry(node)

	case "labeled_statement":
		return l.lowerStmt(lastNamedChild(node))

	case "break_statement":
		n := newNode(stmt.KindBreak, node)
		n.Label = l.jumpLabel(node)
		return n

	case "continue_statement":
		n := newNode(stmt.KindContinue, node)
		n.Label = l.jumpLabel(node)
		return n

	case "return_statement":
		return newNode(stmt.KindReturn, node)

	case "throw_statement":
		return newNode(stmt.KindThrow, node)

	default:
		if !node.IsNamed() {
			return nil
		}
		return newNode(stmt.KindSimple, node)
	}
}

// lowerSwitch maps both classic colon cases (with fall-through) and arrow
// rules onto the engine's case lists. The case labels themselves are not
// statements; only the per-case statement lists matter downstream.
func (l *lowerer) lowerSwitch(node *sitter.Node) *stmt.Node {
	n := newNode(stmt.KindSwitch, node)

	block := node.ChildByFieldName("body")
	if block == nil {
		block = childByType(node, "switch_block")
	}
	if block == nil {
		return n
	}

	for i := 0; i < int(block.NamedChildCount()); i++ {
		group := block.NamedChild(i)
		switch group.Type() {
		case "switch_block_statement_group", "switch_rule":
			var cs stmt.Case
			for j := 0; j < int(group.NamedChildCount()); j++ {
				child := group.NamedChild(j)
				if child.Type() == "switch_label" {
					continue
				}
				if lowered := l.lowerStmt(child); lowered != nil {
					cs.Stmts = append(cs.Stmts, lowered)
				} else if child.Type() != "line_comment" && child.Type() != "block_comment" {
					// An arrow rule's right side can be a bare
					// expression; treat it as a simple statement.
					cs.Stmts = append(cs.Stmts, newNode(stmt.KindSimple, child))
				}
			}
			n.Cases = append(n.Cases, cs)
		}
	}
	return n
}

func (l *lowerer) lowerTry(node *sitter.Node) *stmt.Node {
	n := newNode(stmt.KindTry, node)
	n.TryBody = l.lowerStmt(node.ChildByFieldName("body"))

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "catch_clause":
			catchBody := child.ChildByFieldName("body")
			if catchBody == nil {
				catchBody = childByType(child, "block")
			}
			if lowered := l.lowerStmt(catchBody); lowered != nil {
				n.Catches = append(n.Catches, lowered)
			}
		case "finally_clause":
			n.Finally = l.lowerStmt(childByType(child, "block"))
		}
	}
	return n
}

// jumpLabel returns the identifier a break/continue names, if any.
func (l *lowerer) jumpLabel(node *sitter.Node) string {
	return nodeText(childByType(node, "identifier"), l.content)
}

func newNode(kind stmt.Kind, syntax *sitter.Node) *stmt.Node {
	return &stmt.Node{
		Kind: kind,
		Span: stmt.Span{
			StartLine: int(syntax.StartPoint().Row) + 1,
			EndLine:   int(syntax.EndPoint().Row) + 1,
		},
		Syntax: syntax,
	}
}

func childByType(node *sitter.Node, childType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == childType {
			return child
		}
	}
	return nil
}

func lastNamedChild(node *sitter.Node) *sitter.Node {
	count := int(node.NamedChildCount())
	if count == 0 {
		return nil
	}
	return node.NamedChild(count - 1)
}
