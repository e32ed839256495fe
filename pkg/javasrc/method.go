// Package javasrc is the Java front end: it locates methods in a source
// file, lowers their tree-sitter ASTs into the statement model consumed by
// the graph engine, supplies the def/use extraction contract, and checks
// candidate code for syntax validity.
package javasrc

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// Method is one method or constructor declaration found in a source file.
type Method struct {
	Name string
	Span stmt.Span

	node *sitter.Node
}

// parse parses Java source and returns the syntax tree. The caller owns the
// tree and must Close it.
func parse(content []byte) *sitter.Tree {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return parser.Parse(nil, content)
}

// ListMethods parses source and returns its method declarations. The
// returned methods carry names and spans only; they cannot be analyzed,
// since the backing tree is released before returning.
func ListMethods(content []byte) ([]Method, error) {
	tree := parse(content)
	defer tree.Close()

	methods := FindMethods(tree.RootNode(), content)
	out := make([]Method, len(methods))
	for i, m := range methods {
		out[i] = Method{Name: m.Name, Span: m.Span}
	}
	return out, nil
}

// FindMethods returns every method and constructor declaration under root,
// in source order, including those in nested and anonymous classes.
func FindMethods(root *sitter.Node, content []byte) []Method {
	var methods []Method
	collectMethods(root, content, &methods)
	return methods
}

func collectMethods(node *sitter.Node, content []byte, out *[]Method) {
	if node == nil {
		return
	}

	if node.Type() == "method_declaration" || node.Type() == "constructor_declaration" {
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil {
			*out = append(*out, Method{
				Name: nodeText(nameNode, content),
				Span: stmt.Span{
					StartLine: int(node.StartPoint().Row) + 1,
					EndLine:   int(node.EndPoint().Row) + 1,
				},
				node: node,
			})
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectMethods(node.NamedChild(i), content, out)
	}
}

// body returns the method's body block, or nil for abstract/native
// declarations without one.
func (m Method) body() *sitter.Node {
	if m.node == nil {
		return nil
	}
	return m.node.ChildByFieldName("body")
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if int(start) > len(content) || int(end) > len(content) {
		return ""
	}
	return string(content[start:end])
}
