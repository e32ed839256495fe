package javasrc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// defUseExtractor implements stmt.Extractor for Java. Name resolution is
// method-local: it records the names declared by the method (parameters,
// local declarators, foreach variables, catch parameters) up front and only
// reports references to those names. Anything it cannot resolve that way
// (fields, class names, statics) is silently omitted, which degrades the
// def/use sets but never fails extraction.
type defUseExtractor struct {
	content  []byte
	declared map[string]struct{}
}

// newDefUseExtractor builds the extractor for one method declaration.
func newDefUseExtractor(content []byte, methodNode *sitter.Node) *defUseExtractor {
	e := &defUseExtractor{
		content:  content,
		declared: make(map[string]struct{}),
	}
	e.collectDeclared(methodNode)
	return e
}

// collectDeclared walks the whole method once, recording every locally
// declared variable name.
func (e *defUseExtractor) collectDeclared(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "formal_parameter", "spread_parameter", "catch_formal_parameter":
		if name := childByType(node, "identifier"); name != nil {
			e.declared[nodeText(name, e.content)] = struct{}{}
		}
	case "variable_declarator":
		if name := node.ChildByFieldName("name"); name != nil {
			e.declared[nodeText(name, e.content)] = struct{}{}
		}
	case "enhanced_for_statement":
		if name := node.ChildByFieldName("name"); name != nil {
			e.declared[nodeText(name, e.content)] = struct{}{}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.collectDeclared(node.NamedChild(i))
	}
}

// DefUse analyzes only the statement's own sub-expressions: the condition
// of an if/while/do/switch, the init, condition and update of a for, the
// variable and iterable of a foreach, nothing for a try, and the whole
// subtree of any other statement. Nested statement children are excluded;
// they become their own statements.
func (e *defUseExtractor) DefUse(n *stmt.Node) (defs, uses []string) {
	if n.Syntax == nil {
		return nil, nil
	}
	w := &defUseWalker{ext: e}

	switch n.Kind {
	case stmt.KindIf, stmt.KindWhile, stmt.KindDo, stmt.KindSwitch:
		w.walk(n.Syntax.ChildByFieldName("condition"))
	case stmt.KindFor:
		w.walk(n.Syntax.ChildByFieldName("init"))
		w.walk(n.Syntax.ChildByFieldName("condition"))
		w.walk(n.Syntax.ChildByFieldName("update"))
	case stmt.KindForEach:
		if name := n.Syntax.ChildByFieldName("name"); name != nil {
			w.def(nodeText(name, e.content))
		}
		w.walk(n.Syntax.ChildByFieldName("value"))
	case stmt.KindTry, stmt.KindBreak, stmt.KindContinue:
		// No variable traffic of their own.
	default:
		w.walk(n.Syntax)
	}

	return w.defs, w.uses
}

type defUseWalker struct {
	ext  *defUseExtractor
	defs []string
	uses []string
}

// walk visits an expression subtree. Assignment targets and declarator
// names become defs; any other identifier resolving to a local becomes a
// use. Selector positions (field names, invoked method names) are skipped.
func (w *defUseWalker) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "identifier":
		w.use(nodeText(node, w.ext.content))

	case "assignment_expression":
		left := node.ChildByFieldName("left")
		if left != nil {
			if left.Type() == "identifier" {
				w.def(nodeText(left, w.ext.content))
			} else {
				// Array element or field target; the base expression
				// is still read.
				w.walk(left)
			}
		}
		w.walk(node.ChildByFieldName("right"))

	case "variable_declarator":
		if name := node.ChildByFieldName("name"); name != nil {
			w.def(nodeText(name, w.ext.content))
		}
		w.walk(node.ChildByFieldName("value"))

	case "field_access":
		// Only the object position can reference a local.
		w.walk(node.ChildByFieldName("object"))

	case "method_invocation":
		w.walk(node.ChildByFieldName("object"))
		w.walk(node.ChildByFieldName("arguments"))

	case "method_reference":
		w.walk(node.NamedChild(0))

	case "lambda_expression":
		// Lambda bodies are opaque to statement-local extraction; their
		// parameter scope is not the method's.

	default:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			w.walk(node.NamedChild(i))
		}
	}
}

func (w *defUseWalker) def(name string) {
	if name == "" {
		return
	}
	w.defs = append(w.defs, name)
}

func (w *defUseWalker) use(name string) {
	if _, ok := w.ext.declared[name]; !ok {
		return
	}
	w.uses = append(w.uses, name)
}
