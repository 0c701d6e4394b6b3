package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/extractor"
	"github.com/gnana997/propview/pkg/parser/queries"
)

// nodeAt locates the deepest AST node covering the given byte range.
func nodeAt(root *ts.Node, loc queries.Location) *ts.Node {
	if root == nil {
		return nil
	}
	if uint32(root.StartByte()) > loc.StartByte || uint32(root.EndByte()) < loc.EndByte {
		return nil
	}
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		if uint32(child.StartByte()) <= loc.StartByte && uint32(child.EndByte()) >= loc.EndByte {
			return nodeAt(child, loc)
		}
	}
	return root
}

// containsJSX reports whether any descendant is a JSX element.
func containsJSX(node *ts.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if containsJSX(node.Child(i)) {
			return true
		}
	}
	return false
}

// callee returns the function name of a call_expression, qualified text
// included ("React.forwardRef").
func callee(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "call_expression" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

func isForwardRefCall(node *ts.Node, source []byte) bool {
	name := callee(node, source)
	return name == "forwardRef" || name == "React.forwardRef"
}

func isMemoCall(node *ts.Node, source []byte) bool {
	name := callee(node, source)
	return name == "memo" || name == "React.memo"
}

// variableValue resolves a variable symbol to the initializer expression of
// its variable_declarator.
func variableValue(root *ts.Node, sym *extractor.Symbol, source []byte) *ts.Node {
	node := nodeAt(root, sym.Location)
	for node != nil {
		if node.Kind() == "variable_declarator" {
			return node.ChildByFieldName("value")
		}
		if node.Kind() == "lexical_declaration" {
			for i := uint(0); i < uint(node.ChildCount()); i++ {
				child := node.Child(i)
				if child.Kind() != "variable_declarator" {
					continue
				}
				name := child.ChildByFieldName("name")
				if name != nil && name.Utf8Text(source) == sym.Name {
					return child.ChildByFieldName("value")
				}
			}
		}
		node = node.Parent()
	}
	return nil
}

// functionNode resolves a component symbol to the function-like node whose
// parameters carry the prop record: the declaration itself, the arrow
// initializer, or the callback inside a forwardRef/memo call.
func functionNode(root *ts.Node, sym *extractor.Symbol, kind ComponentKind, source []byte) *ts.Node {
	if sym == nil {
		return nil
	}
	switch kind {
	case ComponentKindFunction:
		node := nodeAt(root, sym.Location)
		for node != nil {
			switch node.Kind() {
			case "function_declaration":
				return node
			case "export_statement":
				if fn := childByKind(node, "function_declaration"); fn != nil {
					return fn
				}
			}
			node = node.Parent()
		}
		if val := variableValue(root, sym, source); val != nil {
			if val.Kind() == "arrow_function" || val.Kind() == "function_expression" {
				return val
			}
		}
	case ComponentKindForwardRef, ComponentKindMemo:
		val := variableValue(root, sym, source)
		if val == nil || val.Kind() != "call_expression" {
			return nil
		}
		args := val.ChildByFieldName("arguments")
		if args == nil {
			return nil
		}
		for i := uint(0); i < uint(args.ChildCount()); i++ {
			child := args.Child(i)
			if child.Kind() == "arrow_function" || child.Kind() == "function_expression" {
				return child
			}
		}
	}
	return nil
}

// classNode resolves a class component symbol to its class_declaration.
func classNode(root *ts.Node, sym *extractor.Symbol) *ts.Node {
	node := nodeAt(root, sym.Location)
	for node != nil {
		switch node.Kind() {
		case "class_declaration", "class":
			return node
		case "export_statement":
			if cls := childByKind(node, "class_declaration"); cls != nil {
				return cls
			}
		}
		node = node.Parent()
	}
	return nil
}

// extendsReactComponent reports whether a class symbol declares a React
// component base class.
func extendsReactComponent(root *ts.Node, sym *extractor.Symbol, source []byte) bool {
	cls := classNode(root, sym)
	if cls == nil {
		return false
	}
	heritage := childByKind(cls, "class_heritage")
	if heritage == nil {
		return false
	}
	text := heritage.Utf8Text(source)
	return strings.Contains(text, "Component") || strings.Contains(text, "PureComponent")
}

// firstParameter returns the first required or optional parameter node of a
// function-like node.
func firstParameter(fn *ts.Node) *ts.Node {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := uint(0); i < uint(params.ChildCount()); i++ {
		child := params.Child(i)
		if child.Kind() == "required_parameter" || child.Kind() == "optional_parameter" {
			return child
		}
	}
	return nil
}

// parameterTypeNode returns the type expression annotating a parameter,
// unwrapping the type_annotation node.
func parameterTypeNode(param *ts.Node) *ts.Node {
	typeAnno := param.ChildByFieldName("type")
	if typeAnno == nil {
		return nil
	}
	for i := uint(0); i < uint(typeAnno.ChildCount()); i++ {
		child := typeAnno.Child(i)
		if child.Kind() != ":" {
			return child
		}
	}
	return nil
}

// firstTypeIdentifier finds the first type_identifier in a type expression,
// depth first.
func firstTypeIdentifier(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "type_identifier" {
		return node.Utf8Text(source)
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if name := firstTypeIdentifier(node.Child(i), source); name != "" {
			return name
		}
	}
	return ""
}

func childByKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func isStringLiteral(s string) bool {
	return (strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) ||
		(strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")) ||
		(strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`"))
}

func unquote(s string) string {
	if isStringLiteral(s) && len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
