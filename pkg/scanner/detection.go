package scanner

import (
	"log/slog"
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/extractor"
)

// detectComponents classifies the exported symbols of one parsed file into
// component declarations. Only uppercase, exported function/variable/class
// symbols qualify; function bodies must produce JSX. Rejections carry a
// reason so the heuristic stays inspectable in one place.
func detectComponents(root *ts.Node, source []byte, fer *fileResult, logger *slog.Logger) []DetectedComponent {
	if fer.Result == nil {
		return nil
	}

	symbolByName := make(map[string]*extractor.Symbol, len(fer.Result.Symbols))
	for i := range fer.Result.Symbols {
		symbolByName[fer.Result.Symbols[i].Name] = &fer.Result.Symbols[i]
	}

	var components []DetectedComponent
	seen := make(map[string]bool)

	consider := func(sym *extractor.Symbol, isDefault bool) {
		if sym == nil || seen[sym.Name] || !isUppercase(sym.Name) {
			return
		}
		seen[sym.Name] = true
		comp, reason := classifyCandidate(sym, root, source, fer)
		if comp == nil {
			if logger != nil {
				logger.Debug("not a component", "file", fer.FilePath, "symbol", sym.Name, "reason", reason)
			}
			return
		}
		comp.IsDefaultExport = isDefault
		components = append(components, *comp)
	}

	// Directly exported declarations first, then export lists referencing
	// earlier non-exported declarations (`const Input = forwardRef(...);
	// export { Input }` marks Input exported through the list).
	for i := range fer.Result.Symbols {
		sym := &fer.Result.Symbols[i]
		if sym.Exported {
			consider(sym, isDefaultExport(sym.Name, fer.Result.Exports))
		}
	}
	for _, exp := range fer.Result.Exports {
		if sym, ok := symbolByName[exp.Name]; ok {
			consider(sym, exp.IsDefault)
		}
	}

	return components
}

func isDefaultExport(name string, exports []extractor.ExportInfo) bool {
	for _, exp := range exports {
		if exp.Name == name && exp.IsDefault {
			return true
		}
	}
	return false
}

func isUppercase(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

// classifyCandidate decides whether a symbol declares a component and how.
// A nil component comes with the rejection reason.
func classifyCandidate(sym *extractor.Symbol, root *ts.Node, source []byte, fer *fileResult) (*DetectedComponent, string) {
	var kind ComponentKind

	switch sym.Kind {
	case extractor.SymbolKindFunction:
		fn := functionNode(root, sym, ComponentKindFunction, source)
		if fn == nil {
			return nil, "function declaration not found"
		}
		if !containsJSX(fn.ChildByFieldName("body")) {
			return nil, "function body produces no JSX"
		}
		kind = ComponentKindFunction

	case extractor.SymbolKindVariable:
		val := variableValue(root, sym, source)
		if val == nil {
			return nil, "variable has no initializer"
		}
		switch {
		case val.Kind() == "call_expression" && isForwardRefCall(val, source):
			kind = ComponentKindForwardRef
		case val.Kind() == "call_expression" && isMemoCall(val, source):
			kind = ComponentKindMemo
		case val.Kind() == "arrow_function" || val.Kind() == "function_expression":
			if !containsJSX(val.ChildByFieldName("body")) {
				return nil, "function body produces no JSX"
			}
			kind = ComponentKindFunction
		case val.Kind() == "parenthesized_expression" && containsJSX(val):
			kind = ComponentKindFunction
		default:
			return nil, "initializer is not a component expression"
		}

	case extractor.SymbolKindClass:
		if !extendsReactComponent(root, sym, source) {
			return nil, "class does not extend a component base"
		}
		kind = ComponentKindClass

	default:
		return nil, "not a function, variable, or class"
	}

	comp := &DetectedComponent{
		Name:     sym.Name,
		FilePath: fer.FilePath,
		Kind:     kind,
		Symbol:   sym,
	}

	if typeName := propsTypeName(root, sym, kind, source); typeName != "" {
		comp.PropsRef = &PropsRef{
			TypeName: typeName,
			Symbol:   matchPropsSymbol(typeName, fer.Result.Symbols),
		}
	}

	return comp, ""
}

// propsTypeName extracts the name of the prop record type a component
// declaration references.
func propsTypeName(root *ts.Node, sym *extractor.Symbol, kind ComponentKind, source []byte) string {
	switch kind {
	case ComponentKindFunction, ComponentKindMemo:
		return paramPropsTypeName(functionNode(root, sym, kind, source), source)
	case ComponentKindForwardRef:
		if name := forwardRefPropsTypeName(root, sym, source); name != "" {
			return name
		}
		return paramPropsTypeName(functionNode(root, sym, kind, source), source)
	case ComponentKindClass:
		cls := classNode(root, sym)
		if cls == nil {
			return ""
		}
		// extends React.Component<Props> names the record in the heritage
		// type arguments.
		if heritage := childByKind(cls, "class_heritage"); heritage != nil {
			return firstTypeIdentifier(heritage, source)
		}
	}
	return ""
}

func paramPropsTypeName(fn *ts.Node, source []byte) string {
	if fn == nil {
		return ""
	}
	param := firstParameter(fn)
	if param == nil {
		return ""
	}
	typeNode := parameterTypeNode(param)
	if typeNode == nil {
		return ""
	}
	switch typeNode.Kind() {
	case "type_identifier":
		return typeNode.Utf8Text(source)
	case "intersection_type", "union_type":
		return firstTypeIdentifier(typeNode, source)
	}
	return ""
}

// forwardRefPropsTypeName reads forwardRef<Element, Props>(...): the second
// type argument names the prop record.
func forwardRefPropsTypeName(root *ts.Node, sym *extractor.Symbol, source []byte) string {
	val := variableValue(root, sym, source)
	if val == nil || val.Kind() != "call_expression" {
		return ""
	}
	typeArgs := childByKind(val, "type_arguments")
	if typeArgs == nil {
		return ""
	}
	index := 0
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		child := typeArgs.Child(i)
		switch child.Kind() {
		case "type_identifier", "generic_type":
			index++
			if index == 2 {
				if child.Kind() == "type_identifier" {
					return child.Utf8Text(source)
				}
				return firstTypeIdentifier(child, source)
			}
		}
	}
	return ""
}

// matchPropsSymbol finds the local interface/type declaration for a name.
func matchPropsSymbol(typeName string, symbols []extractor.Symbol) *extractor.Symbol {
	for i := range symbols {
		s := &symbols[i]
		if s.Name != typeName {
			continue
		}
		if s.Kind == extractor.SymbolKindInterface || s.Kind == extractor.SymbolKindTypeAlias {
			return s
		}
	}
	return nil
}
