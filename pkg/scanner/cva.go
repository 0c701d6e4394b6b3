package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/meta"
)

// cvaVariantSet is the variant schema declared by one cva() call: each
// variant key becomes an optional enum prop whose allowed values are the
// keys of its value object, with defaults taken from defaultVariants.
type cvaVariantSet struct {
	// VariableName is the variable the call is assigned to, e.g.
	// "buttonVariants". Empty when the call is not assigned.
	VariableName string
	Fields       []meta.Field
	Defaults     map[string]string
}

// extractCVASets finds every cva() call in a file and parses its variant
// configuration. Calls without a variants block are skipped.
func extractCVASets(root *ts.Node, source []byte) []cvaVariantSet {
	var calls []*ts.Node
	findCVACalls(root, source, &calls)

	var sets []cvaVariantSet
	for _, call := range calls {
		fields, defaults := parseCVAConfig(call, source)
		if len(fields) == 0 {
			continue
		}
		sets = append(sets, cvaVariantSet{
			VariableName: cvaVariableName(call, source),
			Fields:       fields,
			Defaults:     defaults,
		})
	}
	return sets
}

func findCVACalls(node *ts.Node, source []byte, out *[]*ts.Node) {
	if node.Kind() == "call_expression" && callee(node, source) == "cva" {
		*out = append(*out, node)
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		findCVACalls(node.Child(i), source, out)
	}
}

// cvaVariableName walks up from the call to the variable_declarator it
// initializes.
func cvaVariableName(call *ts.Node, source []byte) string {
	for node := call.Parent(); node != nil; node = node.Parent() {
		switch node.Kind() {
		case "variable_declarator":
			if name := node.ChildByFieldName("name"); name != nil {
				return name.Utf8Text(source)
			}
			return ""
		case "lexical_declaration", "variable_declaration", "export_statement", "program":
			return ""
		}
	}
	return ""
}

// parseCVAConfig reads the second argument of a cva() call, the options
// object carrying "variants" and "defaultVariants". Fields come back in
// declaration order.
func parseCVAConfig(call *ts.Node, source []byte) ([]meta.Field, map[string]string) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil, nil
	}
	options := nthArgument(args, 1)
	if options == nil || options.Kind() != "object" {
		return nil, nil
	}

	var fields []meta.Field
	defaults := make(map[string]string)
	for i := uint(0); i < uint(options.ChildCount()); i++ {
		pair := options.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		switch unquote(key.Utf8Text(source)) {
		case "variants":
			fields = variantFields(value, source)
		case "defaultVariants":
			collectDefaultVariants(value, source, defaults)
		}
	}
	return fields, defaults
}

// nthArgument returns the nth real argument of an arguments node, skipping
// punctuation children.
func nthArgument(args *ts.Node, n int) *ts.Node {
	seen := 0
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",":
			continue
		}
		if seen == n {
			return child
		}
		seen++
	}
	return nil
}

// variantFields turns the variants object into enum fields: one per variant
// key, allowed values taken from the keys of its value object.
func variantFields(variants *ts.Node, source []byte) []meta.Field {
	if variants.Kind() != "object" {
		return nil
	}
	var fields []meta.Field
	for i := uint(0); i < uint(variants.ChildCount()); i++ {
		pair := variants.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil || value.Kind() != "object" {
			continue
		}

		var values []string
		for j := uint(0); j < uint(value.ChildCount()); j++ {
			entry := value.Child(j)
			if entry.Kind() != "pair" {
				continue
			}
			if entryKey := entry.ChildByFieldName("key"); entryKey != nil {
				values = append(values, unquote(entryKey.Utf8Text(source)))
			}
		}
		if len(values) == 0 {
			continue
		}
		fields = append(fields, meta.Field{
			Name: unquote(key.Utf8Text(source)),
			Type: meta.TypeInfo{
				Kind:   meta.KindEnum,
				Raw:    "'" + strings.Join(values, "' | '") + "'",
				Values: values,
			},
			Required: false,
		})
	}
	return fields
}

func collectDefaultVariants(node *ts.Node, source []byte, defaults map[string]string) {
	if node.Kind() != "object" {
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		pair := node.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		defaults[unquote(key.Utf8Text(source))] = unquote(value.Utf8Text(source))
	}
}

// matchCVASet selects the variant set feeding a component's props. An
// explicit VariantProps<typeof X> reference wins; without one, a lone cva()
// call in a file with a lone component is attached to it.
func matchCVASet(comp DetectedComponent, root *ts.Node, source []byte, sets []cvaVariantSet, componentsInFile int) *cvaVariantSet {
	if len(sets) == 0 {
		return nil
	}
	if ref := cvaReference(comp, root, source); ref != "" {
		for i := range sets {
			if sets[i].VariableName == ref {
				return &sets[i]
			}
		}
		return nil
	}
	if len(sets) == 1 && componentsInFile == 1 {
		return &sets[0]
	}
	return nil
}

// cvaReference finds the variable named by a VariantProps<typeof X>
// reference in the component's props type declaration or parameter
// annotation.
func cvaReference(comp DetectedComponent, root *ts.Node, source []byte) string {
	if comp.PropsRef != nil && comp.PropsRef.Symbol != nil {
		if decl := nodeAt(root, comp.PropsRef.Symbol.Location); decl != nil {
			if ref := variantPropsTarget(decl, source); ref != "" {
				return ref
			}
		}
	}
	if fn := componentFunction(comp, root, source); fn != nil {
		if params := fn.ChildByFieldName("parameters"); params != nil {
			return variantPropsTarget(params, source)
		}
	}
	return ""
}

// variantPropsTarget searches a subtree for VariantProps<typeof X> and
// returns X.
func variantPropsTarget(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "generic_type" {
		name := node.ChildByFieldName("name")
		if name != nil && name.Utf8Text(source) == "VariantProps" {
			if target := typeQueryIdentifier(node, source); target != "" {
				return target
			}
		}
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if target := variantPropsTarget(node.Child(i), source); target != "" {
			return target
		}
	}
	return ""
}

func typeQueryIdentifier(generic *ts.Node, source []byte) string {
	typeArgs := childByKind(generic, "type_arguments")
	if typeArgs == nil {
		return ""
	}
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		query := typeArgs.Child(i)
		if query.Kind() != "type_query" {
			continue
		}
		if ident := childByKind(query, "identifier"); ident != nil {
			return ident.Utf8Text(source)
		}
	}
	return ""
}

// mergeCVAFields layers a variant set over the declared fields. A declared
// field keeps its description and required flag but gains the enum type
// when its declaration carried no value set; variants absent from the
// declaration are appended as optional props.
func mergeCVAFields(fields []meta.Field, variants []meta.Field) []meta.Field {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	for _, v := range variants {
		if i, ok := index[v.Name]; ok {
			if fields[i].Type.Kind != meta.KindEnum {
				fields[i].Type = v.Type
			}
			continue
		}
		fields = append(fields, v)
	}
	return fields
}
