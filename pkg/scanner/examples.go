package scanner

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/meta"
	"github.com/gnana997/propview/pkg/parser"
)

// jsxUsage is one element occurrence inside an example snippet. Host
// elements are recorded too; containment checks need the full nesting, not
// just the component elements.
type jsxUsage struct {
	Name   string
	Props  map[string]string
	Parent string
	Depth  int
}

// buildExamples turns a component's @example tags into labeled presets and,
// when every example nests the component inside the same outer element,
// promotes that element to a wrapper declaration.
//
// Promotion is deliberately conservative: a single example without wrapper
// data, or two examples disagreeing on the wrapper name, suppresses the
// wrapper entirely rather than guessing.
func buildExamples(componentName string, tags []exampleTag, parsers *parser.Manager) ([]meta.Example, []meta.WrapperComponent) {
	examples := make([]meta.Example, 0, len(tags))

	for i, tag := range tags {
		label := tag.Label
		if label == "" {
			label = fmt.Sprintf("Ex %d", i+1)
		}
		example := meta.Example{Label: label, Props: map[string]string{}}

		if usage, wrapper := snippetUsage(componentName, tag.Code, parsers); usage != nil {
			example.Props = usage.Props
			if wrapper != nil {
				example.Wrapper = wrapper.Name
				example.WrapperProps = wrapper.Props
			}
		}
		examples = append(examples, example)
	}

	return examples, promoteWrapper(examples)
}

// promoteWrapper emits a component-level wrapper when all examples carry
// wrapper data naming the same element. Default attributes follow
// first-write-wins across examples.
func promoteWrapper(examples []meta.Example) []meta.WrapperComponent {
	if len(examples) == 0 {
		return nil
	}
	name := examples[0].Wrapper
	if name == "" {
		return nil
	}
	for _, ex := range examples[1:] {
		if ex.Wrapper != name {
			return nil
		}
	}

	defaults := make(map[string]string)
	for _, ex := range examples {
		for key, value := range ex.WrapperProps {
			if _, exists := defaults[key]; !exists {
				defaults[key] = value
			}
		}
	}
	return []meta.WrapperComponent{{Name: name, Defaults: defaults}}
}

// snippetUsage parses an example snippet with the TSX grammar and locates
// the target component's usage plus its enclosing element, if any.
func snippetUsage(componentName, code string, parsers *parser.Manager) (*jsxUsage, *jsxUsage) {
	if code == "" {
		return nil, nil
	}
	source := []byte(code)
	tree, err := parsers.Parse(source, parser.LanguageTypeScript, true)
	if err != nil {
		return nil, nil
	}
	defer tree.Close()

	var usages []jsxUsage
	var stack []string
	collectJSXUsages(tree.RootNode(), source, &stack, &usages)

	var target *jsxUsage
	for i := range usages {
		if usages[i].Name == componentName {
			target = &usages[i]
			break
		}
	}
	// Wrapper data exists only when the snippet's outermost element directly
	// contains the component. Deeper nesting means the outer element renders
	// other structure around it, which is not a wrapper relationship.
	if target == nil || target.Depth != 1 {
		return target, nil
	}
	for i := range usages {
		u := &usages[i]
		if u.Depth == 0 && u.Name == target.Parent && isUppercase(u.Name) {
			return target, u
		}
	}
	return target, nil
}

// collectJSXUsages walks an AST collecting every element, host tags
// included, with its literal attributes, direct parent tag, and nesting
// depth relative to the snippet's outermost element.
func collectJSXUsages(node *ts.Node, source []byte, stack *[]string, out *[]jsxUsage) {
	switch node.Kind() {
	case "jsx_element":
		var tag string
		var props map[string]string
		if opening := childByKind(node, "jsx_opening_element"); opening != nil {
			tag, props = tagAndLiteralProps(opening, source)
		}
		if tag != "" {
			*out = append(*out, jsxUsage{Name: tag, Props: props, Parent: nearestParent(*stack), Depth: len(*stack)})
			*stack = append(*stack, tag)
		}
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Kind() != "jsx_opening_element" && child.Kind() != "jsx_closing_element" {
				collectJSXUsages(child, source, stack, out)
			}
		}
		if tag != "" {
			*stack = (*stack)[:len(*stack)-1]
		}
		return

	case "jsx_self_closing_element":
		tag, props := tagAndLiteralProps(node, source)
		if tag != "" {
			*out = append(*out, jsxUsage{Name: tag, Props: props, Parent: nearestParent(*stack), Depth: len(*stack)})
		}
		return
	}

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		collectJSXUsages(node.Child(i), source, stack, out)
	}
}

// tagAndLiteralProps reads an opening or self-closing element: the tag name
// and its statically literal attributes. String values are unquoted,
// boolean shorthand becomes "true", expression values are omitted.
func tagAndLiteralProps(node *ts.Node, source []byte) (string, map[string]string) {
	var tag string
	props := make(map[string]string)

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "member_expression", "nested_identifier":
			if tag == "" {
				tag = child.Utf8Text(source)
			}
		case "jsx_attribute":
			if name, value, ok := literalAttribute(child, source); ok {
				props[name] = value
			}
		}
	}
	return tag, props
}

func literalAttribute(attr *ts.Node, source []byte) (string, string, bool) {
	var name string
	hasValue := false
	value := ""

	for i := uint(0); i < uint(attr.ChildCount()); i++ {
		child := attr.Child(i)
		switch child.Kind() {
		case "property_identifier":
			name = child.Utf8Text(source)
		case "string":
			hasValue = true
			value = stringContent(child, source)
		case "jsx_expression":
			// Expression attributes cannot be rendered as literals.
			return "", "", false
		}
	}
	if name == "" {
		return "", "", false
	}
	if !hasValue {
		value = "true"
	}
	return name, value, true
}

// stringContent returns the text inside a string node without quotes.
func stringContent(node *ts.Node, source []byte) string {
	if fragment := childByKind(node, "string_fragment"); fragment != nil {
		return fragment.Utf8Text(source)
	}
	return unquote(node.Utf8Text(source))
}

func nearestParent(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}
