package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// countUsages tallies how often each component name appears as a JSX
// element in one parsed file. Host elements (lowercase tags) are ignored.
func countUsages(root *ts.Node, source []byte, counts map[string]int) {
	switch root.Kind() {
	case "jsx_element":
		if opening := childByKind(root, "jsx_opening_element"); opening != nil {
			if tag := elementTagName(opening, source); isUppercase(tag) {
				counts[tag]++
			}
		}
	case "jsx_self_closing_element":
		if tag := elementTagName(root, source); isUppercase(tag) {
			counts[tag]++
		}
	}
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		countUsages(root.Child(i), source, counts)
	}
}

func elementTagName(node *ts.Node, source []byte) string {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "member_expression", "nested_identifier":
			return child.Utf8Text(source)
		}
	}
	return ""
}
