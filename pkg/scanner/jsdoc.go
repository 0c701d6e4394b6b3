package scanner

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/extractor"
)

// exampleTag is one @example block lifted from a JSDoc comment: an optional
// label from the tag line and the JSX snippet that follows.
type exampleTag struct {
	Label string
	Code  string
}

// componentDoc is the parsed JSDoc comment attached to a component
// declaration.
type componentDoc struct {
	Description string
	Examples    []exampleTag
}

// docForComponent finds and parses the JSDoc block directly preceding a
// component's top-level declaration.
func docForComponent(root *ts.Node, sym *extractor.Symbol, source []byte) componentDoc {
	target := nodeAt(root, sym.Location)
	if target == nil {
		return componentDoc{}
	}
	// Walk up to the top-level statement; the doc comment is its previous
	// sibling in the program node.
	for target.Parent() != nil && target.Parent().Kind() != "program" {
		target = target.Parent()
	}

	program := target.Parent()
	if program == nil {
		return componentDoc{}
	}
	for i := uint(0); i < uint(program.ChildCount()); i++ {
		child := program.Child(i)
		if child.StartByte() != target.StartByte() || child.EndByte() != target.EndByte() {
			continue
		}
		if i == 0 {
			break
		}
		prev := program.Child(i - 1)
		if prev.Kind() == "comment" {
			text := prev.Utf8Text(source)
			if strings.HasPrefix(text, "/**") {
				return parseJSDoc(text)
			}
		}
		break
	}
	return componentDoc{}
}

// precedingComment returns the JSDoc or line-comment description attached
// to the body child at the given index, looking at the immediately
// preceding sibling.
func precedingComment(body *ts.Node, index uint, source []byte) string {
	if index == 0 {
		return ""
	}
	// Scan backwards past separator tokens; stop at the previous member so
	// its trailing comment is not claimed twice.
	for i := int(index) - 1; i >= 0; i-- {
		prev := body.Child(uint(i))
		if prev == nil {
			break
		}
		switch prev.Kind() {
		case "comment":
			return parseJSDoc(prev.Utf8Text(source)).Description
		case "property_signature", "index_signature", "method_signature":
			return ""
		}
	}
	return ""
}

// parseJSDoc splits a comment into a free-text description and its
// @example tags. Lines under an @example accumulate as that example's
// snippet until the next tag; other tags are skipped.
func parseJSDoc(comment string) componentDoc {
	comment = strings.TrimSpace(comment)

	if strings.HasPrefix(comment, "//") {
		return componentDoc{Description: strings.TrimSpace(strings.TrimPrefix(comment, "//"))}
	}
	comment = strings.TrimPrefix(comment, "/**")
	comment = strings.TrimPrefix(comment, "/*")
	comment = strings.TrimSuffix(comment, "*/")

	var doc componentDoc
	var descParts []string
	var current *exampleTag
	var snippet []string

	flush := func() {
		if current != nil {
			current.Code = strings.TrimSpace(strings.Join(snippet, "\n"))
			doc.Examples = append(doc.Examples, *current)
			current = nil
			snippet = nil
		}
	}

	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		if len(line) > 0 && line[0] == ' ' {
			line = line[1:]
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "@example"):
			flush()
			label := strings.TrimSpace(strings.TrimPrefix(trimmed, "@example"))
			current = &exampleTag{Label: label}

		case strings.HasPrefix(trimmed, "@"):
			// Any other tag ends the current example and is dropped.
			flush()

		case current != nil:
			snippet = append(snippet, line)

		case trimmed != "":
			descParts = append(descParts, trimmed)
		}
	}
	flush()

	doc.Description = strings.Join(descParts, " ")
	return doc
}
