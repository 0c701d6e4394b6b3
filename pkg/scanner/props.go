package scanner

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/meta"
)

// extractProps resolves a component's prop record into prop metadata and
// the children flag.
//
// The record is assembled from the referenced interface/type alias when one
// is declared locally, merged with any inline object type on the parameter
// annotation; destructuring supplies defaults, a matched cva() variant set
// supplies enum values and defaults the declaration lacks. When nothing
// yields typed fields, the destructured names are surfaced as opaque props
// so the component still previews.
func extractProps(comp DetectedComponent, root *ts.Node, source []byte, resolver *typeResolver, cva *cvaVariantSet, cfg *config.Resolved) (map[string]meta.PropMeta, bool) {
	fields := collectFields(comp, root, source, resolver)

	fn := componentFunction(comp, root, source)
	names, defaults := destructuredParams(fn, source)

	if len(fields) == 0 {
		for _, name := range names {
			fields = append(fields, meta.Field{
				Name:     name,
				Type:     meta.TypeInfo{Kind: meta.KindOpaque},
				Required: false,
			})
		}
	}

	if cva != nil {
		fields = mergeCVAFields(fields, cva.Fields)
		// Destructuring defaults outrank the cva defaultVariants block.
		for name, value := range cva.Defaults {
			if _, ok := defaults[name]; !ok {
				defaults[name] = value
			}
		}
	}

	props := make(map[string]meta.PropMeta, len(fields))
	acceptsChildren := false
	for _, field := range fields {
		if field.Name == "children" {
			acceptsChildren = true
			continue
		}
		if cfg.IsPropFiltered(field.Name) {
			continue
		}

		prop := meta.PropMeta{
			Name:        field.Name,
			Type:        field.Type,
			Required:    field.Required,
			Description: field.Description,
		}
		if def, ok := defaults[field.Name]; ok {
			prop.Required = false
			prop.Default = def
		}
		// Slots resolve to live components at render time; a source-level
		// default would be an unusable expression string.
		if prop.Type.Kind == meta.KindComponent {
			prop.Default = ""
		}
		props[prop.Name] = prop
	}

	return props, acceptsChildren
}

// collectFields gathers the typed field descriptors for a component's prop
// record: the named declaration first, then inline object types from the
// parameter annotation (intersections contribute their object parts).
// Later same-name entries override earlier type info.
func collectFields(comp DetectedComponent, root *ts.Node, source []byte, resolver *typeResolver) []meta.Field {
	var ordered []meta.Field
	index := make(map[string]int)

	add := func(fields []meta.Field) {
		for _, f := range fields {
			if i, ok := index[f.Name]; ok {
				prev := ordered[i]
				if f.Description == "" {
					f.Description = prev.Description
				}
				ordered[i] = f
				continue
			}
			index[f.Name] = len(ordered)
			ordered = append(ordered, f)
		}
	}

	if comp.PropsRef != nil && comp.PropsRef.Symbol != nil {
		if fields, ok := resolver.expandNamed(comp.PropsRef.TypeName); ok {
			add(fields)
		}
	}

	fn := componentFunction(comp, root, source)
	if fn != nil {
		if param := firstParameter(fn); param != nil {
			if typeNode := parameterTypeNode(param); typeNode != nil {
				switch typeNode.Kind() {
				case "object_type":
					add(resolver.fieldsFromBody(typeNode))
				case "intersection_type":
					for i := uint(0); i < uint(typeNode.ChildCount()); i++ {
						part := typeNode.Child(i)
						if part.Kind() == "object_type" {
							add(resolver.fieldsFromBody(part))
						}
					}
				}
			}
		}
	}

	return ordered
}

// componentFunction resolves the function-like node carrying the prop
// parameter for any component kind. Class components have no parameter, so
// nil is expected there.
func componentFunction(comp DetectedComponent, root *ts.Node, source []byte) *ts.Node {
	if comp.Kind == ComponentKindClass {
		return nil
	}
	return functionNode(root, comp.Symbol, comp.Kind, source)
}

// destructuredParams reads the first parameter's object pattern: the
// destructured prop names in order, and the literal default each supplies.
func destructuredParams(fn *ts.Node, source []byte) ([]string, map[string]string) {
	defaults := make(map[string]string)
	if fn == nil {
		return nil, defaults
	}
	param := firstParameter(fn)
	if param == nil {
		return nil, defaults
	}

	pattern := param.ChildByFieldName("pattern")
	if pattern == nil {
		pattern = childByKind(param, "object_pattern")
	}
	if pattern == nil || pattern.Kind() != "object_pattern" {
		return nil, defaults
	}

	var names []string
	for i := uint(0); i < uint(pattern.ChildCount()); i++ {
		child := pattern.Child(i)
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			names = append(names, child.Utf8Text(source))

		case "object_assignment_pattern", "assignment_pattern":
			// { variant = "primary" }
			left := child.ChildByFieldName("left")
			right := child.ChildByFieldName("right")
			if left == nil {
				continue
			}
			name := left.Utf8Text(source)
			names = append(names, name)
			if right != nil {
				defaults[name] = literalDefault(right, source)
			}

		case "pair_pattern":
			// { key: localName = value } keeps the key as the prop name.
			key := child.ChildByFieldName("key")
			if key == nil {
				continue
			}
			name := key.Utf8Text(source)
			names = append(names, name)
			value := child.ChildByFieldName("value")
			if value != nil && (value.Kind() == "assignment_pattern" || value.Kind() == "object_assignment_pattern") {
				if right := value.ChildByFieldName("right"); right != nil {
					defaults[name] = literalDefault(right, source)
				}
			}
			// rest_pattern (...rest) passes through, not an explicit prop.
		}
	}

	return names, defaults
}

// literalDefault renders a default-value expression as its literal text,
// unquoting strings.
func literalDefault(node *ts.Node, source []byte) string {
	return unquote(node.Utf8Text(source))
}
