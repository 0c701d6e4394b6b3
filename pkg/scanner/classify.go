package scanner

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/meta"
)

// Icon-component type aliases recognized as icon slots. A named type ending
// in "Icon" also qualifies.
var iconTypeAliases = map[string]bool{
	"LucideIcon":    true,
	"IconType":      true,
	"ComponentType": true,
	"ElementType":   true,
}

// typeResolver classifies type expressions for one file. Named-type
// expansions are cached across files in the run-owned LRU so `Foo` and
// `Foo[]` (and repeated uses across components) resolve once.
type typeResolver struct {
	filePath string
	source   []byte
	named    map[string]*ts.Node
	cache    *lru.Cache[string, []meta.Field]
	visiting map[string]bool
}

// newTypeResolver indexes the named interface/type-alias declarations of a
// parsed file.
func newTypeResolver(root *ts.Node, source []byte, filePath string, cache *lru.Cache[string, []meta.Field]) *typeResolver {
	r := &typeResolver{
		filePath: filePath,
		source:   source,
		named:    make(map[string]*ts.Node),
		cache:    cache,
		visiting: make(map[string]bool),
	}
	r.indexDeclarations(root)
	return r
}

func (r *typeResolver) indexDeclarations(root *ts.Node) {
	for i := uint(0); i < uint(root.ChildCount()); i++ {
		child := root.Child(i)
		node := child
		if node.Kind() == "export_statement" {
			if decl := childByKind(node, "interface_declaration"); decl != nil {
				node = decl
			} else if decl := childByKind(node, "type_alias_declaration"); decl != nil {
				node = decl
			}
		}
		switch node.Kind() {
		case "interface_declaration", "type_alias_declaration":
			if name := node.ChildByFieldName("name"); name != nil {
				r.named[name.Utf8Text(r.source)] = node
			}
		}
	}
}

// classify turns a type expression node into its metadata classification.
// The rules cascade: component-slot, enum, array, object, map, primitive,
// with everything unmatched passed through opaquely.
func (r *typeResolver) classify(node *ts.Node) meta.TypeInfo {
	if node == nil {
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}
	info := r.classifyInner(node)
	if info.Raw == "" {
		info.Raw = node.Utf8Text(r.source)
	}
	return info
}

func (r *typeResolver) classifyInner(node *ts.Node) meta.TypeInfo {
	switch node.Kind() {
	case "parenthesized_type":
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Kind() != "(" && child.Kind() != ")" {
				return r.classifyInner(child)
			}
		}
		return meta.TypeInfo{Kind: meta.KindOpaque}

	case "predefined_type":
		switch node.Utf8Text(r.source) {
		case "string":
			return meta.TypeInfo{Kind: meta.KindString}
		case "number":
			return meta.TypeInfo{Kind: meta.KindNumber}
		case "boolean":
			return meta.TypeInfo{Kind: meta.KindBoolean}
		}
		return meta.TypeInfo{Kind: meta.KindOpaque}

	case "literal_type":
		return classifyLiteral(node.Utf8Text(r.source))

	case "union_type":
		return r.classifyUnion(node)

	case "array_type":
		return r.classifyArrayElement(arrayElementNode(node))

	case "object_type":
		return r.classifyObjectType(node)

	case "type_identifier":
		return r.classifyNamed(node.Utf8Text(r.source))

	case "nested_type_identifier", "member_expression":
		name := strings.TrimPrefix(node.Utf8Text(r.source), "React.")
		if slot, ok := slotFor(name); ok {
			return meta.TypeInfo{Kind: meta.KindComponent, Slot: slot}
		}
		return meta.TypeInfo{Kind: meta.KindOpaque}

	case "generic_type":
		return r.classifyGeneric(node)

	case "function_type":
		return meta.TypeInfo{Kind: meta.KindOpaque}

	default:
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}
}

// classifyNamed resolves a bare type name: component-slot aliases first,
// then local declaration expansion into a structured object.
func (r *typeResolver) classifyNamed(name string) meta.TypeInfo {
	name = strings.TrimPrefix(name, "React.")
	if slot, ok := slotFor(name); ok {
		return meta.TypeInfo{Kind: meta.KindComponent, Slot: slot}
	}
	if fields, ok := r.expandNamed(name); ok {
		return meta.TypeInfo{Kind: meta.KindObject, Fields: fields}
	}
	return meta.TypeInfo{Kind: meta.KindOpaque}
}

// slotFor maps recognized component-shaped type names to their slot kind.
func slotFor(name string) (meta.SlotKind, bool) {
	switch {
	case iconTypeAliases[name] || strings.HasSuffix(name, "Icon"):
		return meta.SlotIcon, true
	case name == "ReactElement" || name == "JSX.Element" || name == "Element":
		return meta.SlotElement, true
	case name == "ReactNode":
		return meta.SlotNode, true
	}
	return "", false
}

// expandNamed resolves a locally declared interface or object type alias
// into its field list. Expansion recurses to arbitrary depth; a cycle bails
// out so the referencing field degrades to opaque.
func (r *typeResolver) expandNamed(name string) ([]meta.Field, bool) {
	cacheKey := r.filePath + "#" + name
	if fields, ok := r.cache.Get(cacheKey); ok {
		return fields, true
	}
	if r.visiting[name] {
		return nil, false
	}

	decl, ok := r.named[name]
	if !ok {
		return nil, false
	}

	var body *ts.Node
	switch decl.Kind() {
	case "interface_declaration":
		body = childByKind(decl, "interface_body")
		if body == nil {
			body = childByKind(decl, "object_type")
		}
	case "type_alias_declaration":
		value := decl.ChildByFieldName("value")
		if value != nil && value.Kind() == "object_type" {
			body = value
		}
	}
	if body == nil {
		return nil, false
	}

	r.visiting[name] = true
	fields := r.fieldsFromBody(body)
	delete(r.visiting, name)

	r.cache.Add(cacheKey, fields)
	return fields, true
}

// fieldsFromBody extracts the field descriptors of an interface_body or
// object_type node. Shared by named expansion and inline object types so
// both produce the identical shape.
func (r *typeResolver) fieldsFromBody(body *ts.Node) []meta.Field {
	var fields []meta.Field
	for i := uint(0); i < uint(body.ChildCount()); i++ {
		child := body.Child(i)
		if child.Kind() != "property_signature" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}

		field := meta.Field{
			Name:     name.Utf8Text(r.source),
			Required: !signatureOptional(child),
			Type:     meta.TypeInfo{Kind: meta.KindOpaque},
		}
		if typeNode := signatureTypeNode(child); typeNode != nil {
			typeNode = r.stripUndefined(typeNode, &field.Required)
			field.Type = r.classify(typeNode)
		}
		if desc := precedingComment(body, i, r.source); desc != "" {
			field.Description = desc
		}
		fields = append(fields, field)
	}
	return fields
}

// classifyObjectType distinguishes key-value maps (index signatures only)
// from structured objects.
func (r *typeResolver) classifyObjectType(node *ts.Node) meta.TypeInfo {
	hasIndex := false
	hasProps := false
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		switch node.Child(i).Kind() {
		case "index_signature":
			hasIndex = true
		case "property_signature":
			hasProps = true
		}
	}
	if hasIndex && !hasProps {
		return meta.TypeInfo{Kind: meta.KindMap}
	}
	return meta.TypeInfo{Kind: meta.KindObject, Fields: r.fieldsFromBody(node)}
}

// classifyArrayElement wraps the element classification. Named object
// element types expand through the same routine as their non-array uses.
func (r *typeResolver) classifyArrayElement(element *ts.Node) meta.TypeInfo {
	if element == nil {
		return meta.TypeInfo{Kind: meta.KindArray, Item: &meta.TypeInfo{Kind: meta.KindOpaque}}
	}
	item := r.classify(element)
	return meta.TypeInfo{Kind: meta.KindArray, Item: &item}
}

func (r *typeResolver) classifyGeneric(node *ts.Node) meta.TypeInfo {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}
	name := strings.TrimPrefix(nameNode.Utf8Text(r.source), "React.")

	if slot, ok := slotFor(name); ok {
		return meta.TypeInfo{Kind: meta.KindComponent, Slot: slot}
	}

	args := typeArgumentNodes(node)
	switch name {
	case "Array", "ReadonlyArray":
		if len(args) == 1 {
			return r.classifyArrayElement(args[0])
		}
	case "Record":
		if len(args) == 2 {
			return meta.TypeInfo{Kind: meta.KindMap}
		}
	}
	return meta.TypeInfo{Kind: meta.KindOpaque}
}

// classifyUnion handles union types. Multi-member unions parse as
// left-recursive binary trees, so members are flattened first. Undefined
// and null members only affect requiredness and are dropped by the caller
// before classification; they are skipped here for inline safety.
func (r *typeResolver) classifyUnion(node *ts.Node) meta.TypeInfo {
	members := flattenUnion(node)

	var effective []*ts.Node
	for _, m := range members {
		if isUndefinedOrNull(m, r.source) {
			continue
		}
		effective = append(effective, m)
	}
	if len(effective) == 0 {
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}
	if len(effective) == 1 {
		return r.classifyInner(effective[0])
	}

	var values []string
	allString := true
	boolLiterals := make(map[string]bool)
	for _, m := range effective {
		if m.Kind() != "literal_type" {
			return meta.TypeInfo{Kind: meta.KindOpaque}
		}
		text := m.Utf8Text(r.source)
		if text == "true" || text == "false" {
			boolLiterals[text] = true
			allString = false
			continue
		}
		if !isStringLiteral(text) {
			allString = false
			continue
		}
		values = append(values, unquote(text))
	}

	// The literal-boolean union normalizes to the primitive.
	if len(boolLiterals) == 2 && len(values) == 0 {
		return meta.TypeInfo{Kind: meta.KindBoolean}
	}
	if !allString || len(values) == 0 {
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}

	return meta.TypeInfo{Kind: meta.KindEnum, Values: dedupeOrdered(values)}
}

// stripUndefined removes undefined/null members from a union type node's
// classification input by checking membership; when present, the prop is
// optional. Returns the node unchanged (member filtering happens inside
// classifyUnion); only the required flag is adjusted here.
func (r *typeResolver) stripUndefined(node *ts.Node, required *bool) *ts.Node {
	if node.Kind() != "union_type" {
		return node
	}
	for _, m := range flattenUnion(node) {
		if isUndefinedOrNull(m, r.source) {
			*required = false
		}
	}
	return node
}

func isUndefinedOrNull(node *ts.Node, source []byte) bool {
	switch node.Kind() {
	case "predefined_type":
		return node.Utf8Text(source) == "undefined"
	case "literal_type":
		text := node.Utf8Text(source)
		return text == "null" || text == "undefined"
	}
	return node.Utf8Text(source) == "undefined" || node.Utf8Text(source) == "null"
}

// flattenUnion flattens a binary union tree into its leaf member nodes.
func flattenUnion(node *ts.Node) []*ts.Node {
	if node == nil {
		return nil
	}
	if node.Kind() != "union_type" {
		return []*ts.Node{node}
	}
	var members []*ts.Node
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == "|" {
			continue
		}
		members = append(members, flattenUnion(child)...)
	}
	return members
}

func classifyLiteral(text string) meta.TypeInfo {
	switch {
	case isStringLiteral(text):
		return meta.TypeInfo{Kind: meta.KindEnum, Values: []string{unquote(text)}}
	case text == "true" || text == "false":
		return meta.TypeInfo{Kind: meta.KindBoolean}
	case len(text) > 0 && (text[0] >= '0' && text[0] <= '9' || text[0] == '-'):
		return meta.TypeInfo{Kind: meta.KindNumber}
	default:
		return meta.TypeInfo{Kind: meta.KindOpaque}
	}
}

// arrayElementNode returns the element type of a T[] node.
func arrayElementNode(node *ts.Node) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() != "[" && child.Kind() != "]" {
			return child
		}
	}
	return nil
}

// typeArgumentNodes returns the type expressions inside a generic's <...>.
func typeArgumentNodes(node *ts.Node) []*ts.Node {
	typeArgs := node.ChildByFieldName("type_arguments")
	if typeArgs == nil {
		typeArgs = childByKind(node, "type_arguments")
	}
	if typeArgs == nil {
		return nil
	}
	var args []*ts.Node
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		child := typeArgs.Child(i)
		switch child.Kind() {
		case "<", ">", ",":
			continue
		}
		args = append(args, child)
	}
	return args
}

// signatureOptional reports whether a property_signature carries the "?"
// optional marker.
func signatureOptional(sig *ts.Node) bool {
	for i := uint(0); i < uint(sig.ChildCount()); i++ {
		if sig.Child(i).Kind() == "?" {
			return true
		}
	}
	return false
}

// signatureTypeNode unwraps the type expression of a property_signature.
func signatureTypeNode(sig *ts.Node) *ts.Node {
	typeAnno := sig.ChildByFieldName("type")
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

func dedupeOrdered(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
