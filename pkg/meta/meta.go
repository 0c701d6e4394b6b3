// Package meta defines the serializable component metadata model produced by
// an extraction run and consumed by the preview renderer.
package meta

import "time"

// PropKind classifies the editable shape of a prop or structured field.
type PropKind string

const (
	KindString    PropKind = "string"
	KindNumber    PropKind = "number"
	KindBoolean   PropKind = "boolean"
	KindEnum      PropKind = "enum"
	KindArray     PropKind = "array"
	KindObject    PropKind = "object"
	KindMap       PropKind = "map"
	KindComponent PropKind = "component"
	// KindOpaque marks types no classification rule matched (functions,
	// unknown generics). Opaque props are carried through, never dropped,
	// but the renderer treats them as non-editable.
	KindOpaque PropKind = "opaque"
)

// SlotKind is the sub-kind of a component-slot prop.
type SlotKind string

const (
	// SlotIcon is an icon-component type (icon constructors).
	SlotIcon SlotKind = "icon"
	// SlotElement is a concrete JSX element type.
	SlotElement SlotKind = "element"
	// SlotNode is the generic renderable-content type.
	SlotNode SlotKind = "node"
)

// TypeInfo is the recursive classification shape shared by top-level props,
// array items, and structured fields.
type TypeInfo struct {
	Kind PropKind `json:"kind"`
	// Raw is the original type text, kept for plugin matching.
	Raw string `json:"raw,omitempty"`
	// Values is the literal set of an enum, in declaration order.
	Values []string `json:"values,omitempty"`
	// Item is the classified element type of an array.
	Item *TypeInfo `json:"item,omitempty"`
	// Fields is the expanded member list of a structured object.
	Fields []Field `json:"fields,omitempty"`
	// Slot is the sub-kind of a component-slot.
	Slot SlotKind `json:"slot,omitempty"`
}

// Field is one named, typed member of an expanded object or array-item type.
type Field struct {
	Name        string   `json:"name"`
	Type        TypeInfo `json:"type"`
	Required    bool     `json:"required"`
	Description string   `json:"description,omitempty"`
}

// PropMeta describes a single component prop.
type PropMeta struct {
	Name     string   `json:"name"`
	Type     TypeInfo `json:"type"`
	Required bool     `json:"required"`
	// Default is the statically literal default value, if one exists.
	// Component-slots never carry a default; the renderer resolves them.
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Example is one labeled preset extracted from a JSDoc @example tag.
type Example struct {
	Label string `json:"label"`
	// Props holds the literal JSX attribute values of the component in the
	// snippet; expression attributes are omitted.
	Props map[string]string `json:"props"`
	// Wrapper is the enclosing element name when the snippet nests the
	// component inside another element; empty otherwise.
	Wrapper string `json:"wrapper,omitempty"`
	// WrapperProps holds the enclosing element's literal attributes.
	WrapperProps map[string]string `json:"wrapper_props,omitempty"`
}

// WrapperComponent is an outer element every example agreed on, promoted to
// a component-level declaration with its literal attributes as defaults.
type WrapperComponent struct {
	Name     string            `json:"name"`
	Defaults map[string]string `json:"defaults"`
}

// ComponentMeta is the full extracted description of one component.
// The display name is the unique key within a run.
type ComponentMeta struct {
	Name string `json:"name"`
	// FilePath is relative to the project root, slash-separated.
	FilePath    string              `json:"file_path"`
	Description string              `json:"description,omitempty"`
	Props       map[string]PropMeta `json:"props"`
	// AcceptsChildren is set when the prop record declares a children slot;
	// children never appears as a regular prop.
	AcceptsChildren bool `json:"accepts_children"`
	// IsDefaultExport marks the module's default export. Named exports need
	// a remapping step when lazily imported.
	IsDefaultExport bool               `json:"is_default_export,omitempty"`
	Examples        []Example          `json:"examples"`
	Wrappers        []WrapperComponent `json:"wrappers,omitempty"`
	// UsageCount is how many times the component appears as a JSX element
	// across the discovered file set.
	UsageCount int `json:"usage_count,omitempty"`
}

// Severity of an extraction warning.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a non-fatal problem encountered during extraction. Warnings
// accumulate across the run and are surfaced to the caller, never thrown.
type Warning struct {
	File     string   `json:"file"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Document is the output metadata document consumed by the renderer.
type Document struct {
	GeneratedAt  time.Time         `json:"generatedAt"`
	ComponentDir string            `json:"componentDir"`
	Components   []ComponentMeta   `json:"components"`
	PathAlias    map[string]string `json:"pathAlias"`
}
