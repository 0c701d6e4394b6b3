package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Dedupe collapses repeated display names (re-exports, aliasing) to one
// entry each. The definition with more props wins; on a tie the first
// encountered is kept. Examples and wrappers follow the winning definition.
func Dedupe(components []ComponentMeta) []ComponentMeta {
	byName := make(map[string]int, len(components))
	var out []ComponentMeta
	for _, comp := range components {
		idx, exists := byName[comp.Name]
		if !exists {
			byName[comp.Name] = len(out)
			out = append(out, comp)
			continue
		}
		if len(comp.Props) > len(out[idx].Props) {
			out[idx] = comp
		}
	}
	return out
}

// NewDocument assembles the output document. Components are sorted by name
// so repeated runs over the same tree produce identical output.
func NewDocument(components []ComponentMeta, componentGlob string, pathAlias map[string]string) *Document {
	sorted := make([]ComponentMeta, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return &Document{
		GeneratedAt:  time.Now().UTC(),
		ComponentDir: componentGlob,
		Components:   sorted,
		PathAlias:    pathAlias,
	}
}

// WriteDocument writes the document as indented JSON, creating the output
// directory if needed.
func WriteDocument(doc *Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata document: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LoadDocument reads and validates a previously written document.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata document %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata document %s: %w", path, err)
	}
	if err := Validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid metadata document %s: %w", path, err)
	}
	return &doc, nil
}

// Validate checks structural invariants of a document: unique component
// names, prop map keys matching prop names, and known kind values.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	seen := make(map[string]bool, len(doc.Components))
	for _, comp := range doc.Components {
		if comp.Name == "" {
			return fmt.Errorf("component with empty name (file %s)", comp.FilePath)
		}
		if seen[comp.Name] {
			return fmt.Errorf("duplicate component name %q", comp.Name)
		}
		seen[comp.Name] = true

		for key, prop := range comp.Props {
			if key != prop.Name {
				return fmt.Errorf("component %s: prop key %q does not match prop name %q", comp.Name, key, prop.Name)
			}
			if err := validateType(prop.Type); err != nil {
				return fmt.Errorf("component %s, prop %s: %w", comp.Name, key, err)
			}
		}
	}
	return nil
}

func validateType(info TypeInfo) error {
	switch info.Kind {
	case KindString, KindNumber, KindBoolean, KindMap, KindOpaque:
		return nil
	case KindEnum:
		if len(info.Values) == 0 {
			return fmt.Errorf("enum with no values")
		}
		return nil
	case KindArray:
		if info.Item == nil {
			return fmt.Errorf("array with no item type")
		}
		return validateType(*info.Item)
	case KindObject:
		for _, field := range info.Fields {
			if field.Name == "" {
				return fmt.Errorf("object field with empty name")
			}
			if err := validateType(field.Type); err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
		}
		return nil
	case KindComponent:
		switch info.Slot {
		case SlotIcon, SlotElement, SlotNode:
			return nil
		default:
			return fmt.Errorf("component slot with unknown sub-kind %q", info.Slot)
		}
	default:
		return fmt.Errorf("unknown kind %q", info.Kind)
	}
}
