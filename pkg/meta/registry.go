package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteRegistry emits the companion registry module: a map from component
// display name to a lazy import of its source module. File paths are
// rewritten through the path-alias table and stripped of their extension
// so the import specifiers match what the consuming bundler resolves.
func WriteRegistry(doc *Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("// Generated component registry. Do not edit by hand.\n")
	b.WriteString("import { lazy } from \"react\";\n\n")
	b.WriteString("export const componentRegistry = {\n")
	for _, comp := range doc.Components {
		specifier := ImportSpecifier(comp.FilePath, doc.PathAlias)
		if comp.IsDefaultExport {
			fmt.Fprintf(&b, "  %q: lazy(() => import(%q)),\n", comp.Name, specifier)
		} else {
			// React.lazy expects a default export; named exports are remapped
			// in the thenable.
			fmt.Fprintf(&b, "  %q: lazy(() => import(%q).then((m) => ({ default: m.%s }))),\n", comp.Name, specifier, comp.Name)
		}
	}
	b.WriteString("};\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ImportSpecifier converts a project-relative source path into an import
// specifier: the longest matching alias target replaces its prefix, the
// extension is dropped, and a trailing /index segment collapses to the
// directory import.
func ImportSpecifier(filePath string, pathAlias map[string]string) string {
	specifier := filepath.ToSlash(filePath)

	// Longest real-path prefix wins so "src/components/" beats "src/" when
	// both are alias targets.
	aliases := make([]string, 0, len(pathAlias))
	for alias := range pathAlias {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(pathAlias[aliases[i]]) != len(pathAlias[aliases[j]]) {
			return len(pathAlias[aliases[i]]) > len(pathAlias[aliases[j]])
		}
		return aliases[i] < aliases[j]
	})
	for _, alias := range aliases {
		real := pathAlias[alias]
		if real != "" && strings.HasPrefix(specifier, real) {
			specifier = alias + specifier[len(real):]
			break
		}
	}

	ext := filepath.Ext(specifier)
	switch ext {
	case ".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs":
		specifier = strings.TrimSuffix(specifier, ext)
	}
	specifier = strings.TrimSuffix(specifier, "/index")

	return specifier
}
