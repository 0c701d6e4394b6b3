// Package extractor runs the tree-sitter query passes over a single parsed
// file and returns the declared symbols and exports found in it.
package extractor

import "github.com/gnana997/propview/pkg/parser/queries"

// SymbolKind classifies a declared symbol.
type SymbolKind string

const (
	SymbolKindFunction  SymbolKind = "function"
	SymbolKindVariable  SymbolKind = "variable"
	SymbolKindClass     SymbolKind = "class"
	SymbolKindInterface SymbolKind = "interface"
	SymbolKindTypeAlias SymbolKind = "type"
)

// Symbol is a named declaration found in a file.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Location queries.Location
	// Exported is set when the declaration is covered by an export
	// statement, either inline or via a later export list.
	Exported bool
}

// ExportInfo is an exported name found in a file.
type ExportInfo struct {
	Name      string
	IsDefault bool
	Location  queries.Location
}

// PerFileResult holds everything extracted from one parsed file.
type PerFileResult struct {
	FilePath string
	Symbols  []Symbol
	Exports  []ExportInfo
}

// Symbol returns the symbol with the given name, or nil.
func (r *PerFileResult) Symbol(name string) *Symbol {
	for i := range r.Symbols {
		if r.Symbols[i].Name == name {
			return &r.Symbols[i]
		}
	}
	return nil
}

// IsExported reports whether name is exported from the file.
func (r *PerFileResult) IsExported(name string) bool {
	for _, exp := range r.Exports {
		if exp.Name == name {
			return true
		}
	}
	return false
}
