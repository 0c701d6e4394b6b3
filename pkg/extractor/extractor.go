package extractor

import (
	"fmt"
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/parser"
	"github.com/gnana997/propview/pkg/parser/queries"
)

// Extractor runs the declaration and export queries over parsed files.
type Extractor struct {
	queryManager *queries.Manager
	logger       *slog.Logger
}

// New creates an extractor. Logger may be nil.
func New(qm *queries.Manager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{queryManager: qm, logger: logger}
}

// ExtractFile runs both query passes over an already-parsed tree. The caller
// retains ownership of the tree.
func (e *Extractor) ExtractFile(tree *ts.Tree, source []byte, filePath string) (*PerFileResult, error) {
	lang := parser.DetectLanguage(filePath)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	isTSX := parser.IsTSXFile(filePath)

	result := &PerFileResult{FilePath: filePath}

	symbols, err := e.extractSymbols(tree, source, lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("symbol extraction failed for %s: %w", filePath, err)
	}
	result.Symbols = symbols

	exports, err := e.extractExports(tree, source, lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("export extraction failed for %s: %w", filePath, err)
	}
	result.Exports = exports

	// Mark symbols covered by an export statement. Inline exports wrap the
	// declaration, so the symbol name appears in the export list too.
	for i := range result.Symbols {
		result.Symbols[i].Exported = result.IsExported(result.Symbols[i].Name)
	}

	return result, nil
}

func (e *Extractor) extractSymbols(tree *ts.Tree, source []byte, lang parser.Language, isTSX bool) ([]Symbol, error) {
	query, err := e.queryManager.Get(lang, queries.QueryTypeDeclarations, isTSX)
	if err != nil {
		return nil, err
	}
	matches, err := e.queryManager.Execute(tree, query, source)
	if err != nil {
		return nil, err
	}

	var symbols []Symbol
	for _, match := range matches {
		var name string
		var kind SymbolKind
		var loc queries.Location
		for _, capture := range match.Captures {
			switch capture.Field {
			case "name":
				name = capture.Text
				kind = symbolKind(capture.Category)
			case "definition":
				loc = capture.Location
			}
		}
		if name == "" || kind == "" {
			continue
		}
		symbols = append(symbols, Symbol{Name: name, Kind: kind, Location: loc})
	}
	return symbols, nil
}

func (e *Extractor) extractExports(tree *ts.Tree, source []byte, lang parser.Language, isTSX bool) ([]ExportInfo, error) {
	query, err := e.queryManager.Get(lang, queries.QueryTypeExports, isTSX)
	if err != nil {
		return nil, err
	}
	matches, err := e.queryManager.Execute(tree, query, source)
	if err != nil {
		return nil, err
	}

	var exports []ExportInfo
	seen := make(map[string]bool)
	for _, match := range matches {
		for _, capture := range match.Captures {
			if capture.Category != "export" {
				continue
			}
			isDefault := capture.Field == "default"
			key := capture.Text
			if isDefault {
				key = "default:" + key
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			exports = append(exports, ExportInfo{
				Name:      capture.Text,
				IsDefault: isDefault,
				Location:  capture.Location,
			})
		}
	}
	return exports, nil
}

func symbolKind(category string) SymbolKind {
	switch category {
	case "function":
		return SymbolKindFunction
	case "variable":
		return SymbolKindVariable
	case "class":
		return SymbolKindClass
	case "interface":
		return SymbolKindInterface
	case "type":
		return SymbolKindTypeAlias
	default:
		return ""
	}
}
