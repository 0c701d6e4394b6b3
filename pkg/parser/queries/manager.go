// Package queries provides tree-sitter query compilation, caching, and
// execution for the declaration and export patterns used by extraction.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/propview/pkg/parser"
)

// QueryType identifies which query set to execute.
type QueryType int

const (
	// QueryTypeDeclarations extracts function/variable/class/interface/type
	// declarations with names and locations.
	QueryTypeDeclarations QueryType = iota
	// QueryTypeExports extracts export statements.
	QueryTypeExports
)

// String returns the string representation of a QueryType.
func (qt QueryType) String() string {
	switch qt {
	case QueryTypeDeclarations:
		return "declarations"
	case QueryTypeExports:
		return "exports"
	default:
		return "unknown"
	}
}

// queryKey uniquely identifies a compiled query.
// TSX uses a distinct grammar, so it needs its own compiled queries.
type queryKey struct {
	lang  parser.Language
	qtype QueryType
	isTSX bool
}

// Manager compiles tree-sitter queries lazily and caches them.
// Thread-safe; must be closed via Close().
type Manager struct {
	parserManager *parser.Manager
	cache         map[queryKey]*ts.Query
	mutex         sync.RWMutex
	logger        *slog.Logger
}

// NewManager creates a query manager. Logger may be nil.
func NewManager(pm *parser.Manager, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		parserManager: pm,
		cache:         make(map[queryKey]*ts.Query),
		logger:        logger,
	}
}

// Get returns a compiled query for the language/type/grammar-variant,
// compiling it on first use.
func (m *Manager) Get(lang parser.Language, qtype QueryType, isTSX bool) (*ts.Query, error) {
	key := queryKey{lang: lang, qtype: qtype, isTSX: isTSX}

	m.mutex.RLock()
	query, exists := m.cache[key]
	m.mutex.RUnlock()
	if exists {
		return query, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if query, exists = m.cache[key]; exists {
		return query, nil
	}

	queryString, err := queryString(lang, qtype)
	if err != nil {
		return nil, err
	}

	langPtr, err := m.parserManager.LanguagePointer(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get language pointer for %s: %w", lang, err)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), queryString)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile %s query for %s: %s", qtype, lang, qerr.Message)
	}

	m.cache[key] = query
	m.logger.Debug("compiled query", "language", lang.String(), "type", qtype.String(), "isTSX", isTSX)
	return query, nil
}

func queryString(lang parser.Language, qtype QueryType) (string, error) {
	switch {
	case lang == parser.LanguageTypeScript && qtype == QueryTypeDeclarations:
		return TSDeclarations, nil
	case lang == parser.LanguageTypeScript && qtype == QueryTypeExports:
		return TSExports, nil
	case lang == parser.LanguageJavaScript && qtype == QueryTypeDeclarations:
		return JSDeclarations, nil
	case lang == parser.LanguageJavaScript && qtype == QueryTypeExports:
		return JSExports, nil
	default:
		return "", fmt.Errorf("no %s query for language %s", qtype, lang)
	}
}

// Execute runs a compiled query against a parse tree and returns structured
// matches with capture text and locations resolved.
func (m *Manager) Execute(tree *ts.Tree, query *ts.Query, source []byte) ([]Match, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)
	captureNames := query.CaptureNames()

	var matches []Match
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		var captures []Capture
		for _, capture := range match.Captures {
			var name string
			if int(capture.Index) < len(captureNames) {
				name = captureNames[capture.Index]
			}
			category, field := splitCaptureName(name)
			captures = append(captures, Capture{
				Name:     name,
				Category: category,
				Field:    field,
				Node:     &capture.Node,
				Text:     capture.Node.Utf8Text(source),
				Location: nodeLocation(&capture.Node),
			})
		}

		matches = append(matches, Match{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}

	return matches, nil
}

// Close releases all compiled queries.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for key, query := range m.cache {
		if query != nil {
			query.Close()
		}
		delete(m.cache, key)
	}
	return nil
}

// Match is a single pattern match from query execution.
type Match struct {
	PatternIndex uint32
	Captures     []Capture
}

// Capture is a single captured node from a query match.
type Capture struct {
	// Name is the full capture name, e.g. "function.name".
	Name string
	// Category is the part before the dot ("function").
	Category string
	// Field is the part after the dot ("name"); empty if no dot.
	Field string
	Node     *ts.Node
	Text     string
	Location Location
}

// Location is a position in source code. Lines and columns are 1-based;
// byte offsets are 0-based for direct source slicing.
type Location struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32
	EndByte     uint32
}

func splitCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

func nodeLocation(node *ts.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()
	return Location{
		StartLine:   uint32(start.Row + 1),
		StartColumn: uint32(start.Column + 1),
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}
