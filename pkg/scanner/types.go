// Package scanner walks component source files and turns exported component
// declarations into serializable metadata: prop classifications, defaults,
// JSDoc descriptions and examples, and usage statistics.
package scanner

import (
	"github.com/gnana997/propview/pkg/extractor"
)

// fileResult holds per-file extraction output.
type fileResult struct {
	// FilePath is relative to the project root, slash-separated.
	FilePath string
	Result   *extractor.PerFileResult
}

// ComponentKind describes how a component was declared.
type ComponentKind string

const (
	ComponentKindFunction   ComponentKind = "function"
	ComponentKindForwardRef ComponentKind = "forwardRef"
	ComponentKindMemo       ComponentKind = "memo"
	ComponentKindClass      ComponentKind = "class"
)

// PropsRef captures how a component's prop record is referenced.
type PropsRef struct {
	// TypeName is the name of the props interface or type alias.
	TypeName string
	// Symbol points to the matching declaration in the same file, when the
	// type is declared locally. Nil for imported or built-in types.
	Symbol *extractor.Symbol
}

// DetectedComponent is an exported component declaration found in a file.
type DetectedComponent struct {
	Name            string
	FilePath        string
	Kind            ComponentKind
	IsDefaultExport bool
	PropsRef        *PropsRef
	Symbol          *extractor.Symbol
}

// RunStats tracks extraction performance and volume metrics for one run.
type RunStats struct {
	FilesDiscovered    int
	FilesExtracted     int
	FilesSkipped       int
	ComponentsDetected int
	ComponentsEmitted  int
	PropsExtracted     int
	ExtractionTimeMs   int64
}
