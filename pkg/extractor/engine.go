package extractor

import (
	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/meta"
)

// Request is the input to an extraction engine: the project root, the
// resolved configuration, and the already-discovered file list (relative,
// slash-separated paths).
type Request struct {
	ProjectRoot string
	Config      *config.Resolved
	Files       []string
}

// Result is the output of an extraction engine run.
type Result struct {
	Components   []meta.ComponentMeta
	Warnings     []meta.Warning
	FilesSkipped int
}

// Engine is the extraction seam. The built-in engine walks tree-sitter
// parse trees; alternative engines (a type-checker backed one, for
// instance) can be substituted without touching the pipeline around it.
type Engine interface {
	// Name identifies the engine in logs and run stats.
	Name() string
	// Extract produces component metadata for the requested files.
	// Per-file failures become warnings in the result, not errors; an
	// error return means the run as a whole could not proceed.
	Extract(req Request) (*Result, error)
}
