package scanner

import (
	"fmt"
	"log/slog"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/extractor"
	"github.com/gnana997/propview/pkg/meta"
)

// Run executes the full pipeline against a project root: discovery, engine
// extraction, and document assembly. The engine is pluggable; pass the
// built-in Scanner for tree-sitter extraction.
func Run(projectRoot string, cfg *config.Resolved, engine extractor.Engine, logger *slog.Logger) (*meta.Document, *extractor.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := DiscoverFiles(projectRoot, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("file discovery failed: %w", err)
	}
	logger.Debug("discovered files", "count", len(files), "glob", cfg.ComponentGlob)

	result, err := engine.Extract(extractor.Request{
		ProjectRoot: projectRoot,
		Config:      cfg,
		Files:       files,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extraction failed (engine %s): %w", engine.Name(), err)
	}

	doc := meta.NewDocument(result.Components, cfg.ComponentGlob, cfg.PathAlias)
	return doc, result, nil
}
