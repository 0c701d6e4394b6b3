package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/extractor"
	"github.com/gnana997/propview/pkg/meta"
	"github.com/gnana997/propview/pkg/parser"
	"github.com/gnana997/propview/pkg/parser/queries"
	"github.com/gnana997/propview/pkg/scanner"
	"github.com/gnana997/propview/pkg/util"
)

var outDir string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract component metadata and write the document and registry",
	Long: `Scans the project for component source files, extracts metadata for
every exported component, and writes two artifacts to the output
directory: components.json (the metadata document) and registry.ts
(a lazy-import registry module).`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides config outputDir)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	root, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	opts, err := config.LoadProject(root, cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	detected, err := config.DetectPathAlias(root)
	if err != nil {
		logger.Warn("path alias detection failed, falling back to defaults", "error", err)
	}

	cfg, err := config.Resolve(opts, detected)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	parsers := parser.NewManager(logger)
	defer parsers.Close()

	qm := queries.NewManager(parsers, logger)
	defer qm.Close()

	sources := util.NewSourceCache(0, logger)
	defer sources.Close()

	engine, err := scanner.NewScanner(parsers, extractor.New(qm, logger), sources, logger)
	if err != nil {
		return fmt.Errorf("initializing scanner: %w", err)
	}

	doc, result, err := scanner.Run(root, cfg, engine, logger)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message, "file", w.File, "severity", w.Severity)
	}

	docPath := filepath.Join(root, cfg.OutputDir, "components.json")
	if err := meta.WriteDocument(doc, docPath); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	registryPath := filepath.Join(root, cfg.OutputDir, "registry.ts")
	if err := meta.WriteRegistry(doc, registryPath); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}

	stats := engine.Stats()
	logger.Info("extraction complete",
		"components", len(doc.Components),
		"files", stats.FilesExtracted,
		"skipped", stats.FilesSkipped,
		"warnings", len(result.Warnings),
		"duration_ms", stats.ExtractionTimeMs,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d components to %s\n", len(doc.Components), docPath)
	return nil
}
