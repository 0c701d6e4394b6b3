package scanner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/extractor"
	"github.com/gnana997/propview/pkg/meta"
	"github.com/gnana997/propview/pkg/parser"
	"github.com/gnana997/propview/pkg/util"
)

// expansionCacheSize bounds the named-type expansion cache. Entries are
// cheap; the bound only guards pathological trees.
const expansionCacheSize = 1024

// Scanner is the tree-sitter extraction engine. It parses each discovered
// file once and runs detection, prop classification, JSDoc example parsing,
// and usage counting over the same tree.
type Scanner struct {
	parsers   *parser.Manager
	extractor *extractor.Extractor
	sources   *util.SourceCache
	expansion *lru.Cache[string, []meta.Field]
	logger    *slog.Logger

	mutex sync.Mutex
	stats RunStats
}

// NewScanner wires a scanner over shared parser, extractor, and source
// cache instances. Logger may be nil.
func NewScanner(parsers *parser.Manager, ext *extractor.Extractor, sources *util.SourceCache, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[string, []meta.Field](expansionCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create expansion cache: %w", err)
	}
	return &Scanner{
		parsers:   parsers,
		extractor: ext,
		sources:   sources,
		expansion: cache,
		logger:    logger,
	}, nil
}

// Name implements extractor.Engine.
func (s *Scanner) Name() string { return "treesitter" }

// Stats returns the metrics of the most recent run.
func (s *Scanner) Stats() RunStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stats
}

// fileOutcome is the per-file worker output.
type fileOutcome struct {
	components []meta.ComponentMeta
	usages     map[string]int
	warnings   []meta.Warning
	skipped    bool
}

// Extract implements extractor.Engine: it processes the pre-discovered
// files in parallel and assembles deduplicated component metadata.
// Per-file failures become warnings, never errors.
func (s *Scanner) Extract(req extractor.Request) (*extractor.Result, error) {
	if req.Config == nil {
		return nil, fmt.Errorf("resolved config is required")
	}
	start := time.Now()

	// Expansions are scoped to one run; stale entries from a previous run
	// could reflect since-edited sources.
	s.expansion.Purge()

	outcomes := make([]fileOutcome, len(req.Files))

	numWorkers := util.OptimalPoolSize()
	if numWorkers > len(req.Files) {
		numWorkers = len(req.Files)
	}

	jobs := make(chan int, len(req.Files))
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = s.processFile(req.ProjectRoot, req.Files[idx], req.Config)
			}
		}()
	}
	for i := range req.Files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &extractor.Result{}
	usageCounts := make(map[string]int)
	detected := 0
	for _, outcome := range outcomes {
		result.Components = append(result.Components, outcome.components...)
		result.Warnings = append(result.Warnings, outcome.warnings...)
		if outcome.skipped {
			result.FilesSkipped++
		}
		detected += len(outcome.components)
		for name, count := range outcome.usages {
			usageCounts[name] += count
		}
	}

	result.Components = meta.Dedupe(result.Components)
	props := 0
	for i := range result.Components {
		result.Components[i].UsageCount = usageCounts[result.Components[i].Name]
		props += len(result.Components[i].Props)
	}

	s.mutex.Lock()
	s.stats = RunStats{
		FilesDiscovered:    len(req.Files),
		FilesExtracted:     len(req.Files) - result.FilesSkipped,
		FilesSkipped:       result.FilesSkipped,
		ComponentsDetected: detected,
		ComponentsEmitted:  len(result.Components),
		PropsExtracted:     props,
		ExtractionTimeMs:   time.Since(start).Milliseconds(),
	}
	s.mutex.Unlock()

	s.logger.Info("extraction complete",
		"files", len(req.Files),
		"skipped", result.FilesSkipped,
		"components", len(result.Components),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// processFile runs the whole per-file pipeline over a single parse tree.
func (s *Scanner) processFile(projectRoot, relPath string, cfg *config.Resolved) fileOutcome {
	warn := func(format string, args ...any) fileOutcome {
		message := fmt.Sprintf(format, args...)
		s.logger.Warn("file skipped", "file", relPath, "reason", message)
		return fileOutcome{
			warnings: []meta.Warning{{File: relPath, Message: message, Severity: meta.SeverityWarning}},
			skipped:  true,
		}
	}

	absPath := filepath.Join(projectRoot, filepath.FromSlash(relPath))
	source, err := s.sources.Read(absPath)
	if err != nil {
		return warn("failed to read source: %v", err)
	}

	tree, err := s.parsers.ParseFile(source, relPath)
	if err != nil {
		return warn("failed to parse: %v", err)
	}
	defer tree.Close()
	root := tree.RootNode()

	pfr, err := s.extractor.ExtractFile(tree, source, relPath)
	if err != nil {
		return warn("failed to extract symbols: %v", err)
	}

	fer := &fileResult{FilePath: relPath, Result: pfr}
	resolver := newTypeResolver(root, source, relPath, s.expansion)
	cvaSets := extractCVASets(root, source)

	var outcome fileOutcome
	components := detectComponents(root, source, fer, s.logger)
	for _, comp := range components {
		if cfg.IsComponentExcluded(comp.Name) {
			continue
		}

		cva := matchCVASet(comp, root, source, cvaSets, len(components))
		props, acceptsChildren := extractProps(comp, root, source, resolver, cva, cfg)
		doc := docForComponent(root, comp.Symbol, source)
		examples, wrappers := buildExamples(comp.Name, doc.Examples, s.parsers)

		outcome.components = append(outcome.components, meta.ComponentMeta{
			Name:            comp.Name,
			FilePath:        relPath,
			Description:     doc.Description,
			Props:           props,
			AcceptsChildren: acceptsChildren,
			IsDefaultExport: comp.IsDefaultExport,
			Examples:        examples,
			Wrappers:        wrappers,
		})
	}

	outcome.usages = make(map[string]int)
	countUsages(root, source, outcome.usages)

	return outcome
}
