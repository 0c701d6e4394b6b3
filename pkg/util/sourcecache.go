package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"
)

// SourceCache provides read access to source files using memory-mapped
// regions, falling back to os.ReadFile when mapping fails (empty files,
// exotic filesystems). Entries stay mapped until Clear or Close.
//
// The cache is owned by a single extraction run and must be cleared between
// runs; it is safe for concurrent use by the extraction workers.
type SourceCache struct {
	mu      sync.RWMutex
	entries map[string]*mappedSource
	maxOpen int
	log     *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	fallbacks atomic.Int64
}

type mappedSource struct {
	data mmap.MMap
	file *os.File
	// raw holds the fallback copy when mmap failed; nil otherwise.
	raw []byte
}

func (m *mappedSource) bytes() []byte {
	if m.raw != nil {
		return m.raw
	}
	return m.data
}

// SourceCacheStats reports cache activity counters.
type SourceCacheStats struct {
	Open      int
	Hits      int64
	Misses    int64
	Fallbacks int64
}

// DefaultMaxOpenFiles bounds mapped file descriptors per run.
const DefaultMaxOpenFiles = 8192

// NewSourceCache creates an empty cache. maxOpen <= 0 applies
// DefaultMaxOpenFiles. Logger may be nil.
func NewSourceCache(maxOpen int, logger *slog.Logger) *SourceCache {
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenFiles
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceCache{
		entries: make(map[string]*mappedSource),
		maxOpen: maxOpen,
		log:     logger,
	}
}

// Read returns the contents of path, mapping it on first access.
// The returned slice aliases the mapped region and must not be modified
// or retained past Clear/Close.
func (c *SourceCache) Read(path string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return entry.bytes(), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another worker may have loaded it while we waited for the lock.
	if entry, ok = c.entries[path]; ok {
		c.hits.Add(1)
		return entry.bytes(), nil
	}

	if len(c.entries) >= c.maxOpen {
		return nil, fmt.Errorf("source cache limit reached (%d files); call Clear between runs", c.maxOpen)
	}

	c.misses.Add(1)
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = entry
	return entry.bytes(), nil
}

func (c *SourceCache) load(path string) (*mappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	// mmap of a zero-length file fails on most platforms.
	if info.Size() == 0 {
		f.Close()
		return &mappedSource{raw: []byte{}}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		c.fallbacks.Add(1)
		c.log.Debug("mmap failed, falling back to ReadFile", "file", path, "error", err)
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, rerr)
		}
		return &mappedSource{raw: raw}, nil
	}

	return &mappedSource{data: m, file: f}, nil
}

// Clear unmaps every entry, resetting the cache for the next run.
func (c *SourceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, entry := range c.entries {
		c.release(path, entry)
	}
	c.entries = make(map[string]*mappedSource)
}

// Close releases all resources. The cache is unusable afterwards.
func (c *SourceCache) Close() error {
	c.Clear()
	return nil
}

func (c *SourceCache) release(path string, entry *mappedSource) {
	if entry.data != nil {
		if err := entry.data.Unmap(); err != nil {
			c.log.Warn("failed to unmap source file", "file", path, "error", err)
		}
	}
	if entry.file != nil {
		entry.file.Close()
	}
}

// Stats returns activity counters for observability.
func (c *SourceCache) Stats() SourceCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SourceCacheStats{
		Open:      len(c.entries),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Fallbacks: c.fallbacks.Load(),
	}
}
