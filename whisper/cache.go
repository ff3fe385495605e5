package whisper

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tureus/whisper/internal/clog"
)

// CacheConfig configures a WhisperCache: where metric files live on disk,
// how many open file handles to keep resident, and the defaults applied to
// a metric the first time it is written.
type CacheConfig struct {
	BaseDir             string
	Capacity            int
	DefaultSchema       Schema
	DefaultAggregation  AggregationMethod
	DefaultXFilesFactor float32
}

// DefaultCacheConfig returns sensible defaults (Average aggregation, 0.5
// x-files-factor) for every field except BaseDir, DefaultSchema and
// Capacity, which the caller must supply.
func DefaultCacheConfig(baseDir string, schema Schema, capacity int) CacheConfig {
	return CacheConfig{
		BaseDir:             baseDir,
		Capacity:            capacity,
		DefaultSchema:       schema,
		DefaultAggregation:  Average,
		DefaultXFilesFactor: 0.5,
	}
}

// handle is a shared, mutex-guarded WhisperFile: the caller locks, performs
// one write, and releases.
type handle struct {
	mu   sync.Mutex
	file *WhisperFile
}

// WhisperCache is an LRU of open WhisperFiles keyed by metric-relative
// path. Per-file mutexes let distinct files be written concurrently; an
// outer mutex serializes LRU membership changes (lookups, inserts,
// evictions) since the underlying LRU's check-then-create path around a new
// metric must not race with itself.
type WhisperCache struct {
	cfg CacheConfig
	log *clog.Logger

	mu  sync.Mutex
	lru *lru.Cache[string, *handle]
}

// NewCache constructs a WhisperCache. log may be nil, in which case a
// no-op logger is used.
func NewCache(cfg CacheConfig, log *clog.Logger) (*WhisperCache, error) {
	if log == nil {
		log = clog.NewNop()
	}
	wc := &WhisperCache{cfg: cfg, log: log}

	onEvict := func(relPath string, h *handle) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if err := h.file.Close(); err != nil {
			wc.log.Errorf("evicting %s: %v", relPath, err)
		}
	}

	l, err := lru.NewWithEvict[string, *handle](cfg.Capacity, onEvict)
	if err != nil {
		return nil, fmt.Errorf("whisper: new cache: %w", err)
	}
	wc.lru = l
	return wc, nil
}

// Write resolves the WhisperFile for named.MetricName — opening it if
// already on disk, creating it from the cache's default schema otherwise —
// and performs one write under that file's own mutex.
func (wc *WhisperCache) Write(named NamedPoint) (bool, error) {
	h, err := wc.resolve(named.RelPath())
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Write(named.Point)
}

func (wc *WhisperCache) resolve(relPath string) (*handle, error) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if h, ok := wc.lru.Get(relPath); ok {
		return h, nil
	}

	onDisk := filepath.Join(wc.cfg.BaseDir, relPath)
	var wf *WhisperFile
	var err error

	if info, statErr := os.Stat(onDisk); statErr == nil && info.Mode().IsRegular() {
		wc.log.Infof("opening existing whisper file %s", onDisk)
		wf, err = Open(onDisk)
	} else {
		if mkErr := os.MkdirAll(filepath.Dir(onDisk), 0o755); mkErr != nil {
			return nil, ioErrorf("mkdir", mkErr)
		}
		wc.log.Infof("creating whisper file %s", onDisk)
		wf, err = Create(onDisk, wc.cfg.DefaultSchema, wc.cfg.DefaultAggregation, wc.cfg.DefaultXFilesFactor)
	}
	if err != nil {
		return nil, err
	}

	h := &handle{file: wf}
	wc.lru.Add(relPath, h)
	return h, nil
}

// Close evicts every entry, closing their underlying files.
func (wc *WhisperCache) Close() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.lru.Purge()
	return nil
}
