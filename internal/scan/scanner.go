// Copyright 2026 The unreal-git-names Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package scan walks directory trees of .uasset packages and extracts
// display labels from them in parallel. Parsing one package is
// stateless and fast, so the scanner's job is plumbing: fan paths out
// to workers, reuse results for byte-identical files, and funnel
// everything back to a single callback.
package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dgryski/go-farm"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Jus2Cat/unreal-git-names/internal/mmap"
	"github.com/Jus2Cat/unreal-git-names/uasset"
)

const assetExt = ".uasset"

// Result is the outcome for one package file.
type Result struct {
	Path  string
	Label uasset.Label
	Found bool
	Err   error // read failure; Label and Found are zero when set
}

// Stats summarizes a Scan call.
type Stats struct {
	Files   int64 // package files visited
	Matched int64 // files that yielded a label
	Missed  int64 // parsed clean but carried no label
	Reused  int64 // results served from the duplicate-content cache
	Errors  int64 // unreadable files
}

// Add returns the field-wise sum, for aggregating across roots.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Files:   s.Files + o.Files,
		Matched: s.Matched + o.Matched,
		Missed:  s.Missed + o.Missed,
		Reused:  s.Reused + o.Reused,
		Errors:  s.Errors + o.Errors,
	}
}

// counters aggregate across workers without a shared lock.
type counters struct {
	files   *xsync.Counter
	matched *xsync.Counter
	missed  *xsync.Counter
	reused  *xsync.Counter
	errors  *xsync.Counter
}

func newCounters() *counters {
	return &counters{
		files:   xsync.NewCounter(),
		matched: xsync.NewCounter(),
		missed:  xsync.NewCounter(),
		reused:  xsync.NewCounter(),
		errors:  xsync.NewCounter(),
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Files:   c.files.Value(),
		Matched: c.matched.Value(),
		Missed:  c.missed.Value(),
		Reused:  c.reused.Value(),
		Errors:  c.errors.Value(),
	}
}

// cached is a parse outcome keyed by content hash. Engine saves
// routinely duplicate unchanged actors across map versions, so whole
// files recur byte for byte.
type cached struct {
	label uasset.Label
	found bool
}

// Scanner extracts labels from directory trees of packages.
type Scanner struct {
	workers int
	dedup   bool
	cfg     uasset.Config
	logger  *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the number of parse workers. Values < 1 use one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		s.workers = n
	}
}

// WithTagPolicy selects which property-tag occurrence workers decode.
func WithTagPolicy(p uasset.TagPolicy) Option {
	return func(s *Scanner) {
		s.cfg.Tag = p
	}
}

// WithDedup enables or disables the duplicate-content cache. It is on
// by default.
func WithDedup(enabled bool) Option {
	return func(s *Scanner) {
		s.dedup = enabled
	}
}

// WithLogger sets the logger for per-file diagnostics. If not set,
// logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New returns a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{dedup: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Scanner) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Scan processes root, a package file or a directory walked
// recursively, and calls emit once per visited package. emit runs on a
// single goroutine, in completion order. Per-file read failures are
// reported through Result.Err and never abort the walk; the returned
// error covers an unusable root or a canceled context.
func (s *Scanner) Scan(ctx context.Context, root string, emit func(Result)) (Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Stats{}, err
	}

	cnt := newCounters()
	var cache *xsync.MapOf[uint64, cached]
	if s.dedup {
		cache = xsync.NewMapOf[uint64, cached]()
	}

	if !info.IsDir() {
		// A bare file skips the extension filter, like any explicitly
		// named argument should.
		emit(s.processFile(root, cache, cnt))
		return cnt.snapshot(), nil
	}

	workers := s.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	pathCh := make(chan string)
	resCh := make(chan Result, workers)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(pathCh)
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directory entries are skipped, not fatal.
				s.log().Debug("skipping unreadable entry", "path", path, "err", err)
				return nil
			}
			if d.IsDir() || !isAsset(d.Name()) {
				return nil
			}
			select {
			case pathCh <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	var workerWg sync.WaitGroup
	workerWg.Add(workers)
	for range workers {
		eg.Go(func() error {
			defer workerWg.Done()
			for path := range pathCh {
				if err := ctx.Err(); err != nil {
					return err
				}
				select {
				case resCh <- s.processFile(path, cache, cnt):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		workerWg.Wait()
		close(resCh)
	}()

	eg.Go(func() error {
		for res := range resCh {
			emit(res)
		}
		return nil
	})

	err = eg.Wait()
	return cnt.snapshot(), err
}

// processFile maps one package and extracts its label, consulting the
// duplicate-content cache when enabled.
func (s *Scanner) processFile(path string, cache *xsync.MapOf[uint64, cached], cnt *counters) Result {
	cnt.files.Inc()

	r, err := mmap.Open(path)
	if err != nil {
		cnt.errors.Inc()
		s.log().Debug("skipping unreadable package", "path", path, "err", err)
		return Result{Path: path, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	var c cached
	if cache != nil {
		// Collisions would need two different files sharing a 64-bit
		// farm hash; for label lookup that risk is fine.
		key := farm.Hash64(r.Data())
		hit := false
		c, hit = cache.LoadOrCompute(key, func() cached {
			label, found := uasset.Parse(r.Data(), s.cfg)
			return cached{label: label, found: found}
		})
		if hit {
			cnt.reused.Inc()
		}
	} else {
		c.label, c.found = uasset.Parse(r.Data(), s.cfg)
	}

	if c.found {
		cnt.matched.Inc()
	} else {
		cnt.missed.Inc()
	}
	return Result{Path: path, Label: c.label, Found: c.found}
}

// isAsset matches the package extension the way the engine's tooling
// does, case-insensitively.
func isAsset(name string) bool {
	return len(name) >= len(assetExt) && strings.EqualFold(name[len(name)-len(assetExt):], assetExt)
}
