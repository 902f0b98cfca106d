package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Storage writes rendered tiles under one output root, replacing
// pixel-identical duplicates with relative symlinks to the first copy.
//
// Save decides synchronously which tile is canonical for its content,
// then hands the actual render or symlink to a worker pool. WaitAll is
// the barrier that drains all scheduled work and reports its failures.
type Storage struct {
	outputdir string
	renderer  Renderer
	hasher    Hasher
	layout    Layout
	logger    *zap.Logger
	workers   int

	pool *ants.Pool
	wg   sync.WaitGroup

	// canonical maps a content fingerprint to the relative path of the
	// first tile saved with it. It only grows for the storage lifetime
	// and is not persisted.
	mu        sync.Mutex
	canonical map[Fingerprint]string

	errMu sync.Mutex
	errs  error
}

type Option func(*Storage)

// WithHasher overrides the default BLAKE3 pixel hasher.
func WithHasher(h Hasher) Option {
	return func(s *Storage) { s.hasher = h }
}

// WithLayout selects the on-disk layout. Default is flat. A layout
// instance carries its own directory cache and must not be shared
// between storages.
func WithLayout(l Layout) Option {
	return func(s *Storage) { s.layout = l }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storage) { s.logger = logger }
}

// WithWorkers sets the size of the pool executing scheduled writes.
func WithWorkers(n int) Option {
	return func(s *Storage) { s.workers = n }
}

// New creates a Storage rooted at outputdir, creating the directory and
// any missing parents. A pre-existing directory is left untouched.
func New(outputdir string, renderer Renderer, opts ...Option) (*Storage, error) {
	s := &Storage{
		outputdir: outputdir,
		renderer:  renderer,
		hasher:    Blake3Hasher,
		layout:    NewFlatLayout(),
		logger:    zap.NewNop(),
		workers:   runtime.NumCPU(),
		canonical: make(map[Fingerprint]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(outputdir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	s.pool = pool

	return s, nil
}

// Outputdir returns the storage root.
func (s *Storage) Outputdir() string {
	return s.outputdir
}

// Filepath returns the relative path a tile with the given coordinates
// and fingerprint is stored at. Pure; no filesystem access.
func (s *Storage) Filepath(x, y, z int, hashed Fingerprint) string {
	return s.layout.Filepath(x, y, z, hashed, s.renderer.Suffix())
}

// GetHash fingerprints the image's raw pixel buffer.
func (s *Storage) GetHash(im *Image) (Fingerprint, error) {
	return s.hasher(im.Pix)
}

// Save stores the tile at (x, y, z). The first tile seen with a given
// pixel content is rendered as a real file; every later tile with the
// same content becomes a relative symlink to it. The render or symlink
// runs asynchronously; Save only fails for errors in the synchronous
// phase (hashing, directory creation, scheduling).
func (s *Storage) Save(x, y, z int, im *Image) error {
	hashed, err := s.hasher(im.Pix)
	if err != nil {
		return fmt.Errorf("failed to hash tile %d/%d/%d: %w", z, x, y, err)
	}

	candidate := s.Filepath(x, y, z, hashed)

	if err := s.layout.EnsureDir(s.outputdir, x, y, z); err != nil {
		return err
	}

	// The canonical decision happens here, on the calling goroutine,
	// so a symlink is never scheduled before its target's write is.
	s.mu.Lock()
	target, seen := s.canonical[hashed]
	if !seen {
		s.canonical[hashed] = candidate
	}
	s.mu.Unlock()

	if !seen {
		s.logger.Debug("scheduling tile render",
			zap.Int("z", z), zap.Int("x", x), zap.Int("y", y),
			zap.String("path", candidate), zap.Stringer("hash", hashed))
		dst := filepath.Join(s.outputdir, candidate)
		return s.schedule(func() error {
			return s.renderer.Render(im, dst)
		})
	}

	s.logger.Debug("scheduling tile symlink",
		zap.Int("z", z), zap.Int("x", x), zap.Int("y", y),
		zap.String("path", candidate), zap.String("canonical", target))
	return s.schedule(func() error {
		return s.Symlink(target, candidate)
	})
}

// Symlink creates a relative symbolic link at dst pointing to src. Both
// paths are taken relative to the output root unless absolute. The link
// target is computed relative to dst's directory, so the whole tree
// stays valid when moved. Fails if dst already exists.
func (s *Storage) Symlink(src, dst string) error {
	absSrc := src
	if !filepath.IsAbs(absSrc) {
		absSrc = filepath.Join(s.outputdir, src)
	}
	absDst := dst
	if !filepath.IsAbs(absDst) {
		absDst = filepath.Join(s.outputdir, dst)
	}

	target := relativeTo(filepath.Dir(absDst), absSrc)
	if err := os.Symlink(target, absDst); err != nil {
		return fmt.Errorf("failed to link duplicate tile: %w", err)
	}
	return nil
}

// schedule hands a task to the worker pool and tracks it for WaitAll.
func (s *Storage) schedule(task func() error) error {
	s.wg.Add(1)
	err := s.pool.Submit(func() {
		defer s.wg.Done()
		if err := task(); err != nil {
			s.errMu.Lock()
			s.errs = multierr.Append(s.errs, err)
			s.errMu.Unlock()
		}
	})
	if err != nil {
		s.wg.Done()
		return fmt.Errorf("failed to schedule tile write: %w", err)
	}
	return nil
}

// WaitAll blocks until every write and symlink scheduled by prior Save
// calls has finished, then returns their accumulated failures, if any.
// Safe to call repeatedly; each call drains the failures it reports.
func (s *Storage) WaitAll() error {
	s.wg.Wait()

	s.errMu.Lock()
	defer s.errMu.Unlock()
	err := s.errs
	s.errs = nil
	return err
}

// Close drains outstanding work and releases the worker pool. The
// storage cannot be used afterwards.
func (s *Storage) Close() error {
	err := s.WaitAll()
	s.pool.Release()
	return err
}
