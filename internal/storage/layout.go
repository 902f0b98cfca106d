package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Layout maps tile coordinates to relative paths under the output root
// and materializes whatever directories those paths need.
type Layout interface {
	// Filepath is pure: no filesystem access, fully determined by its inputs.
	Filepath(x, y, z int, hashed Fingerprint, suffix string) string

	// EnsureDir creates the directories Filepath's result lives in.
	EnsureDir(outputdir string, x, y, z int) error
}

// NewLayout creates a layout instance based on the layout kind.
func NewLayout(kind string) (Layout, error) {
	switch kind {
	case "flat", "":
		return NewFlatLayout(), nil
	case "nested":
		return NewNestedLayout(), nil
	default:
		return nil, fmt.Errorf("unknown layout: %s (supported: flat, nested)", kind)
	}
}

// FlatLayout stores every tile directly under the output root as
// {z}-{x}-{y}-{hash}{suffix}. The fingerprint is part of the filename,
// so distinct content at one coordinate never collides.
type FlatLayout struct{}

func NewFlatLayout() *FlatLayout {
	return &FlatLayout{}
}

func (l *FlatLayout) Filepath(x, y, z int, hashed Fingerprint, suffix string) string {
	return fmt.Sprintf("%d-%d-%d-%s%s", z, x, y, hashed.Hex(), suffix)
}

// EnsureDir is a no-op: the single output root is created when the
// storage is constructed.
func (l *FlatLayout) EnsureDir(outputdir string, x, y, z int) error {
	return nil
}

// NestedLayout stores tiles as {z}/{x}/{y}{suffix}. The fingerprint does
// not appear in the path; duplicates are only visible as symlinks.
type NestedLayout struct {
	mu sync.Mutex

	// madedirs remembers which {z}/{x} prefixes have been created so
	// repeat saves skip the filesystem entirely. Entries are never
	// cleared, even if the directory is removed out-of-band: a stale
	// entry makes later writes under that prefix fail at the barrier.
	madedirs map[int]map[int]bool
}

func NewNestedLayout() *NestedLayout {
	return &NestedLayout{
		madedirs: make(map[int]map[int]bool),
	}
}

func (l *NestedLayout) Filepath(x, y, z int, hashed Fingerprint, suffix string) string {
	return filepath.Join(strconv.Itoa(z), strconv.Itoa(x), strconv.Itoa(y)+suffix)
}

func (l *NestedLayout) EnsureDir(outputdir string, x, y, z int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.madedirs[z][x] {
		return nil
	}

	dir := filepath.Join(outputdir, strconv.Itoa(z), strconv.Itoa(x))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create tile directory %s: %w", dir, err)
	}

	if l.madedirs[z] == nil {
		l.madedirs[z] = make(map[int]bool)
	}
	l.madedirs[z][x] = true
	return nil
}
