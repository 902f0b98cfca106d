package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	l, err := NewLayout("flat")
	require.NoError(t, err)
	require.IsType(t, &FlatLayout{}, l)

	l, err = NewLayout("nested")
	require.NoError(t, err)
	require.IsType(t, &NestedLayout{}, l)

	l, err = NewLayout("")
	require.NoError(t, err)
	require.IsType(t, &FlatLayout{}, l)

	_, err = NewLayout("sharded")
	require.Error(t, err)
}

func TestFlatLayoutFilepath(t *testing.T) {
	l := NewFlatLayout()
	got := l.Filepath(0, 1, 2, FingerprintFromUint64(0xdeadbeef), ".png")
	require.Equal(t, "2-0-1-deadbeef.png", got)
}

func TestNestedLayoutFilepath(t *testing.T) {
	l := NewNestedLayout()
	got := l.Filepath(0, 1, 2, FingerprintFromUint64(0xdeadbeef), ".png")
	require.Equal(t, filepath.Join("2", "0", "1.png"), got)
}

func TestNestedLayoutEnsureDir(t *testing.T) {
	root := t.TempDir()
	l := NewNestedLayout()

	require.Empty(t, l.madedirs)

	require.NoError(t, l.EnsureDir(root, 0, 1, 2))
	require.DirExists(t, filepath.Join(root, "2", "0"))
	require.True(t, l.madedirs[2][0])

	// Creating again over an existing tree is not an error.
	require.NoError(t, l.EnsureDir(root, 0, 1, 2))

	// The cache is never invalidated: after an out-of-band removal the
	// directory is not recreated.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "2")))
	require.NoError(t, l.EnsureDir(root, 0, 1, 2))
	require.NoDirExists(t, filepath.Join(root, "2"))
}

func TestFlatLayoutEnsureDirIsNoop(t *testing.T) {
	root := t.TempDir()
	l := NewFlatLayout()

	require.NoError(t, l.EnsureDir(root, 7, 8, 9))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)
}
