package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"-i", "in", "-o", "out"})
	require.NoError(t, err)
	require.Equal(t, "in", cfg.InputDir)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, "nested", cfg.Layout)
	require.Equal(t, "png", cfg.Renderer)
	require.Equal(t, "blake3", cfg.Hasher)
	require.Positive(t, cfg.Workers)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load([]string{
		"--input", "in", "--output", "out",
		"--layout", "flat", "--renderer", "touch",
		"--hasher", "md5", "--workers", "3",
	})
	require.NoError(t, err)
	require.Equal(t, "flat", cfg.Layout)
	require.Equal(t, "touch", cfg.Renderer)
	require.Equal(t, "md5", cfg.Hasher)
	require.Equal(t, 3, cfg.Workers)
}

func TestLoadRequiresPaths(t *testing.T) {
	_, err := Load([]string{"-o", "out"})
	require.Error(t, err)

	_, err = Load([]string{"-i", "in"})
	require.Error(t, err)
}
