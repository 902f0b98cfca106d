package tileset

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Tile is one rendered tile file found in an input tree.
type Tile struct {
	X, Y, Z int
	Path    string
}

// Scanner enumerates the tiles of a {z}/{x}/{y}.png tree.
type Scanner struct {
	inputDir string
	logger   *zap.Logger
}

func New(inputDir string, logger *zap.Logger) *Scanner {
	return &Scanner{
		inputDir: inputDir,
		logger:   logger,
	}
}

// Scan walks the input tree and returns every tile whose path parses as
// {z}/{x}/{y}{ext}. Files that do not fit the scheme are skipped with a
// warning.
func (s *Scanner) Scan() ([]Tile, error) {
	if _, err := os.Stat(s.inputDir); err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var tiles []Tile
	err := filepath.WalkDir(s.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.inputDir, path)
		if err != nil {
			return err
		}

		tile, ok := parseTilePath(rel)
		if !ok {
			s.logger.Warn("Skipping non-tile file", zap.String("path", rel))
			return nil
		}
		tile.Path = path
		tiles = append(tiles, tile)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tile tree: %w", err)
	}

	s.logger.Info("Scanned tile tree",
		zap.String("input_dir", s.inputDir),
		zap.Int("tiles", len(tiles)))
	return tiles, nil
}

func parseTilePath(rel string) (Tile, bool) {
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 3 {
		return Tile{}, false
	}

	z, err := strconv.Atoi(parts[0])
	if err != nil || z < 0 {
		return Tile{}, false
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil || x < 0 {
		return Tile{}, false
	}

	name := parts[2]
	ext := filepath.Ext(name)
	y, err := strconv.Atoi(strings.TrimSuffix(name, ext))
	if err != nil || y < 0 {
		return Tile{}, false
	}

	return Tile{X: x, Y: y, Z: z}, true
}
