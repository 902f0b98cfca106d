package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/cshum/vipsgen/vips"
	"go.uber.org/zap"

	"tilestow/internal/config"
	"tilestow/internal/logger"
	"tilestow/internal/storage"
	"tilestow/internal/tileset"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Ingest failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Renderer == "vips" {
		vips.Startup(nil)
		defer vips.Shutdown()
	}

	renderer, err := storage.NewRenderer(cfg.Renderer)
	if err != nil {
		return err
	}
	hasher, err := storage.NewHasher(cfg.Hasher)
	if err != nil {
		return err
	}
	layout, err := storage.NewLayout(cfg.Layout)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.OutputDir, renderer,
		storage.WithHasher(hasher),
		storage.WithLayout(layout),
		storage.WithLogger(log),
		storage.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info("Ingesting tile tree",
		zap.String("input_dir", cfg.InputDir),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("layout", cfg.Layout),
		zap.Int("workers", cfg.Workers))

	tiles, err := tileset.New(cfg.InputDir, log).Scan()
	if err != nil {
		return err
	}

	for _, tile := range tiles {
		im, err := loadTile(tile.Path)
		if err != nil {
			return fmt.Errorf("failed to load tile %d/%d/%d: %w", tile.Z, tile.X, tile.Y, err)
		}
		if err := store.Save(tile.X, tile.Y, tile.Z, im); err != nil {
			return err
		}
	}

	if err := store.WaitAll(); err != nil {
		return err
	}

	log.Info("Ingest complete", zap.Int("tiles", len(tiles)))
	return nil
}

func loadTile(path string) (*storage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	return storage.FromGoImage(decoded), nil
}
