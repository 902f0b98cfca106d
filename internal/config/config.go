package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"
)

type Config struct {
	InputDir  string
	OutputDir string
	Layout    string
	Renderer  string
	Hasher    string
	Workers   int
	LogLevel  string
}

// Load builds the configuration from command-line flags, falling back
// to TILESTOW_* environment variables, then to built-in defaults.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	flags := pflag.NewFlagSet("tilestow", pflag.ContinueOnError)
	flags.StringVarP(&cfg.InputDir, "input", "i", getEnv("TILESTOW_INPUT", ""), "directory holding a {z}/{x}/{y}.png tile tree to ingest")
	flags.StringVarP(&cfg.OutputDir, "output", "o", getEnv("TILESTOW_OUTPUT", ""), "output directory (created if missing)")
	flags.StringVar(&cfg.Layout, "layout", getEnv("TILESTOW_LAYOUT", "nested"), "output layout: flat or nested")
	flags.StringVar(&cfg.Renderer, "renderer", getEnv("TILESTOW_RENDERER", "png"), "tile encoder: png, vips or touch")
	flags.StringVar(&cfg.Hasher, "hasher", getEnv("TILESTOW_HASHER", "blake3"), "pixel hasher: blake3 or md5")
	flags.IntVar(&cfg.Workers, "workers", getEnvInt("TILESTOW_WORKERS", runtime.NumCPU()), "concurrent tile writers")
	flags.StringVar(&cfg.LogLevel, "log-level", getEnv("TILESTOW_LOG_LEVEL", "info"), "log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if cfg.InputDir == "" {
		return nil, fmt.Errorf("--input is required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("--output is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
