// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime options for a Klondike session.
type Config struct {
	// DrawCount is the stock draw mode, 1 or 3.
	DrawCount int
	// Seed seeds the deal RNG. Zero means "pick one from the clock".
	Seed uint64
	// DataDir holds the save file and the leaderboard.
	DataDir string
	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string
}

// Default returns the stock configuration: Draw-1, clock seed, data under
// ~/.config/klondike.
func Default() Config {
	return Config{
		DrawCount: 1,
		DataDir:   defaultDataDir(),
		LogLevel:  "warn",
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klondike"
	}
	return filepath.Join(home, ".config", "klondike")
}

// Load reads an optional .env file, then overlays environment variables on
// the defaults. An absent .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv loads configuration from environment variables.
// Falls back to defaults if variables are not set.
func FromEnv() (Config, error) {
	cfg := Default()

	if val := getEnvInt("KLONDIKE_DRAW_COUNT"); val > 0 {
		cfg.DrawCount = val
	}
	if val := os.Getenv("KLONDIKE_SEED"); val != "" {
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("KLONDIKE_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if val := os.Getenv("KLONDIKE_DATA_DIR"); val != "" {
		cfg.DataDir = val
	}
	if val := os.Getenv("KLONDIKE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if cfg.DrawCount != 1 && cfg.DrawCount != 3 {
		return Config{}, fmt.Errorf("draw count must be 1 or 3, got %d", cfg.DrawCount)
	}
	return cfg, nil
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
