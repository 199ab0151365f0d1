package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DataPath     string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ChartWidth   int
	ChartHeight  int
}

// NewConfig loads configuration from environment variables, reading a .env
// file first when one exists. Variables already set win over the file.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DataPath: getEnv("DATA_PATH", "data/final/datos_finales.csv"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.ReadTimeout, err = getDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ChartWidth, err = getInt("CHART_WIDTH", 1024); err != nil {
		return nil, err
	}
	if cfg.ChartHeight, err = getInt("CHART_HEIGHT", 600); err != nil {
		return nil, err
	}

	if cfg.DataPath == "" {
		return nil, fmt.Errorf("DATA_PATH is required")
	}
	if cfg.ChartWidth < 100 || cfg.ChartHeight < 100 {
		return nil, fmt.Errorf("chart size %dx%d is too small", cfg.ChartWidth, cfg.ChartHeight)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
