package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Source data
	Data DataConfig

	// Study file (pre/post periods, estimator params)
	StudyFile string

	// Handoff bundle directory
	OutputDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// DataConfig holds source CSV configuration
type DataConfig struct {
	Root        string
	SleepFile   string
	WeatherFile string
	Timezone    string // reference zone for weather timestamps
	Window      int    // trailing moving-average window
}

// Location resolves the configured reference time zone.
func (d DataConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Data: DataConfig{
			Root:        getEnv("DATA_ROOT", "data"),
			SleepFile:   getEnv("SLEEP_FILE", "sleep.csv"),
			WeatherFile: getEnv("WEATHER_FILE", "weather.csv"),
			Timezone:    getEnv("DATA_TIMEZONE", "UTC"),
			Window:      getEnvAsInt("SMOOTHING_WINDOW", 7),
		},

		StudyFile: getEnv("STUDY_FILE", "study.yaml"),
		OutputDir: getEnv("OUTPUT_DIR", "out"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration values. Commands call it again after
// applying flag overrides.
func (c *Config) Validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Data.Window < 1 {
		return fmt.Errorf("SMOOTHING_WINDOW must be >= 1, got %d", c.Data.Window)
	}

	if c.Data.SleepFile == "" || c.Data.WeatherFile == "" {
		return fmt.Errorf("SLEEP_FILE and WEATHER_FILE are required")
	}

	if _, err := c.Data.Location(); err != nil {
		return fmt.Errorf("DATA_TIMEZONE: %w", err)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
