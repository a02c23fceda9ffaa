package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the results database. Empty means store.DefaultDBPath.
	DBPath string

	LogLevel  string
	LogFormat string

	// LogFile receives logs while the TUI owns the terminal. Empty means a
	// file next to the database.
	LogFile string

	// BandsFile is a YAML grade band file. Empty means the default bands.
	BandsFile string

	// MediaTick is how often the virtual audio track reports its position.
	MediaTick time.Duration

	// StopAtCueEnd pauses playback at the end of the active cue window.
	StopAtCueEnd bool
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		DBPath:       getEnv("EXAMIZ_DB", ""),
		LogLevel:     getEnv("EXAMIZ_LOG_LEVEL", "info"),
		LogFormat:    getEnv("EXAMIZ_LOG_FORMAT", "json"),
		LogFile:      getEnv("EXAMIZ_LOG_FILE", ""),
		BandsFile:    getEnv("EXAMIZ_BANDS", ""),
		MediaTick:    time.Duration(getEnvInt("EXAMIZ_MEDIA_TICK_MS", 250)) * time.Millisecond,
		StopAtCueEnd: getEnvBool("EXAMIZ_STOP_AT_CUE_END", true),
	}
}

// ResolveLogFile returns LogFile, or examiz.log beside dbPath when unset.
func (c *Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "examiz.log")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
