package config

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Addr         string        // HTTP listen address, e.g. ":8080"
	DatabasePath string        // SQLite file for upload history
	CacheTTL     time.Duration // Lifetime of a cached search result (one second granularity)
	CacheSize    int           // Maximum number of cached search results
	LogLevel     string        // debug, info, warn, error
	LogFormat    string        // text or json
}

// Load reads .env if present, then parses flags and env vars.
// Flags take precedence over env vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env: %v", err)
	}

	cfg := &Config{}
	cfg.register(flag.CommandLine)
	flag.Parse()
	return cfg
}

// register binds cfg's fields to flags on fs, defaulting to env vars.
func (cfg *Config) register(fs *flag.FlagSet) {
	fs.StringVar(&cfg.Addr, "addr", envOrDefault("ADDR", ":8080"), "HTTP listen address")
	fs.StringVar(&cfg.DatabasePath, "db", envOrDefault("DATABASE_PATH", "uploads.db"), "Upload history SQLite path")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", envDuration("CACHE_TTL", 10*time.Minute), "Search cache entry lifetime")
	fs.IntVar(&cfg.CacheSize, "cache-size", envInt("CACHE_SIZE", 4096), "Maximum cached search results")
	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = envOrDefault("LOG_FORMAT", "text")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
