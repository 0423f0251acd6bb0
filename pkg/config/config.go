package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Postgres DSN, e.g. "host=localhost user=callsync dbname=callsync sslmode=disable"
	DatabaseURL string

	// Synthflow calling-platform API
	SynthflowBaseURL   string
	SynthflowAPIKey    string
	SynthflowCallLimit int

	// Lisa chat service
	LisaBaseURL   string
	LisaModelName string

	// Sync scheduler
	SyncCron string

	// Processed-call dedup cache
	DedupCacheSize int
	DedupCacheTTL  time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	callLimit := 25
	if v := os.Getenv("SYNTHFLOW_CALL_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			callLimit = parsed
		}
	}

	cacheSize := 2048
	if v := os.Getenv("DEDUP_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cacheSize = parsed
		}
	}

	cacheTTL := 24 * time.Hour
	if v := os.Getenv("DEDUP_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cacheTTL = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "host=localhost user=callsync password=callsync dbname=callsync port=5432 sslmode=disable"),
		SynthflowBaseURL:   getEnv("SYNTHFLOW_BASE_URL", "https://api.synthflow.ai"),
		SynthflowAPIKey:    getEnv("SYNTHFLOW_API_KEY", ""),
		SynthflowCallLimit: callLimit,
		LisaBaseURL:        getEnv("LISA_BASE_URL", "https://lisa-dev.zentrades.pro"),
		LisaModelName:      getEnv("LISA_MODEL_NAME", "llama3:latest"),
		SyncCron:           getEnv("SYNC_CRON", "*/1 * * * *"),
		DedupCacheSize:     cacheSize,
		DedupCacheTTL:      cacheTTL,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
